package domain

// Role is the account role. Exactly three values exist.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleDistributor Role = "Distributor"
	RoleSubAdmin    Role = "Sub-Admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDistributor, RoleSubAdmin:
		return true
	}
	return false
}

// String returns the role as stored and serialized.
func (r Role) String() string {
	return string(r)
}

// CanCreate is the role-delegation rule for user provisioning:
// Admin may create Distributor and Sub-Admin accounts, a Distributor
// may create Sub-Admin accounts, everything else is denied.
func (r Role) CanCreate(target Role) bool {
	switch r {
	case RoleAdmin:
		return target == RoleDistributor || target == RoleSubAdmin
	case RoleDistributor:
		return target == RoleSubAdmin
	}
	return false
}

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
