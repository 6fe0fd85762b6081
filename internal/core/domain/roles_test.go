package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleDistributor.Valid())
	assert.True(t, RoleSubAdmin.Valid())
	assert.False(t, Role("Superuser").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid(), "role values are case sensitive")
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		creator Role
		target  Role
		want    bool
	}{
		{RoleAdmin, RoleDistributor, true},
		{RoleAdmin, RoleSubAdmin, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleDistributor, RoleSubAdmin, true},
		{RoleDistributor, RoleDistributor, false},
		{RoleDistributor, RoleAdmin, false},
		{RoleSubAdmin, RoleSubAdmin, false},
		{RoleSubAdmin, RoleAdmin, false},
		{RoleSubAdmin, RoleDistributor, false},
	}

	for _, tt := range tests {
		got := tt.creator.CanCreate(tt.target)
		assert.Equal(t, tt.want, got, "%s creating %s", tt.creator, tt.target)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Distributor")
	assert.NoError(t, err)
	assert.Equal(t, RoleDistributor, role)

	_, err = ParseRole("Manager")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
