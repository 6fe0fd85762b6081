package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/config"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/jwt"
	"dairyhub/internal/pkg/logger"
	"dairyhub/internal/pkg/password"
)

// dummyHash is compared against when the email does not resolve, so a
// failed lookup costs the same as a failed password check.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService handles identity and credential business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
	log      *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config, log *logger.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg, log: log}
}

// CreateUserInput represents user creation input
type CreateUserInput struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Password       string           `json:"password"`
	Role           string           `json:"role"`
	PartyCode      *string          `json:"party_code"`
	Mobile         *string          `json:"mobile"`
	Route          *string          `json:"route"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// AuthResponse represents a signed-in user and their token
type AuthResponse struct {
	User  *models.UserSafeView `json:"user"`
	Token string               `json:"token"`
}

// Signup registers a user on the public path. The caller picks the role.
func (s *AuthService) Signup(ctx context.Context, input *CreateUserInput) (*AuthResponse, error) {
	return s.createUser(ctx, input, nil)
}

// CreateUserAs registers a user on behalf of an authenticated creator,
// enforcing the role-delegation rule before anything is persisted.
func (s *AuthService) CreateUserAs(ctx context.Context, creator *models.User, input *CreateUserInput) (*AuthResponse, error) {
	targetRole, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if !creator.Role.CanCreate(targetRole) {
		return nil, domain.ErrCreationNotAllowed
	}
	return s.createUser(ctx, input, &creator.ID)
}

func (s *AuthService) createUser(ctx context.Context, input *CreateUserInput, createdBy *uint) (*AuthResponse, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedBy: createdBy,
	}

	// A Distributor is a tagged variant: party code, mobile and route are
	// all required, opening balance defaults to zero.
	if role == domain.RoleDistributor {
		if isBlank(input.PartyCode) || isBlank(input.Mobile) || isBlank(input.Route) {
			return nil, domain.ErrMissingDistributorFields
		}
		exists, err := s.userRepo.ExistsByPartyCode(ctx, strings.TrimSpace(*input.PartyCode))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrPartyCodeExists
		}

		partyCode := strings.TrimSpace(*input.PartyCode)
		user.PartyCode = &partyCode
		user.Mobile = input.Mobile
		user.Route = input.Route
		if input.OpeningBalance != nil {
			user.OpeningBalance = *input.OpeningBalance
		}
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Str("role", user.Role.String()).Msg("user created")

	return &AuthResponse{User: user.ToSafeView(), Token: token}, nil
}

// SignIn authenticates by email and password. Unknown email, inactive
// account and wrong password all yield the same ErrInvalidCredentials so
// callers cannot enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, email, pw string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			password.Verify(pw, dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pw, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user signed in")

	return &AuthResponse{User: user.ToSafeView(), Token: token}, nil
}

// ListUsers returns safe views of every user, newest first
func (s *AuthService) ListUsers(ctx context.Context, offset, limit int) ([]*models.UserSafeView, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.UserSafeView, len(users))
	for i, user := range users {
		views[i] = user.ToSafeView()
	}
	return views, total, nil
}

// ResetPassword changes the caller's password after verifying the
// current one. Passwords change only through this path.
func (s *AuthService) ResetPassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}
	if !password.ValidatePassword(newPassword) {
		return domain.ErrInvalidInput
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(user.ID, user.Email, user.Role.String(), s.cfg.JWT.Secret, s.cfg.JWT.ExpiryDays)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
