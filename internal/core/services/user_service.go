package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/logger"
)

// UserService handles admin and distributor account management
type UserService struct {
	userRepo   repositories.UserRepository
	priceRepo  repositories.ProductPriceRepository
	demandRepo repositories.DemandRepository
	log        *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	priceRepo repositories.ProductPriceRepository,
	demandRepo repositories.DemandRepository,
	log *logger.Logger,
) *UserService {
	return &UserService{userRepo: userRepo, priceRepo: priceRepo, demandRepo: demandRepo, log: log}
}

// ListAdmins lists admin accounts, newest first
func (s *UserService) ListAdmins(ctx context.Context, offset, limit int) ([]*models.UserSafeView, int64, error) {
	return s.listByRole(ctx, domain.RoleAdmin, offset, limit)
}

// GetAdmin returns one admin account
func (s *UserService) GetAdmin(ctx context.Context, id uint) (*models.UserSafeView, error) {
	return s.getByRole(ctx, id, domain.RoleAdmin)
}

// DeleteAdmin removes an admin account
func (s *UserService) DeleteAdmin(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByIDAndRole(ctx, id, domain.RoleAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ListDistributors lists distributor accounts, newest first
func (s *UserService) ListDistributors(ctx context.Context, offset, limit int) ([]*models.UserSafeView, int64, error) {
	return s.listByRole(ctx, domain.RoleDistributor, offset, limit)
}

// GetDistributor returns one distributor account
func (s *UserService) GetDistributor(ctx context.Context, id uint) (*models.UserSafeView, error) {
	view, err := s.getByRole(ctx, id, domain.RoleDistributor)
	if err != nil && errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrDistributorNotFound
	}
	return view, err
}

// UpdateDistributorInput represents a partial distributor update. Role
// and password are excluded; absent fields keep their stored values.
type UpdateDistributorInput struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	PartyCode      *string          `json:"party_code"`
	Mobile         *string          `json:"mobile"`
	Route          *string          `json:"route"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
	IsActive       *bool            `json:"is_active"`
}

// UpdateDistributor applies the supplied fields. An empty input is a
// no-op that returns the stored record unchanged.
func (s *UserService) UpdateDistributor(ctx context.Context, id uint, input *UpdateDistributorInput) (*models.UserSafeView, error) {
	user, err := s.userRepo.GetByIDAndRole(ctx, id, domain.RoleDistributor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDistributorNotFound
		}
		return nil, err
	}

	changed := false

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
		changed = true
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
			changed = true
		}
	}
	if input.PartyCode != nil {
		partyCode := strings.TrimSpace(*input.PartyCode)
		if partyCode != "" && (user.PartyCode == nil || partyCode != *user.PartyCode) {
			exists, err := s.userRepo.ExistsByPartyCode(ctx, partyCode)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrPartyCodeExists
			}
			user.PartyCode = &partyCode
			changed = true
		}
	}
	if input.Mobile != nil {
		user.Mobile = input.Mobile
		changed = true
	}
	if input.Route != nil {
		user.Route = input.Route
		changed = true
	}
	if input.OpeningBalance != nil {
		user.OpeningBalance = *input.OpeningBalance
		changed = true
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
		changed = true
	}

	if !changed {
		return user.ToSafeView(), nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Uint("user_id", user.ID).Msg("distributor updated")
	return user.ToSafeView(), nil
}

// DeleteDistributor removes a distributor account. The delete is
// restricted while price overrides or ledger rows still reference it.
func (s *UserService) DeleteDistributor(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByIDAndRole(ctx, id, domain.RoleDistributor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDistributorNotFound
		}
		return err
	}

	referenced, err := s.priceRepo.ExistsByDistributor(ctx, id)
	if err != nil {
		return err
	}
	if !referenced {
		referenced, err = s.demandRepo.ExistsByDistributor(ctx, id)
		if err != nil {
			return err
		}
	}
	if referenced {
		return domain.ErrDistributorReferenced
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Uint("user_id", id).Msg("distributor deleted")
	return nil
}

func (s *UserService) listByRole(ctx context.Context, role domain.Role, offset, limit int) ([]*models.UserSafeView, int64, error) {
	users, total, err := s.userRepo.ListByRole(ctx, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.UserSafeView, len(users))
	for i, user := range users {
		views[i] = user.ToSafeView()
	}
	return views, total, nil
}

func (s *UserService) getByRole(ctx context.Context, id uint, role domain.Role) (*models.UserSafeView, error) {
	user, err := s.userRepo.GetByIDAndRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToSafeView(), nil
}
