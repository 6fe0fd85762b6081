package repositories

import (
	"context"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/core/domain"
)

// UserRepository defines user data access. Services depend on this
// interface, never on a concrete engine.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDAndRole(ctx context.Context, id uint, role domain.Role) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPartyCode(ctx context.Context, partyCode string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role domain.Role, offset, limit int) ([]*models.User, int64, error)
	ListAllByRole(ctx context.Context, role domain.Role) ([]*models.User, error)
}

// ProductRepository defines product catalog data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByCode(ctx context.Context, code string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Product, error)
	ListActive(ctx context.Context) ([]*models.Product, error)
}

// ProductPriceRepository defines price override data access
type ProductPriceRepository interface {
	Create(ctx context.Context, price *models.ProductPrice) error
	GetByID(ctx context.Context, id uint) (*models.ProductPrice, error)
	GetByDistributorAndProduct(ctx context.Context, distributorID, productID uint) (*models.ProductPrice, error)
	ListByDistributor(ctx context.Context, distributorID uint) ([]*models.ProductPrice, error)
	List(ctx context.Context) ([]*models.ProductPrice, error)
	Update(ctx context.Context, price *models.ProductPrice) error
	Delete(ctx context.Context, id uint) error
	ExistsByProduct(ctx context.Context, productID uint) (bool, error)
	ExistsByDistributor(ctx context.Context, distributorID uint) (bool, error)
}

// DemandRepository defines demand ledger data access. CreateBatch must
// insert all rows in a single transaction.
type DemandRepository interface {
	CreateBatch(ctx context.Context, demands []*models.Demand) ([]uint, error)
	GetByID(ctx context.Context, id uint) (*models.Demand, error)
	List(ctx context.Context, distributorID *uint, offset, limit int) ([]*models.Demand, int64, error)
	UpdateDispatch(ctx context.Context, id uint, updates map[string]interface{}) error
	ExistsByProduct(ctx context.Context, productID uint) (bool, error)
	ExistsByDistributor(ctx context.Context, distributorID uint) (bool, error)
}
