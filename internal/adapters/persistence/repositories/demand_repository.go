package repositories

import (
	"context"

	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
)

// demandRepository implements DemandRepository on GORM/MySQL
type demandRepository struct {
	db *gorm.DB
}

// NewDemandRepository creates a new demand repository
func NewDemandRepository(db *gorm.DB) DemandRepository {
	return &demandRepository{db: db}
}

// CreateBatch inserts all rows of one demand submission inside a single
// transaction. If any insert fails the whole batch is rolled back.
func (r *demandRepository) CreateBatch(ctx context.Context, demands []*models.Demand) ([]uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, demand := range demands {
			if err := tx.Create(demand).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(demands))
	for i, demand := range demands {
		ids[i] = demand.ID
	}
	return ids, nil
}

func (r *demandRepository) GetByID(ctx context.Context, id uint) (*models.Demand, error) {
	var demand models.Demand
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&demand).Error
	if err != nil {
		return nil, err
	}
	return &demand, nil
}

// List returns ledger rows newest first by date then id. A non-nil
// distributorID scopes the listing to that distributor.
func (r *demandRepository) List(ctx context.Context, distributorID *uint, offset, limit int) ([]*models.Demand, int64, error) {
	var demands []*models.Demand
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Demand{})
	if distributorID != nil {
		query = query.Where("distributor_id = ?", *distributorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("date DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&demands).Error
	if err != nil {
		return nil, 0, err
	}

	return demands, total, nil
}

// UpdateDispatch applies only the supplied columns. Zero affected rows
// reports gorm.ErrRecordNotFound.
func (r *demandRepository) UpdateDispatch(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Demand{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *demandRepository) ExistsByProduct(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Demand{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

func (r *demandRepository) ExistsByDistributor(ctx context.Context, distributorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Demand{}).Where("distributor_id = ?", distributorID).Count(&count).Error
	return count > 0, err
}
