package repositories

import (
	"context"

	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
)

// productPriceRepository implements ProductPriceRepository on GORM/MySQL
type productPriceRepository struct {
	db *gorm.DB
}

// NewProductPriceRepository creates a new product price repository
func NewProductPriceRepository(db *gorm.DB) ProductPriceRepository {
	return &productPriceRepository{db: db}
}

func (r *productPriceRepository) Create(ctx context.Context, price *models.ProductPrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *productPriceRepository) GetByID(ctx context.Context, id uint) (*models.ProductPrice, error) {
	var price models.ProductPrice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *productPriceRepository) GetByDistributorAndProduct(ctx context.Context, distributorID, productID uint) (*models.ProductPrice, error) {
	var price models.ProductPrice
	err := r.db.WithContext(ctx).
		Where("distributor_id = ? AND product_id = ?", distributorID, productID).
		First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *productPriceRepository) ListByDistributor(ctx context.Context, distributorID uint) ([]*models.ProductPrice, error) {
	var prices []*models.ProductPrice
	err := r.db.WithContext(ctx).Where("distributor_id = ?", distributorID).Find(&prices).Error
	return prices, err
}

func (r *productPriceRepository) List(ctx context.Context) ([]*models.ProductPrice, error) {
	var prices []*models.ProductPrice
	err := r.db.WithContext(ctx).Find(&prices).Error
	return prices, err
}

func (r *productPriceRepository) Update(ctx context.Context, price *models.ProductPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

func (r *productPriceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProductPrice{}, id).Error
}

func (r *productPriceRepository) ExistsByProduct(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductPrice{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

func (r *productPriceRepository) ExistsByDistributor(ctx context.Context, distributorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductPrice{}).Where("distributor_id = ?", distributorID).Count(&count).Error
	return count > 0, err
}
