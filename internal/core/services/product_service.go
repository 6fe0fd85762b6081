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

// ProductService handles catalog business logic
type ProductService struct {
	productRepo repositories.ProductRepository
	priceRepo   repositories.ProductPriceRepository
	demandRepo  repositories.DemandRepository
	log         *logger.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repositories.ProductRepository,
	priceRepo repositories.ProductPriceRepository,
	demandRepo repositories.DemandRepository,
	log *logger.Logger,
) *ProductService {
	return &ProductService{productRepo: productRepo, priceRepo: priceRepo, demandRepo: demandRepo, log: log}
}

// CreateProductInput represents product creation input
type CreateProductInput struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Rate        decimal.Decimal `json:"rate"`
	Gst         decimal.Decimal `json:"gst"`
	Unit        string          `json:"unit"`
	Crate       int             `json:"crate"`
}

// CreateProduct adds a catalog entry. The product code is trimmed and
// must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*models.Product, error) {
	code := strings.TrimSpace(input.ProductCode)
	name := strings.TrimSpace(input.ProductName)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Rate.IsNegative() {
		return nil, domain.ErrInvalidRate
	}
	if !validGstPercent(input.Gst) {
		return nil, domain.ErrInvalidGstPercent
	}
	if input.Crate < 0 {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.productRepo.GetByCode(ctx, code)
	if err == nil {
		return nil, domain.ErrProductCodeExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		ProductCode: code,
		ProductName: name,
		Rate:        input.Rate,
		Gst:         input.Gst,
		Unit:        strings.TrimSpace(input.Unit),
		Crate:       input.Crate,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Uint("product_id", product.ID).Str("code", product.ProductCode).Msg("product created")
	return product, nil
}

// GetProduct returns one catalog entry
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns the whole catalog, newest first
func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}

// UpdateProductInput represents a partial product update
type UpdateProductInput struct {
	ProductCode *string          `json:"product_code"`
	ProductName *string          `json:"product_name"`
	Rate        *decimal.Decimal `json:"rate"`
	Gst         *decimal.Decimal `json:"gst"`
	Unit        *string          `json:"unit"`
	Crate       *int             `json:"crate"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateProduct applies the supplied fields. An empty input is a no-op
// that returns the stored record unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false

	if input.ProductCode != nil {
		code := strings.TrimSpace(*input.ProductCode)
		if code != "" && code != product.ProductCode {
			_, err := s.productRepo.GetByCode(ctx, code)
			if err == nil {
				return nil, domain.ErrProductCodeExists
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			product.ProductCode = code
			changed = true
		}
	}
	if input.ProductName != nil && strings.TrimSpace(*input.ProductName) != "" {
		product.ProductName = strings.TrimSpace(*input.ProductName)
		changed = true
	}
	if input.Rate != nil {
		if input.Rate.IsNegative() {
			return nil, domain.ErrInvalidRate
		}
		product.Rate = *input.Rate
		changed = true
	}
	if input.Gst != nil {
		if !validGstPercent(*input.Gst) {
			return nil, domain.ErrInvalidGstPercent
		}
		product.Gst = *input.Gst
		changed = true
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
		changed = true
	}
	if input.Crate != nil {
		if *input.Crate < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Crate = *input.Crate
		changed = true
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
		changed = true
	}

	if !changed {
		return product, nil
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Uint("product_id", product.ID).Msg("product updated")
	return product, nil
}

// DeleteProduct removes a catalog entry. The delete is restricted while
// price overrides or ledger rows still reference the product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	referenced, err := s.priceRepo.ExistsByProduct(ctx, id)
	if err != nil {
		return err
	}
	if !referenced {
		referenced, err = s.demandRepo.ExistsByProduct(ctx, id)
		if err != nil {
			return err
		}
	}
	if referenced {
		return domain.ErrProductReferenced
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}

func validGstPercent(g decimal.Decimal) bool {
	return !g.IsNegative() && g.LessThanOrEqual(decimal.NewFromInt(100))
}
