package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/logger"
)

// PricingService resolves effective prices by overlaying distributor
// overrides onto catalog defaults
type PricingService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	priceRepo   repositories.ProductPriceRepository
	log         *logger.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	priceRepo repositories.ProductPriceRepository,
	log *logger.Logger,
) *PricingService {
	return &PricingService{userRepo: userRepo, productRepo: productRepo, priceRepo: priceRepo, log: log}
}

// ResolvedPrice is the effective price for a (distributor, product) pair
type ResolvedPrice struct {
	Price         decimal.Decimal `json:"price"`
	IsCustomPrice bool            `json:"is_custom_price"`
}

// ResolvePrice returns the distributor override when one exists,
// otherwise the catalog default rate.
func (s *PricingService) ResolvePrice(ctx context.Context, distributorID, productID uint) (*ResolvedPrice, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	override, err := s.priceRepo.GetByDistributorAndProduct(ctx, distributorID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ResolvedPrice{Price: product.Rate, IsCustomPrice: false}, nil
		}
		return nil, err
	}

	return &ResolvedPrice{Price: override.Price, IsCustomPrice: true}, nil
}

// DistributorProductView is one catalog row annotated with the resolved
// price for a distributor
type DistributorProductView struct {
	ID            uint            `json:"id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	DefaultRate   decimal.Decimal `json:"default_rate"`
	Price         decimal.Decimal `json:"price"`
	IsCustomPrice bool            `json:"is_custom_price"`
	CustomPriceID *uint           `json:"custom_price_id,omitempty"`
	Gst           decimal.Decimal `json:"gst"`
	Unit          string          `json:"unit"`
	Crate         int             `json:"crate"`
}

// ListProductsForDistributor returns every active product with the
// resolved price per the overlay rule. Products without an override
// still appear, priced at the catalog default.
func (s *PricingService) ListProductsForDistributor(ctx context.Context, distributorID uint) ([]*DistributorProductView, error) {
	if _, err := s.userRepo.GetByIDAndRole(ctx, distributorID, domain.RoleDistributor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDistributorNotFound
		}
		return nil, err
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.priceRepo.ListByDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uint]*models.ProductPrice, len(overrides))
	for _, override := range overrides {
		byProduct[override.ProductID] = override
	}

	return buildProductViews(products, byProduct), nil
}

// DistributorPricingBlock is one distributor's full resolved product list
type DistributorPricingBlock struct {
	Distributor struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"distributor"`
	Products          []*DistributorProductView `json:"products"`
	CustomPricesCount int                       `json:"custom_prices_count"`
	TotalProducts     int                       `json:"total_products"`
}

// ListPricingMatrix resolves the price of every product for every
// distributor. Overrides are pre-indexed by distributor so the walk is
// O(distributors x products).
func (s *PricingService) ListPricingMatrix(ctx context.Context) ([]*DistributorPricingBlock, error) {
	distributors, err := s.userRepo.ListAllByRole(ctx, domain.RoleDistributor)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := s.priceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byDistributor := make(map[uint]map[uint]*models.ProductPrice)
	for _, override := range overrides {
		m, ok := byDistributor[override.DistributorID]
		if !ok {
			m = make(map[uint]*models.ProductPrice)
			byDistributor[override.DistributorID] = m
		}
		m[override.ProductID] = override
	}

	blocks := make([]*DistributorPricingBlock, 0, len(distributors))
	for _, distributor := range distributors {
		block := &DistributorPricingBlock{
			Products:          buildProductViews(products, byDistributor[distributor.ID]),
			CustomPricesCount: len(byDistributor[distributor.ID]),
			TotalProducts:     len(products),
		}
		block.Distributor.ID = distributor.ID
		block.Distributor.Name = distributor.Name
		block.Distributor.Email = distributor.Email
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// CreateOverride sets a distributor-specific price for a product
func (s *PricingService) CreateOverride(ctx context.Context, distributorID, productID uint, price decimal.Decimal) (*models.ProductPrice, error) {
	if !price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	if _, err := s.userRepo.GetByIDAndRole(ctx, distributorID, domain.RoleDistributor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDistributorNotFound
		}
		return nil, err
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	_, err := s.priceRepo.GetByDistributorAndProduct(ctx, distributorID, productID)
	if err == nil {
		return nil, domain.ErrPriceAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	override := &models.ProductPrice{
		DistributorID: distributorID,
		ProductID:     productID,
		Price:         price,
	}
	if err := s.priceRepo.Create(ctx, override); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("distributor_id", distributorID).
		Uint("product_id", productID).
		Str("price", price.String()).
		Msg("price override created")
	return override, nil
}

// GetOverride returns one price override
func (s *PricingService) GetOverride(ctx context.Context, id uint) (*models.ProductPrice, error) {
	override, err := s.priceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPriceNotFound
		}
		return nil, err
	}
	return override, nil
}

// UpdateOverride changes the price of an existing override
func (s *PricingService) UpdateOverride(ctx context.Context, id uint, price decimal.Decimal) (*models.ProductPrice, error) {
	if !price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	override, err := s.GetOverride(ctx, id)
	if err != nil {
		return nil, err
	}

	override.Price = price
	if err := s.priceRepo.Update(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// DeleteOverride removes an override; pricing reverts to the catalog default
func (s *PricingService) DeleteOverride(ctx context.Context, id uint) error {
	if _, err := s.GetOverride(ctx, id); err != nil {
		return err
	}
	return s.priceRepo.Delete(ctx, id)
}

func buildProductViews(products []*models.Product, overrides map[uint]*models.ProductPrice) []*DistributorProductView {
	views := make([]*DistributorProductView, len(products))
	for i, product := range products {
		view := &DistributorProductView{
			ID:          product.ID,
			ProductCode: product.ProductCode,
			ProductName: product.ProductName,
			DefaultRate: product.Rate,
			Price:       product.Rate,
			Gst:         product.Gst,
			Unit:        product.Unit,
			Crate:       product.Crate,
		}
		if override, ok := overrides[product.ID]; ok {
			view.Price = override.Price
			view.IsCustomPrice = true
			id := override.ID
			view.CustomPriceID = &id
		}
		views[i] = view
	}
	return views
}
