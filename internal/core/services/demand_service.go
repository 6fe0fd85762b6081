package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/logger"
)

// DemandService handles the demand/dispatch ledger
type DemandService struct {
	demandRepo  repositories.DemandRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	log         *logger.Logger
}

// NewDemandService creates a new demand service
func NewDemandService(
	demandRepo repositories.DemandRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	log *logger.Logger,
) *DemandService {
	return &DemandService{demandRepo: demandRepo, productRepo: productRepo, userRepo: userRepo, log: log}
}

// DemandLineInput is one product line of a demand submission. Rate and
// gst percent fall back to the catalog values when absent.
type DemandLineInput struct {
	ProductID  uint             `json:"product_id"`
	Qty        decimal.Decimal  `json:"qty"`
	Rate       *decimal.Decimal `json:"rate"`
	GstPercent *decimal.Decimal `json:"gst_percent"`
}

// CreateDemandInput is a full demand submission
type CreateDemandInput struct {
	Rno   string            `json:"rno"`
	Date  *time.Time        `json:"date"`
	Lines []DemandLineInput `json:"products"`
}

// CreateDemandResult carries the generated row identifiers
type CreateDemandResult struct {
	InsertedCount int    `json:"inserted_count"`
	IDs           []uint `json:"ids"`
}

// CreateDemand validates every line, snapshots rate and gst from the
// catalog where not supplied, computes amount/gst/total per line and
// inserts all rows atomically. Any bad line aborts the whole submission
// before a single row is written.
func (s *DemandService) CreateDemand(ctx context.Context, distributorID uint, input *CreateDemandInput) (*CreateDemandResult, error) {
	if input.Rno == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return nil, domain.ErrNoDemandLines
	}

	if _, err := s.userRepo.GetByIDAndRole(ctx, distributorID, domain.RoleDistributor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDistributorNotFound
		}
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	demands := make([]*models.Demand, 0, len(input.Lines))
	for _, line := range input.Lines {
		if !line.Qty.IsPositive() {
			return nil, domain.ErrInvalidQty
		}

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrProductNotFound
			}
			return nil, err
		}

		rate := product.Rate
		if line.Rate != nil {
			rate = *line.Rate
		}
		if !rate.IsPositive() {
			return nil, domain.ErrInvalidRate
		}

		gstPercent := product.Gst
		if line.GstPercent != nil {
			gstPercent = *line.GstPercent
		}
		if !validGstPercent(gstPercent) {
			return nil, domain.ErrInvalidGstPercent
		}

		amount, gstAmt, total := computeLineTotals(line.Qty, rate, gstPercent)

		demands = append(demands, &models.Demand{
			Date:          date,
			Rno:           input.Rno,
			DistributorID: distributorID,
			ProductID:     line.ProductID,
			Qty:           line.Qty,
			Rate:          rate,
			Amount:        amount,
			GstPercent:    gstPercent,
			GstAmt:        gstAmt,
			Total:         total,
			Status:        models.DemandStatusCreated,
		})
	}

	ids, err := s.demandRepo.CreateBatch(ctx, demands)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("distributor_id", distributorID).
		Str("rno", input.Rno).
		Int("lines", len(ids)).
		Msg("demand created")

	return &CreateDemandResult{InsertedCount: len(ids), IDs: ids}, nil
}

// UpdateDispatchInput carries the fulfillment fields. At least one must
// be supplied.
type UpdateDispatchInput struct {
	DispatchQty  *decimal.Decimal `json:"dispatch_qty"`
	DispatchDate *time.Time       `json:"dispatch_date"`
	DispatchNo   *string          `json:"dispatch_no"`
	GatePassNo   *string          `json:"gate_pass_no"`
	VehicleNo    *string          `json:"vehicle_no"`
}

// UpdateDispatch sets the supplied fulfillment fields and advances the
// row to dispatched.
func (s *DemandService) UpdateDispatch(ctx context.Context, id uint, input *UpdateDispatchInput) (*models.Demand, error) {
	updates := map[string]interface{}{}
	if input.DispatchQty != nil {
		updates["dispatch_qty"] = *input.DispatchQty
	}
	if input.DispatchDate != nil {
		updates["dispatch_date"] = *input.DispatchDate
	}
	if input.DispatchNo != nil && *input.DispatchNo != "" {
		updates["dispatch_no"] = *input.DispatchNo
	}
	if input.GatePassNo != nil && *input.GatePassNo != "" {
		updates["gate_pass_no"] = *input.GatePassNo
	}
	if input.VehicleNo != nil && *input.VehicleNo != "" {
		updates["vehicle_no"] = *input.VehicleNo
	}

	if len(updates) == 0 {
		return nil, domain.ErrNoDispatchFields
	}
	updates["status"] = models.DemandStatusDispatched

	if err := s.demandRepo.UpdateDispatch(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, err
	}

	demand, err := s.demandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("demand_id", id).Msg("demand dispatched")
	return demand, nil
}

// GetDemand returns one ledger row
func (s *DemandService) GetDemand(ctx context.Context, id uint) (*models.Demand, error) {
	demand, err := s.demandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDemandNotFound
		}
		return nil, err
	}
	return demand, nil
}

// ListDemands returns ledger rows newest first. A non-nil distributorID
// scopes the listing.
func (s *DemandService) ListDemands(ctx context.Context, distributorID *uint, offset, limit int) ([]*models.Demand, int64, error) {
	return s.demandRepo.List(ctx, distributorID, offset, limit)
}

// computeLineTotals derives the snapshot columns of one ledger line:
// amount = qty x rate, gstAmt = amount x gstPercent/100, total = amount + gstAmt.
func computeLineTotals(qty, rate, gstPercent decimal.Decimal) (amount, gstAmt, total decimal.Decimal) {
	amount = qty.Mul(rate)
	gstAmt = amount.Mul(gstPercent).Div(decimal.NewFromInt(100))
	total = amount.Add(gstAmt)
	return amount, gstAmt, total
}
