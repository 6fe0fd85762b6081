package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/pagination"
	"dairyhub/internal/pkg/response"
)

// DemandHandler handles demand/dispatch ledger endpoints
type DemandHandler struct {
	demandService *services.DemandService
}

// NewDemandHandler creates a new demand handler
func NewDemandHandler(demandService *services.DemandService) *DemandHandler {
	return &DemandHandler{demandService: demandService}
}

// CreateDemandRequest represents a demand submission
type CreateDemandRequest struct {
	Rno      string              `json:"rno"`
	Date     string              `json:"date"`
	Products []DemandLineRequest `json:"products"`
}

// DemandLineRequest is one product line of a submission
type DemandLineRequest struct {
	ProductID  uint             `json:"product_id"`
	Qty        decimal.Decimal  `json:"qty"`
	Rate       *decimal.Decimal `json:"rate"`
	GstPercent *decimal.Decimal `json:"gst_percent"`
}

// CreateDemand records one demand submission for the calling
// distributor, one ledger row per product line, atomically.
func (h *DemandHandler) CreateDemand(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateDemandRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Rno == "" || len(req.Products) == 0 {
		return response.BadRequest(c, "Valid RNO and at least one product required")
	}

	input := &services.CreateDemandInput{
		Rno:   req.Rno,
		Lines: make([]services.DemandLineInput, len(req.Products)),
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return response.BadRequest(c, "Invalid date format")
		}
		input.Date = &date
	}
	for i, line := range req.Products {
		input.Lines[i] = services.DemandLineInput{
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			Rate:       line.Rate,
			GstPercent: line.GstPercent,
		}
	}

	result, err := h.demandService.CreateDemand(c.Context(), user.ID, input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Created(c, "Demand created successfully", result)
}

// ListDemands lists ledger rows newest first. An admin sees every row,
// a distributor only their own.
func (h *DemandHandler) ListDemands(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	params := pagination.GetParams(c)

	var distributorID *uint
	if user.Role == domain.RoleDistributor {
		distributorID = &user.ID
	}

	demands, total, err := h.demandService.ListDemands(c.Context(), distributorID, params.Offset, params.Limit)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Demands retrieved successfully", pagination.NewResponse(demands, params, total))
}

// GetDemand returns one ledger row, scoped like ListDemands
func (h *DemandHandler) GetDemand(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid demand ID")
	}

	demand, err := h.demandService.GetDemand(c.Context(), id)
	if err != nil {
		return translateError(c, err)
	}

	user := middleware.CurrentUser(c)
	if user.Role == domain.RoleDistributor && demand.DistributorID != user.ID {
		return response.Forbidden(c, "Access denied. Insufficient permissions")
	}

	return response.Success(c, "Demand retrieved successfully", demand)
}

// UpdateDispatchRequest carries the fulfillment fields
type UpdateDispatchRequest struct {
	DispatchQty  *decimal.Decimal `json:"dispatch_qty"`
	DispatchDate *string          `json:"dispatch_date"`
	DispatchNo   *string          `json:"dispatch_no"`
	GatePassNo   *string          `json:"gate_pass_no"`
	VehicleNo    *string          `json:"vehicle_no"`
}

// UpdateDispatch records fulfillment on a ledger row and advances it to
// dispatched (Admin only).
func (h *DemandHandler) UpdateDispatch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid demand ID")
	}

	var req UpdateDispatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateDispatchInput{
		DispatchQty: req.DispatchQty,
		DispatchNo:  req.DispatchNo,
		GatePassNo:  req.GatePassNo,
		VehicleNo:   req.VehicleNo,
	}
	if req.DispatchDate != nil && *req.DispatchDate != "" {
		var date time.Time
		date, err = parseDate(*req.DispatchDate)
		if err != nil {
			return response.BadRequest(c, "Invalid dispatch date format")
		}
		input.DispatchDate = &date
	}

	demand, err := h.demandService.UpdateDispatch(c.Context(), id, input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Dispatch updated successfully", demand)
}
