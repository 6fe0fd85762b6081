package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/response"
)

// ProductPriceHandler handles price override endpoints
type ProductPriceHandler struct {
	pricingService *services.PricingService
}

// NewProductPriceHandler creates a new product price handler
func NewProductPriceHandler(pricingService *services.PricingService) *ProductPriceHandler {
	return &ProductPriceHandler{pricingService: pricingService}
}

// CreateProductPriceRequest represents override creation input
type CreateProductPriceRequest struct {
	DistributorID uint            `json:"distributor_id"`
	ProductID     uint            `json:"product_id"`
	Price         decimal.Decimal `json:"price"`
}

// CreateProductPrice handles creating an override (Admin only)
func (h *ProductPriceHandler) CreateProductPrice(c *fiber.Ctx) error {
	var req CreateProductPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.DistributorID == 0 || req.ProductID == 0 {
		return response.BadRequest(c, "distributor_id and product_id are required")
	}

	price, err := h.pricingService.CreateOverride(c.Context(), req.DistributorID, req.ProductID, req.Price)
	if err != nil {
		return translateError(c, err)
	}

	return response.Created(c, "Product price created successfully", price)
}

// ListProductPrices returns the full pricing matrix: every distributor
// with every product and its resolved price (Admin only).
func (h *ProductPriceHandler) ListProductPrices(c *fiber.Ctx) error {
	matrix, err := h.pricingService.ListPricingMatrix(c.Context())
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product prices retrieved successfully", matrix)
}

// GetProductPrice handles getting one override
func (h *ProductPriceHandler) GetProductPrice(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product price ID")
	}

	price, err := h.pricingService.GetOverride(c.Context(), id)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product price retrieved successfully", price)
}

// UpdateProductPriceRequest carries the only mutable override field
type UpdateProductPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// UpdateProductPrice handles changing an override's price (Admin only)
func (h *ProductPriceHandler) UpdateProductPrice(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product price ID")
	}

	var req UpdateProductPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	price, err := h.pricingService.UpdateOverride(c.Context(), id, req.Price)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product price updated successfully", price)
}

// DeleteProductPrice handles deleting an override (Admin only)
func (h *ProductPriceHandler) DeleteProductPrice(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product price ID")
	}

	if err := h.pricingService.DeleteOverride(c.Context(), id); err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product price deleted successfully", nil)
}
