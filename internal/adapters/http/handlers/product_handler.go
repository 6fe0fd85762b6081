package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/response"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *services.ProductService
	pricingService *services.PricingService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, pricingService *services.PricingService) *ProductHandler {
	return &ProductHandler{productService: productService, pricingService: pricingService}
}

// CreateProduct handles creating a catalog entry (Admin only)
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.CreateProduct(c.Context(), &input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Created(c, "Product created successfully", product)
}

// ListProducts handles listing the catalog (Admin only)
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.Context())
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Products retrieved successfully", products)
}

// GetProduct handles getting one catalog entry (Admin only)
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productService.GetProduct(c.Context(), id)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product retrieved successfully", product)
}

// UpdateProduct handles a partial product update (Admin only)
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.UpdateProduct(c.Context(), id, &input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product updated successfully", product)
}

// DeleteProduct handles deleting a catalog entry (Admin only)
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.DeleteProduct(c.Context(), id); err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Product deleted successfully", nil)
}

// ListProductsForDistributor returns the catalog with resolved prices.
// A distributor sees their own pricing; an admin passes ?distributorId=.
func (h *ProductHandler) ListProductsForDistributor(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	distributorID := user.ID
	if user.Role == domain.RoleAdmin {
		raw := c.Query("distributorId")
		if raw == "" {
			return response.BadRequest(c, "distributorId query parameter is required")
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid distributor ID")
		}
		distributorID = uint(id)
	}

	products, err := h.pricingService.ListProductsForDistributor(c.Context(), distributorID)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Products retrieved successfully", products)
}
