package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/pagination"
	"dairyhub/internal/pkg/response"
)

// DistributorHandler handles distributor account endpoints
type DistributorHandler struct {
	userService *services.UserService
}

// NewDistributorHandler creates a new distributor handler
func NewDistributorHandler(userService *services.UserService) *DistributorHandler {
	return &DistributorHandler{userService: userService}
}

// ListDistributors handles listing distributor accounts (Admin only)
func (h *DistributorHandler) ListDistributors(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	distributors, total, err := h.userService.ListDistributors(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Distributors retrieved successfully", pagination.NewResponse(distributors, params, total))
}

// GetDistributor handles getting one distributor. A distributor may only
// read their own record.
func (h *DistributorHandler) GetDistributor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid distributor ID")
	}

	if err := h.requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	distributor, err := h.userService.GetDistributor(c.Context(), id)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Distributor retrieved successfully", distributor)
}

// UpdateDistributor handles a partial distributor update. A distributor
// may only update their own record; role and password are never touched.
func (h *DistributorHandler) UpdateDistributor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid distributor ID")
	}

	if err := h.requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	var input services.UpdateDistributorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	distributor, err := h.userService.UpdateDistributor(c.Context(), id, &input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Distributor updated successfully", distributor)
}

// DeleteDistributor handles deleting a distributor (Admin only)
func (h *DistributorHandler) DeleteDistributor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid distributor ID")
	}

	if err := h.userService.DeleteDistributor(c.Context(), id); err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Distributor deleted successfully", nil)
}

func (h *DistributorHandler) requireSelfOrAdmin(c *fiber.Ctx, id uint) error {
	user := middleware.CurrentUser(c)
	if user.Role == domain.RoleDistributor && user.ID != id {
		return response.Forbidden(c, "Access denied. Insufficient permissions")
	}
	return nil
}
