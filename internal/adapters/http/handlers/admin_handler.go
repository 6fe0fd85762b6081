package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/pagination"
	"dairyhub/internal/pkg/response"
)

// AdminHandler handles admin account endpoints
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListAdmins handles listing admin accounts
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	admins, total, err := h.userService.ListAdmins(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Admins retrieved successfully", pagination.NewResponse(admins, params, total))
}

// GetAdmin handles getting one admin account
func (h *AdminHandler) GetAdmin(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	admin, err := h.userService.GetAdmin(c.Context(), id)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Admin retrieved successfully", admin)
}

// DeleteAdmin handles deleting an admin account
func (h *AdminHandler) DeleteAdmin(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid admin ID")
	}

	if err := h.userService.DeleteAdmin(c.Context(), id); err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Admin deleted successfully", nil)
}
