package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/adapters/http/middleware"
	"dairyhub/internal/config"
	"dairyhub/internal/core/services"
	"dairyhub/internal/pkg/pagination"
	"dairyhub/internal/pkg/response"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// Signup handles public self-registration. The endpoint can be switched
// off so all provisioning goes through the delegated creation path.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	if !h.cfg.AllowSelfSignup {
		return response.Forbidden(c, "Self signup is disabled")
	}

	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Signup(c.Context(), &input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Created(c, "User registered successfully", result)
}

// CreateUser handles delegated user creation. The creator's role must be
// allowed to create the requested role.
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	creator := middleware.CurrentUser(c)

	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.CreateUserAs(c.Context(), creator, &input)
	if err != nil {
		return translateError(c, err)
	}

	return response.Created(c, "User created successfully", result)
}

// SignInRequest represents sign-in input
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles email/password authentication
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	result, err := h.authService.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Signed in successfully", result)
}

// ListUsers handles listing all users (Admin only)
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.authService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// ResetPasswordRequest represents password reset input
type ResetPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetPassword changes the caller's own password after verifying the
// current one.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}

	if err := h.authService.ResetPassword(c.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return translateError(c, err)
	}

	return response.Success(c, "Password reset successfully", nil)
}
