package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/adapters/persistence/models"
	"dairyhub/internal/adapters/persistence/repositories"
	"dairyhub/internal/config"
	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/jwt"
	"dairyhub/internal/pkg/response"
)

const localUserKey = "user"

// AuthMiddleware verifies the bearer token, loads the active user and
// stores it on the request context. Missing, expired and malformed
// tokens each get their own 401 message.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token is required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			return response.Unauthorized(c, "Invalid or inactive user")
		}

		c.Locals(localUserKey, user)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by AuthMiddleware
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUserKey).(*models.User)
	return user
}

// RequireRole gates a route to the given roles. An empty role set means
// any authenticated user.
func RequireRole(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "User not authenticated")
		}

		if len(allowedRoles) == 0 {
			return c.Next()
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Access denied. Insufficient permissions")
	}
}

// AdminOnly gates a route to Admin accounts
func AdminOnly() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// AdminOrDistributor gates a route to Admin and Distributor accounts
func AdminOrDistributor() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleDistributor)
}
