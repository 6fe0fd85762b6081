package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dairyhub/internal/pkg/response"
)

// HealthHandler exposes liveness endpoints
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles the root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "dairyhub API", fiber.Map{
		"service": "dairyhub",
		"version": "1.0",
	})
}

// HealthCheck reports service and database health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unreachable")
	}
	return response.Success(c, "OK", fiber.Map{
		"database": "up",
	})
}
