package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"dairyhub/internal/core/domain"
	"dairyhub/internal/pkg/response"
)

// parseIDParam reads the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate accepts dates as YYYY-MM-DD or RFC3339
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// translateError maps typed domain errors to the response envelope.
// Anything unrecognized is an internal error and leaks no detail.
func translateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrCreationNotAllowed):
		return response.Forbidden(c, "Access denied. Insufficient permissions")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrDistributorNotFound):
		return response.NotFound(c, "Distributor not found")
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound(c, "Product not found")
	case errors.Is(err, domain.ErrPriceNotFound):
		return response.NotFound(c, "Product price not found")
	case errors.Is(err, domain.ErrDemandNotFound):
		return response.NotFound(c, "Demand not found")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Resource not found")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return response.BadRequest(c, "Email already registered")
	case errors.Is(err, domain.ErrPartyCodeExists):
		return response.BadRequest(c, "Party code already registered")
	case errors.Is(err, domain.ErrProductCodeExists):
		return response.BadRequest(c, "Product Code already exists")
	case errors.Is(err, domain.ErrPriceAlreadyExists):
		return response.BadRequest(c, "Price already set for this distributor and product")
	case errors.Is(err, domain.ErrProductReferenced):
		return response.BadRequest(c, "Product is referenced by prices or demands and cannot be deleted")
	case errors.Is(err, domain.ErrDistributorReferenced):
		return response.BadRequest(c, "Distributor is referenced by prices or demands and cannot be deleted")
	case errors.Is(err, domain.ErrInvalidRole):
		return response.BadRequest(c, "Invalid role. Must be Admin, Distributor or Sub-Admin")
	case errors.Is(err, domain.ErrMissingDistributorFields),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidQty),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrInvalidGstPercent),
		errors.Is(err, domain.ErrNoDemandLines),
		errors.Is(err, domain.ErrNoDispatchFields),
		errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, capitalize(err.Error()))
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
