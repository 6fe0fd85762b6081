package domain

import "errors"

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Identity errors
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailAlreadyExists       = errors.New("email already registered")
	ErrPartyCodeExists          = errors.New("party code already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrUserInactive             = errors.New("user account is inactive")
	ErrInvalidRole              = errors.New("invalid role")
	ErrCreationNotAllowed       = errors.New("creator role may not create the requested role")
	ErrMissingDistributorFields = errors.New("party code, mobile and route are required for distributors")
)

// Catalog errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductCodeExists = errors.New("product code already exists")
	ErrProductReferenced = errors.New("product is referenced by prices or demands")
)

// Pricing errors
var (
	ErrDistributorNotFound   = errors.New("distributor not found")
	ErrDistributorReferenced = errors.New("distributor is referenced by prices or demands")
	ErrPriceNotFound         = errors.New("product price not found")
	ErrPriceAlreadyExists    = errors.New("price already set for this distributor and product")
	ErrInvalidPrice          = errors.New("price must be greater than zero")
)

// Ledger errors
var (
	ErrDemandNotFound    = errors.New("demand not found")
	ErrInvalidQty        = errors.New("qty must be greater than zero")
	ErrInvalidRate       = errors.New("rate must be greater than zero")
	ErrInvalidGstPercent = errors.New("gst percent must be between 0 and 100")
	ErrNoDemandLines     = errors.New("at least one product line is required")
	ErrNoDispatchFields  = errors.New("no dispatch fields provided for update")
)
