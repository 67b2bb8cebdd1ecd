package domain

import "errors"

var (
	// ErrInvalidConfig signals invalid search or ranking parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrClientIDRequired signals a missing client identifier.
	ErrClientIDRequired = errors.New("client id required")
	// ErrCatalogUnavailable signals that the product catalog could not be loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
