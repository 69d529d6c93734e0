package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")
	ErrInvalidPrice    = errors.New("INVALID_PRICE")
	ErrQueryTimeout    = errors.New("QUERY_TIMEOUT")
)
