package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain errors keep the
// code they were raised with.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeMissingStore    = "MISSING_STORE"
	ErrCodeTimeout         = "REQUEST_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeMissingStore:   http.StatusBadRequest,
	"INVALID_INPUT":       http.StatusBadRequest,
	"REQUIRED":            http.StatusBadRequest,
	"UNKNOWN_PRODUCT":     http.StatusBadRequest,
	"INVALID_HTML":        http.StatusBadRequest,
	"AMOUNT_OUT_OF_RANGE": http.StatusBadRequest,

	// Auth
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resources
	ErrCodeNotFound:        http.StatusNotFound,
	"ITEM_NOT_FOUND":       http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_SUBMISSION": http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"ACCOUNT_HAS_CHILDREN": http.StatusUnprocessableEntity,
	"ACCOUNT_IN_USE":       http.StatusUnprocessableEntity,
	"EMPTY_DOCUMENT":       http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":       http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":     http.StatusUnprocessableEntity,

	// Printing
	"PRINTING_UNAVAILABLE": http.StatusServiceUnavailable,
	"RENDER_TIMEOUT":       http.StatusGatewayTimeout,
	"RENDER_FAILED":        http.StatusBadGateway,
	"STORAGE_FAILED":       http.StatusBadGateway,
	"TEMPLATE_FAILED":      http.StatusInternalServerError,

	// Transport
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeTimeout:         http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes of
// the INVALID_* family are input errors; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
