package finance

import (
	"fmt"
	"strings"
)

// Validation error codes
const (
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeInvalidDiscount = "INVALID_DISCOUNT"
	CodeInvalidTaxRate  = "INVALID_TAX_RATE"
	CodeInvalidAmount   = "INVALID_AMOUNT"
	CodeAmountRange     = "AMOUNT_OUT_OF_RANGE"
	CodeUnknownProduct  = "UNKNOWN_PRODUCT"
	CodeRequired        = "REQUIRED"
)

// ValidationError is a field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidationError creates a ValidationError
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects field errors; a nil or empty value means valid
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return strings.Join(parts, "; ")
}

// WithPrefix qualifies every field name, e.g. "quantity" -> "items[2].quantity"
func (e ValidationErrors) WithPrefix(prefix string) ValidationErrors {
	out := make(ValidationErrors, len(e))
	for i, v := range e {
		out[i] = &ValidationError{Field: prefix + "." + v.Field, Code: v.Code, Message: v.Message}
	}
	return out
}
