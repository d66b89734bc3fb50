package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)

// NewInsufficientStockError creates an INSUFFICIENT_STOCK error carrying the
// available and requested quantities in the message shown to the user.
func NewInsufficientStockError(available, requested int) *DomainError {
	return NewDomainError(
		"INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock! Available: %d, Requested: %d", available, requested),
	)
}

// NewValidationError creates a VALIDATION_ERROR for a specific field
func NewValidationError(field, message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", fmt.Sprintf("%s: %s", field, message))
}
