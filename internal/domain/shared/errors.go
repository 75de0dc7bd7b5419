package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so sentinel checks work
// against errors built with a more specific message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeAlreadyExists       = "ALREADY_EXISTS"

	CodeOrderNotFound   = "ORDER_NOT_FOUND"
	CodeOrderedNotFound = "ORDERED_NOT_FOUND"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeProductNotFound = "PRODUCT_NOT_FOUND"

	CodeOrderNotActive      = "ORDER_NOT_ACTIVE"
	CodeActiveOrderConflict = "ACTIVE_ORDER_CONFLICT"
	CodeOrderHasFulfillment = "ORDER_HAS_FULFILLMENT"
	CodeOrderAlreadyPlaced  = "ORDER_ALREADY_PLACED"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailAlreadyInUse   = "EMAIL_ALREADY_IN_USE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrConflict            = NewDomainError(CodeConflict, "Request conflicts with current resource state")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// Entity-specific not-found errors
var (
	ErrOrderNotFound   = NewDomainError(CodeOrderNotFound, "Order not found")
	ErrOrderedNotFound = NewDomainError(CodeOrderedNotFound, "Ordered not found")
	ErrUserNotFound    = NewDomainError(CodeUserNotFound, "User not found")
	ErrProductNotFound = NewDomainError(CodeProductNotFound, "Product not found")
)

// NewNotFoundError builds an entity-specific not-found error carrying the id.
// Unknown entities fall back to the generic NOT_FOUND code.
func NewNotFoundError(entity string, id int64) *DomainError {
	code := CodeNotFound
	switch entity {
	case "Order":
		code = CodeOrderNotFound
	case "Ordered":
		code = CodeOrderedNotFound
	case "User":
		code = CodeUserNotFound
	case "Product":
		code = CodeProductNotFound
	}
	return NewDomainError(code, fmt.Sprintf("%s not found with id: %d", entity, id))
}

// IsNotFound reports whether err is any of the not-found kinds.
func IsNotFound(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case CodeNotFound, CodeOrderNotFound, CodeOrderedNotFound, CodeUserNotFound, CodeProductNotFound:
		return true
	}
	return false
}
