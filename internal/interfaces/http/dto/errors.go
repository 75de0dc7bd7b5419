package dto

import "net/http"

// Transport error codes. Domain errors keep their own codes
// (ORDER_NOT_FOUND, INVALID_TRANSITION, ...) in the response body.
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Transport
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,

	// Missing entities
	"NOT_FOUND":         http.StatusNotFound,
	"ORDER_NOT_FOUND":   http.StatusNotFound,
	"ORDERED_NOT_FOUND": http.StatusNotFound,
	"USER_NOT_FOUND":    http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,

	// Lifecycle conflicts
	"ORDER_NOT_ACTIVE":      http.StatusConflict,
	"ACTIVE_ORDER_CONFLICT": http.StatusConflict,
	"ORDER_HAS_FULFILLMENT": http.StatusConflict,
	"ORDER_ALREADY_PLACED":  http.StatusConflict,
	"EMAIL_ALREADY_IN_USE":  http.StatusConflict,
	"ALREADY_EXISTS":        http.StatusConflict,
	"CONFLICT":              http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"INVALID_STATE":         http.StatusConflict,

	// Bad input
	"INVALID_TRANSITION": http.StatusBadRequest,
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_ROLE":       http.StatusBadRequest,
	"INVALID_GENDER":     http.StatusBadRequest,
	"INVALID_PASSWORD":   http.StatusBadRequest,
	"INVALID_EMAIL":      http.StatusBadRequest,

	// Auth
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
