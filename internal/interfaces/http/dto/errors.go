package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "INTERNAL_ERROR"
)

// Input error codes
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	ErrCodeSessionIdle  = "SESSION_IDLE"
)

// Resource error codes
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"
)

// Rate limiting error code
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain error codes onto HTTP status codes.
// Validation failures are 400s, auth failures 401/403, and business rule
// refusals 422 so the frontend can tell "you typed it wrong" apart from
// "the till won't allow that".
var errorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeSessionIdle:  http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Identity
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"NAME_TAKEN":          http.StatusConflict,

	// Validation raised by domain constructors
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_LITERS":         http.StatusBadRequest,
	"INVALID_BASKETS":        http.StatusBadRequest,
	"INVALID_LEFTOVER":       http.StatusBadRequest,
	"INVALID_PAYMENT_TYPE":   http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PIN":            http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_DESCRIPTION":    http.StatusBadRequest,
	"INVALID_CATEGORY":       http.StatusBadRequest,
	"INVALID_STAFF_NAME":     http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_COST":           http.StatusBadRequest,
	"INVALID_FIXED_COST":     http.StatusBadRequest,
	"INVALID_EFFECTIVE_FROM": http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_DATE":           http.StatusBadRequest,
	"INVALID_CUSTOMER":       http.StatusBadRequest,
	"INVALID_USER":           http.StatusBadRequest,
	"INVALID_SHIFT":          http.StatusBadRequest,

	// Business rules
	"SHIFT_CLOSED":          http.StatusUnprocessableEntity,
	"SHIFT_ALREADY_CLOSED":  http.StatusUnprocessableEntity,
	"UNJUSTIFIED_MISMATCH":  http.StatusUnprocessableEntity,
	"NO_CONFIG_FOR_DATE":    http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":  http.StatusUnprocessableEntity,
	"ALREADY_REVIEWED":      http.StatusUnprocessableEntity,
	"CUSTOMER_SETTLED":      http.StatusUnprocessableEntity,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
