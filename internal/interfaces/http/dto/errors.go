package dto

import "net/http"

// Transport-level error codes
const (
	ErrCodeUnknown      = "ERR_UNKNOWN"
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
)

// ErrorCodeHTTPStatus maps transport error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:      http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
}

// DomainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes are passed through to clients unchanged; this map only decides
// the status line.
var DomainCodeHTTPStatus = map[string]int{
	// input problems -> 400
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_SLUG":           http.StatusBadRequest,
	"INVALID_STOCK":          http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_RATING":         http.StatusBadRequest,
	"INVALID_REVIEW":         http.StatusBadRequest,
	"INVALID_VARIANT":        http.StatusBadRequest,
	"INVALID_CATEGORY":       http.StatusBadRequest,
	"INVALID_ADDRESS":        http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_PRODUCT":        http.StatusBadRequest,
	"INVALID_USER":           http.StatusBadRequest,
	"INVALID_DATE":           http.StatusBadRequest,
	"INVALID_IMAGE":          http.StatusBadRequest,
	"INVALID_REFERENCE":      http.StatusBadRequest,
	"EMPTY_ORDER":            http.StatusBadRequest,
	"NO_FILES":               http.StatusBadRequest,

	// authentication -> 401
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	// authorization -> 403
	"FORBIDDEN": http.StatusForbidden,

	// missing resources -> 404
	"NOT_FOUND":         http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,

	// conflicts -> 409
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CATEGORY_IN_USE":      http.StatusConflict,
	"REVIEW_EXISTS":        http.StatusConflict,
	"ALREADY_PAID":         http.StatusConflict,
	"ALREADY_DELIVERED":    http.StatusConflict,
	"ALREADY_ACTIVE":       http.StatusConflict,
	"ALREADY_ARCHIVED":     http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// state problems -> 422
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"NOT_PAID":                http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE":     http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":      http.StatusUnprocessableEntity,
	"PAYMENT_NOT_SUCCESSFUL":  http.StatusUnprocessableEntity,
	"PAYMENT_AMOUNT_MISMATCH": http.StatusUnprocessableEntity,

	// upstream gateway failures -> 502
	"PAYMENT_GATEWAY_ERROR": http.StatusBadGateway,

	// internal failures -> 500
	"TOKEN_ISSUE_FAILED":   http.StatusInternalServerError,
	"PASSWORD_HASH_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
