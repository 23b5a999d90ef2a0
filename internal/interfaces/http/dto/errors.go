package dto

import (
	"net/http"

	"github.com/livestock/backend/internal/domain/livestock"
)

// Transport error codes. These never leave the HTTP layer.
const (
	// ErrCodeRouteNotFound is used when no route matches the request
	ErrCodeRouteNotFound = "ROUTE_NOT_FOUND"
	// ErrCodeMethodNotAllowed is used when the route exists for another method
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when a client exceeds its request quota
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Domain codes that are not listed are reported as 500.
var ErrorCodeHTTPStatus = map[string]int{
	// Conflicts
	livestock.CodeCountExists: http.StatusConflict,
	livestock.CodeUserExists:  http.StatusConflict,

	// Missing resources
	livestock.CodeCountNotFound: http.StatusNotFound,
	livestock.CodeUserNotFound:  http.StatusNotFound,
	livestock.CodeEventNotFound: http.StatusNotFound,

	// Malformed input
	livestock.CodeInvalidRequest:   http.StatusBadRequest,
	livestock.CodeInvalidEventType: http.StatusBadRequest,

	// Transport
	ErrCodeRouteNotFound:    http.StatusNotFound,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
