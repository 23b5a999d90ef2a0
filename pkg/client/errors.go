package client

import (
	"errors"
	"fmt"
)

// Error is a problem details response returned by the API
type Error struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("livestock api: %d %s", e.Status, e.Title)
	}
	return fmt.Sprintf("livestock api: %d %s: %s", e.Status, e.Title, e.Detail)
}

// Code returns the error code, e.g. USER_NOT_FOUND
func (e *Error) Code() string {
	return e.Title
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Title == t.Title
}

// Codes the client callers most often branch on
var (
	ErrUserNotFound  = &Error{Title: "USER_NOT_FOUND"}
	ErrUserExists    = &Error{Title: "USER_EXISTS"}
	ErrCountNotFound = &Error{Title: "LIVESTOCK_COUNT_NOT_FOUND"}
	ErrCountExists   = &Error{Title: "LIVESTOCK_COUNT_EXISTS"}
	ErrEventNotFound = &Error{Title: "EVENT_NOT_FOUND"}
	ErrRateLimited   = &Error{Title: "RATE_LIMIT_EXCEEDED"}
)

// CodeOf returns the API error code of err, or "" when err is not an *Error
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code()
	}
	return ""
}
