package livestock

import (
	"time"
)

// User owns counts, events, tags and expenses. Its ID is assigned by the
// caller, not generated here.
type User struct {
	ID        int64
	CreatedAt time.Time
}

// NewUser creates a user with the given caller-assigned id
func NewUser(id int64) (*User, error) {
	if id <= 0 {
		return nil, NewInvalidRequestError("User ID must be positive")
	}
	return &User{ID: id, CreatedAt: time.Now()}, nil
}
