package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesOnCode(t *testing.T) {
	err := fmt.Errorf("loading count: %w", NewDomainError("NOT_FOUND", "Count not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "NOT_FOUND", CodeOf(err))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestNewBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()

	assert.Equal(t, 1, root.GetVersion())
	assert.NotEqual(t, root.GetID().String(), "00000000-0000-0000-0000-000000000000")
	root.IncrementVersion()
	assert.Equal(t, 2, root.GetVersion())
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		size      int
		wantPages int
	}{
		{"empty", 0, 20, 0},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"zero size", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated[int](nil, tt.total, 0, tt.size)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.NotNil(t, p.Content)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(0, 20))
	assert.Equal(t, 40, Offset(2, 20))
}
