package livestock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livestock/backend/internal/domain/shared"
)

func TestParseEventType(t *testing.T) {
	t.Run("is case-insensitive", func(t *testing.T) {
		et, err := ParseEventType(" sale ")
		require.NoError(t, err)
		assert.Equal(t, EventTypeSale, et)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseEventType("MIGRATION")
		require.Error(t, err)
		assert.Equal(t, CodeInvalidEventType, shared.CodeOf(err))
		assert.Equal(t, "Invalid event type: MIGRATION", err.Error())
	})
}

func TestEventType_Classification(t *testing.T) {
	tests := []struct {
		eventType    EventType
		increasing   bool
		decreasing   bool
		requiresTags bool
	}{
		{EventTypeBirth, true, false, false},
		{EventTypePurchase, true, false, false},
		{EventTypeDeath, false, true, false},
		{EventTypeSale, false, true, true},
		{EventTypeSlaughter, false, true, true},
		{EventTypeLost, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.eventType.String(), func(t *testing.T) {
			assert.Equal(t, tt.increasing, tt.eventType.IsIncreasing())
			assert.Equal(t, tt.decreasing, tt.eventType.IsDecreasing())
			assert.Equal(t, tt.requiresTags, tt.eventType.RequiresTags())
			_, consumes := tt.eventType.TerminalStatus()
			assert.Equal(t, tt.decreasing, consumes)
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("goat")
	require.NoError(t, err)
	assert.Equal(t, CategoryGoat, c)
	assert.Equal(t, "Goat", c.Title())

	_, err = ParseCategory("horse")
	assert.Equal(t, CodeInvalidRequest, shared.CodeOf(err))
}

func TestParseExpenseCategory(t *testing.T) {
	c, err := ParseExpenseCategory("feed")
	require.NoError(t, err)
	assert.Equal(t, ExpenseCategoryFeed, c)
	assert.Equal(t, "Animal feed and supplements", c.Description())

	_, err = ParseExpenseCategory("fuel")
	assert.Equal(t, CodeInvalidExpenseCategory, shared.CodeOf(err))
}

func TestExpenseCategoriesHaveDescriptions(t *testing.T) {
	assert.Len(t, expenseCategoryDescriptions, 13)
	for c, d := range expenseCategoryDescriptions {
		assert.True(t, c.IsValid())
		assert.NotEmpty(t, d)
	}
}

func TestParseTagStatus(t *testing.T) {
	s, err := ParseTagStatus("alive")
	require.NoError(t, err)
	assert.Equal(t, TagStatusAlive, s)

	_, err = ParseTagStatus("missing")
	assert.Equal(t, CodeInvalidRequest, shared.CodeOf(err))
}
