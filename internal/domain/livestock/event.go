package livestock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is an immutable record of a change applied to a count
type Event struct {
	ID          uuid.UUID
	UserID      int64
	Category    Category
	Type        EventType
	MaleCount   int
	FemaleCount int
	EventDate   time.Time
	SalePrice   *decimal.Decimal // only set for SALE
	Cost        *decimal.Decimal
	CreatedAt   time.Time
}

// Total returns the number of animals the event affected
func (e *Event) Total() int {
	return e.MaleCount + e.FemaleCount
}
