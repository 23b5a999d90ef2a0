package livestock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/shared"
)

// Tag is an individually identified animal. Its status and event link are
// overwritten by the last event that touched it.
type Tag struct {
	shared.BaseEntity
	UserID        int64
	Category      Category
	TagNumber     string
	Gender        Gender
	Status        TagStatus
	EventID       uuid.UUID
	PurchasePrice *decimal.Decimal
}

func newTag(userID int64, category Category, number string, gender Gender, eventID uuid.UUID, price *decimal.Decimal) *Tag {
	return &Tag{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		Category:      category,
		TagNumber:     number,
		Gender:        gender,
		Status:        TagStatusAlive,
		EventID:       eventID,
		PurchasePrice: copyDecimal(price),
	}
}

// IsAlive reports whether the tag can still be consumed by an event
func (t *Tag) IsAlive() bool {
	return t.Status == TagStatusAlive
}

func (t *Tag) transition(status TagStatus, eventID uuid.UUID) {
	t.Status = status
	t.EventID = eventID
	t.Touch()
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
