package livestock

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/shared"
)

// Count is the aggregate root holding the live tally of one category for one user.
// MaxID is the watermark used to number newly minted tags; it only grows.
type Count struct {
	shared.BaseAggregateRoot
	UserID      int64
	Category    Category
	MaleCount   int
	FemaleCount int
	MaxID       int
}

// NewCount creates the initial count for a (user, category) pair.
// The watermark starts at the initial herd size.
func NewCount(userID int64, category Category, maleCount, femaleCount int) (*Count, error) {
	if !category.IsValid() {
		return nil, NewInvalidRequestError("Invalid category: " + category.String())
	}
	if maleCount < 0 || femaleCount < 0 {
		return nil, NewInvalidRequestError("Counts cannot be negative")
	}

	return &Count{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Category:          category,
		MaleCount:         maleCount,
		FemaleCount:       femaleCount,
		MaxID:             maleCount + femaleCount,
	}, nil
}

// Total returns the number of live animals in the count
func (c *Count) Total() int {
	return c.MaleCount + c.FemaleCount
}

// EventSpec describes an event a caller wants to apply to a count.
// TagNumbers is nil when the caller supplied no identifiers.
type EventSpec struct {
	Type        EventType
	MaleCount   int
	FemaleCount int
	SalePrice   *decimal.Decimal
	Cost        *decimal.Decimal
	TagNumbers  []string
	EventDate   time.Time
}

// Total returns the number of animals the event names
func (s EventSpec) Total() int {
	return s.MaleCount + s.FemaleCount
}

// ConsumesTags reports whether the event resolves existing tags.
// DEATH only consumes tags when the caller names some.
func (s EventSpec) ConsumesTags() bool {
	if s.Type.RequiresTags() {
		return true
	}
	return s.Type == EventTypeDeath && len(s.TagNumbers) > 0
}

// Reconciliation is the outcome of applying an event to a count
type Reconciliation struct {
	Event       *Event
	MintedTags  []*Tag
	UpdatedTags []*Tag
}

// PlanTagNumbers returns the tag numbers an increasing event would mint,
// males first. It returns nil for every other event type and never mutates the count.
func (c *Count) PlanTagNumbers(spec EventSpec) []string {
	if !spec.Type.IsIncreasing() {
		return nil
	}
	if spec.TagNumbers != nil {
		numbers := make([]string, len(spec.TagNumbers))
		copy(numbers, spec.TagNumbers)
		return numbers
	}

	start := c.MaxID + 1
	numbers := make([]string, 0, spec.Total())
	for i := 0; i < spec.MaleCount; i++ {
		numbers = append(numbers, GenderMale.Prefix()+strconv.Itoa(start+i))
	}
	for i := 0; i < spec.FemaleCount; i++ {
		numbers = append(numbers, GenderFemale.Prefix()+strconv.Itoa(start+spec.MaleCount+i))
	}
	return numbers
}

// Reconcile validates spec against the count and, only when every check
// passes, applies it: counts move, tags are minted or transitioned and the
// event is built. resolved holds the tags found for spec.TagNumbers.
//
// Checks run in order: sale price, tag identifiers, resulting counts.
func (c *Count) Reconcile(spec EventSpec, resolved []*Tag) (*Reconciliation, error) {
	if err := checkShape(spec); err != nil {
		return nil, err
	}
	salePrice, err := checkSalePrice(spec)
	if err != nil {
		return nil, err
	}
	if err := c.checkTags(spec, resolved); err != nil {
		return nil, err
	}
	if spec.Type.IsDecreasing() {
		if spec.MaleCount > c.MaleCount || spec.FemaleCount > c.FemaleCount {
			return nil, NewNegativeCountError(c.UserID, c.Category)
		}
	}

	eventDate := spec.EventDate
	if eventDate.IsZero() {
		eventDate = time.Now()
	}
	event := &Event{
		ID:          uuid.New(),
		UserID:      c.UserID,
		Category:    c.Category,
		Type:        spec.Type,
		MaleCount:   spec.MaleCount,
		FemaleCount: spec.FemaleCount,
		EventDate:   DateOf(eventDate),
		SalePrice:   salePrice,
		Cost:        roundMoney(spec.Cost),
		CreatedAt:   time.Now(),
	}
	result := &Reconciliation{Event: event}

	if spec.Type.IsIncreasing() {
		numbers := c.PlanTagNumbers(spec)
		result.MintedTags = make([]*Tag, 0, len(numbers))
		for i, number := range numbers {
			gender := GenderMale
			if i >= spec.MaleCount {
				gender = GenderFemale
			}
			result.MintedTags = append(result.MintedTags,
				newTag(c.UserID, c.Category, number, gender, event.ID, event.Cost))
		}
		c.MaleCount += spec.MaleCount
		c.FemaleCount += spec.FemaleCount
		c.MaxID += spec.Total()
	} else {
		c.MaleCount -= spec.MaleCount
		c.FemaleCount -= spec.FemaleCount
		if status, ok := spec.Type.TerminalStatus(); ok && spec.ConsumesTags() {
			for _, tag := range resolved {
				tag.transition(status, event.ID)
			}
			result.UpdatedTags = resolved
		}
	}

	c.Touch()
	c.IncrementVersion()
	return result, nil
}

func checkShape(spec EventSpec) error {
	if !spec.Type.IsValid() {
		return NewInvalidEventTypeError(spec.Type.String())
	}
	if spec.MaleCount < 0 || spec.FemaleCount < 0 {
		return NewInvalidRequestError("Counts cannot be negative")
	}
	if spec.Cost != nil && spec.Cost.IsNegative() {
		return NewInvalidRequestError("Cost cannot be negative")
	}
	return nil
}

// checkSalePrice returns the sale price to record. Prices on non-SALE events are dropped.
func checkSalePrice(spec EventSpec) (*decimal.Decimal, error) {
	if spec.Type != EventTypeSale {
		return nil, nil
	}
	if spec.SalePrice == nil || !spec.SalePrice.IsPositive() {
		return nil, NewInvalidSalePriceError(spec.SalePrice)
	}
	return roundMoney(spec.SalePrice), nil
}

func (c *Count) checkTags(spec EventSpec, resolved []*Tag) error {
	if spec.Type.IsIncreasing() {
		if spec.TagNumbers == nil {
			return nil
		}
		if len(spec.TagNumbers) != spec.Total() {
			return NewIDCountMismatchError(len(spec.TagNumbers), spec.Total())
		}
		return checkSupplied(spec.TagNumbers)
	}

	if !spec.ConsumesTags() {
		return nil
	}
	if len(spec.TagNumbers) == 0 {
		return NewInvalidLivestockIDsError(DetailNoIDs)
	}
	if err := checkSupplied(spec.TagNumbers); err != nil {
		return err
	}

	requested := make(map[string]struct{}, len(spec.TagNumbers))
	for _, n := range spec.TagNumbers {
		requested[n] = struct{}{}
	}
	found := make(map[string]struct{}, len(resolved))
	for _, tag := range resolved {
		if tag == nil || tag.UserID != c.UserID || tag.Category != c.Category {
			continue
		}
		if _, ok := requested[tag.TagNumber]; ok {
			found[tag.TagNumber] = struct{}{}
		}
	}
	if len(found) != len(spec.TagNumbers) || len(resolved) != len(spec.TagNumbers) {
		missing := make([]string, 0)
		for _, n := range spec.TagNumbers {
			if _, ok := found[n]; !ok {
				missing = append(missing, n)
			}
		}
		return NewInvalidLivestockIDsError(DetailNotFound, missing...)
	}
	if len(resolved) != spec.Total() {
		return NewIDCountMismatchError(len(resolved), spec.Total())
	}

	var notAlive []string
	for _, tag := range resolved {
		if !tag.IsAlive() {
			notAlive = append(notAlive, tag.TagNumber)
		}
	}
	if len(notAlive) > 0 {
		return NewInvalidLivestockIDsError(DetailNotAlive, notAlive...)
	}
	return nil
}

// checkSupplied rejects blank and repeated identifiers
func checkSupplied(numbers []string) error {
	seen := make(map[string]struct{}, len(numbers))
	var dups []string
	for _, n := range numbers {
		if strings.TrimSpace(n) == "" {
			return NewInvalidLivestockIDsError(DetailBlankID)
		}
		if _, ok := seen[n]; ok {
			dups = append(dups, n)
			continue
		}
		seen[n] = struct{}{}
	}
	if len(dups) > 0 {
		return NewInvalidLivestockIDsError(DetailDuplicate, dups...)
	}
	return nil
}

func roundMoney(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}
