package livestock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by id, returning shared.ErrNotFound if absent
	FindByID(ctx context.Context, id int64) (*User, error)

	// ExistsByID checks whether a user exists
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create inserts a new user
	Create(ctx context.Context, user *User) error
}

// CountRepository defines the interface for count persistence
type CountRepository interface {
	// FindByUserAndCategory finds the count of a (user, category) pair
	FindByUserAndCategory(ctx context.Context, userID int64, category Category) (*Count, error)

	// FindByUserAndCategoryForUpdate finds the count and locks its row until
	// the surrounding transaction ends
	FindByUserAndCategoryForUpdate(ctx context.Context, userID int64, category Category) (*Count, error)

	// ExistsByUserAndCategory checks whether a count exists for the pair
	ExistsByUserAndCategory(ctx context.Context, userID int64, category Category) (bool, error)

	// Create inserts a new count
	Create(ctx context.Context, count *Count) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, count *Count) error
}

// EventFilter narrows an event query. Zero values mean no filter.
type EventFilter struct {
	Type  EventType
	Range *DateRange
}

// EventRepository defines the interface for event persistence.
// Events are append-only.
type EventRepository interface {
	// FindByID finds an event of a user by id
	FindByID(ctx context.Context, userID int64, id uuid.UUID) (*Event, error)

	// FindByUserAndCategory lists events ordered by event date, then creation time
	FindByUserAndCategory(ctx context.Context, userID int64, category Category, filter EventFilter) ([]Event, error)

	// Create appends an event
	Create(ctx context.Context, event *Event) error

	// SumSalePrice sums sale prices of SALE events in the range
	SumSalePrice(ctx context.Context, userID int64, category Category, r DateRange) (decimal.Decimal, error)

	// SumCost sums costs of all events in the range
	SumCost(ctx context.Context, userID int64, category Category, r DateRange) (decimal.Decimal, error)
}

// TagFilter narrows a tag listing. An empty status lists every tag.
type TagFilter struct {
	Status TagStatus
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByNumbers finds the tags of a (user, category) carrying the given numbers
	FindByNumbers(ctx context.Context, userID int64, category Category, numbers []string) ([]*Tag, error)

	// FindByNumbersForUpdate is FindByNumbers with row locks
	FindByNumbersForUpdate(ctx context.Context, userID int64, category Category, numbers []string) ([]*Tag, error)

	// FindByUserAndCategory lists tags ordered by tag number
	FindByUserAndCategory(ctx context.Context, userID int64, category Category, filter TagFilter) ([]Tag, error)

	// CreateBatch inserts newly minted tags
	CreateBatch(ctx context.Context, tags []*Tag) error

	// UpdateStatus persists the status and event link of existing tags
	UpdateStatus(ctx context.Context, tags []*Tag) error

	// SumPurchasePrice sums purchase prices of every tag in the category, regardless of date
	SumPurchasePrice(ctx context.Context, userID int64, category Category) (decimal.Decimal, error)
}

// ExpenseFilter narrows an expense query
type ExpenseFilter struct {
	ExpenseCategory ExpenseCategory
	Range           DateRange
	Page            int
	Size            int
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// Create appends an expense
	Create(ctx context.Context, expense *Expense) error

	// FindPage lists expenses ordered by expense date, then creation time,
	// and returns the total number of matches
	FindPage(ctx context.Context, userID int64, category Category, filter ExpenseFilter) ([]Expense, int64, error)

	// SumAmount sums expense amounts in the range
	SumAmount(ctx context.Context, userID int64, category Category, r DateRange) (decimal.Decimal, error)

	// Summaries groups expenses in the range by expense category
	Summaries(ctx context.Context, userID int64, category Category, r DateRange) ([]ExpenseSummary, error)
}
