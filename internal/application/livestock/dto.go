package livestock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
)

// InitializeCountRequest creates the count of a (user, category) pair
type InitializeCountRequest struct {
	Category    livestock.Category
	MaleCount   int
	FemaleCount int
}

// RecordEventRequest applies an event to a count.
// LivestockIDs is nil when the caller supplied none.
type RecordEventRequest struct {
	Category     livestock.Category
	EventType    livestock.EventType
	MaleCount    int
	FemaleCount  int
	SalePrice    *decimal.Decimal
	Cost         *decimal.Decimal
	LivestockIDs []string
}

// RecordExpenseRequest records an expense. A zero ExpenseDate means today.
type RecordExpenseRequest struct {
	Category        livestock.Category
	ExpenseCategory livestock.ExpenseCategory
	Amount          *decimal.Decimal
	Description     string
	ExpenseDate     time.Time
}

// ReportFilter selects a category and an optional date range
type ReportFilter struct {
	Category  livestock.Category
	StartDate time.Time
	EndDate   time.Time
}

// ExpenseListFilter selects a page of expenses
type ExpenseListFilter struct {
	ReportFilter
	ExpenseCategory livestock.ExpenseCategory // empty for all
	Page            int
	Size            int
}

// CountResponse represents a count in API responses
type CountResponse struct {
	UserID      int64              `json:"userId"`
	Category    livestock.Category `json:"category"`
	MaleCount   int                `json:"maleCount"`
	FemaleCount int                `json:"femaleCount"`
}

// EventResponse represents an event in API responses.
// LivestockIDs lists the tags minted or consumed when the event was recorded.
type EventResponse struct {
	ID           uuid.UUID           `json:"id"`
	UserID       int64               `json:"userId"`
	Category     livestock.Category  `json:"category"`
	EventType    livestock.EventType `json:"eventType"`
	MaleCount    int                 `json:"maleCount"`
	FemaleCount  int                 `json:"femaleCount"`
	EventDate    string              `json:"eventDate"`
	SalePrice    *decimal.Decimal    `json:"salePrice"`
	Cost         *decimal.Decimal    `json:"cost"`
	LivestockIDs []string            `json:"livestockIds,omitempty"`
}

// TagResponse represents a tagged animal in API responses
type TagResponse struct {
	ID            uuid.UUID           `json:"id"`
	TagNumber     string              `json:"tagNumber"`
	Category      livestock.Category  `json:"category"`
	Gender        livestock.Gender    `json:"gender"`
	Status        livestock.TagStatus `json:"status"`
	EventID       uuid.UUID           `json:"eventId"`
	PurchasePrice *decimal.Decimal    `json:"purchasePrice"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID              uuid.UUID                 `json:"id"`
	UserID          int64                     `json:"userId"`
	Category        livestock.Category        `json:"category"`
	ExpenseCategory livestock.ExpenseCategory `json:"expenseCategory"`
	Amount          decimal.Decimal           `json:"amount"`
	Description     string                    `json:"description"`
	Date            string                    `json:"date"`
}

// ExpensePage is a page of expenses
type ExpensePage = shared.Paginated[ExpenseResponse]

// ExpenseSummaryResponse is the total of one expense category
type ExpenseSummaryResponse struct {
	ExpenseCategory livestock.ExpenseCategory `json:"expenseCategory"`
	TotalAmount     decimal.Decimal           `json:"totalAmount"`
	ExpenseCount    int64                     `json:"expenseCount"`
}

// ProfitReportResponse is the profit of one category over a date range
type ProfitReportResponse struct {
	Category      livestock.Category `json:"category"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetProfit     decimal.Decimal    `json:"netProfit"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToCountResponse converts a domain count to a response
func ToCountResponse(c *livestock.Count) CountResponse {
	return CountResponse{
		UserID:      c.UserID,
		Category:    c.Category,
		MaleCount:   c.MaleCount,
		FemaleCount: c.FemaleCount,
	}
}

// ToEventResponse converts a domain event to a response
func ToEventResponse(e *livestock.Event, tagNumbers []string) EventResponse {
	return EventResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Category:     e.Category,
		EventType:    e.Type,
		MaleCount:    e.MaleCount,
		FemaleCount:  e.FemaleCount,
		EventDate:    e.EventDate.Format(livestock.DateLayout),
		SalePrice:    e.SalePrice,
		Cost:         e.Cost,
		LivestockIDs: tagNumbers,
	}
}

// ToTagResponse converts a domain tag to a response
func ToTagResponse(t *livestock.Tag) TagResponse {
	return TagResponse{
		ID:            t.ID,
		TagNumber:     t.TagNumber,
		Category:      t.Category,
		Gender:        t.Gender,
		Status:        t.Status,
		EventID:       t.EventID,
		PurchasePrice: t.PurchasePrice,
	}
}

// ToExpenseResponse converts a domain expense to a response
func ToExpenseResponse(e *livestock.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Category:        e.Category,
		ExpenseCategory: e.ExpenseCategory,
		Amount:          e.Amount,
		Description:     e.Description,
		Date:            e.ExpenseDate.Format(livestock.DateLayout),
	}
}

func tagNumbersOf(tags []*livestock.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	numbers := make([]string, 0, len(tags))
	for _, t := range tags {
		numbers = append(numbers, t.TagNumber)
	}
	return numbers
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(livestock.DateLayout)
}
