package livestock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an immutable cost record that is not tied to an event or tag
type Expense struct {
	ID              uuid.UUID
	UserID          int64
	Category        Category
	ExpenseCategory ExpenseCategory
	Amount          decimal.Decimal
	Description     string
	ExpenseDate     time.Time
	CreatedAt       time.Time
}

// NewExpense validates and creates an expense. The amount must be positive.
func NewExpense(userID int64, category Category, expenseCategory ExpenseCategory, amount *decimal.Decimal, description string, date time.Time) (*Expense, error) {
	if !category.IsValid() {
		return nil, NewInvalidRequestError("Invalid category: " + category.String())
	}
	if !expenseCategory.IsValid() {
		return nil, NewInvalidExpenseCategoryError(expenseCategory.String())
	}
	if amount == nil || !amount.IsPositive() {
		return nil, NewInvalidExpenseAmountError(amount)
	}

	return &Expense{
		ID:              uuid.New(),
		UserID:          userID,
		Category:        category,
		ExpenseCategory: expenseCategory,
		Amount:          amount.Round(2),
		Description:     description,
		ExpenseDate:     DateOf(date),
		CreatedAt:       time.Now(),
	}, nil
}

// ExpenseSummary is the total of one expense category over a date range
type ExpenseSummary struct {
	ExpenseCategory ExpenseCategory
	TotalAmount     decimal.Decimal
	ExpenseCount    int64
}
