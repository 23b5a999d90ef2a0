package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Count is the herd size of one (user, category) pair
type Count struct {
	UserID      int64  `json:"userId"`
	Category    string `json:"category"`
	MaleCount   int    `json:"maleCount"`
	FemaleCount int    `json:"femaleCount"`
}

// Event is a recorded herd change
type Event struct {
	ID           string           `json:"id"`
	UserID       int64            `json:"userId"`
	Category     string           `json:"category"`
	EventType    string           `json:"eventType"`
	MaleCount    int              `json:"maleCount"`
	FemaleCount  int              `json:"femaleCount"`
	EventDate    string           `json:"eventDate"`
	SalePrice    *decimal.Decimal `json:"salePrice"`
	Cost         *decimal.Decimal `json:"cost"`
	LivestockIDs []string         `json:"livestockIds,omitempty"`
}

// Tag is an individually identified animal
type Tag struct {
	ID            string           `json:"id"`
	TagNumber     string           `json:"tagNumber"`
	Category      string           `json:"category"`
	Gender        string           `json:"gender"`
	Status        string           `json:"status"`
	EventID       string           `json:"eventId"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
}

// Expense is a recorded expense
type Expense struct {
	ID              string          `json:"id"`
	UserID          int64           `json:"userId"`
	Category        string          `json:"category"`
	ExpenseCategory string          `json:"expenseCategory"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Date            string          `json:"date"`
}

// ExpensePage is a zero-based page of expenses
type ExpensePage struct {
	Content       []Expense `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

// ExpenseSummary totals one expense category
type ExpenseSummary struct {
	ExpenseCategory string          `json:"expenseCategory"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ExpenseCount    int64           `json:"expenseCount"`
}

// ProfitReport is the profit of one category over a date range
type ProfitReport struct {
	Category      string          `json:"category"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// User is a registered livestock owner
type User struct {
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Health is the body of GET /health
type Health struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// InitializeCountInput is the body of an initialize count call
type InitializeCountInput struct {
	Category    string `json:"category"`
	MaleCount   int    `json:"maleCount"`
	FemaleCount int    `json:"femaleCount"`
}

// RecordEventInput is the body of a record event call.
// A nil LivestockIDs lets the server mint tag numbers.
type RecordEventInput struct {
	Category     string           `json:"category"`
	EventType    string           `json:"eventType"`
	MaleCount    int              `json:"maleCount"`
	FemaleCount  int              `json:"femaleCount"`
	SalePrice    *decimal.Decimal `json:"salePrice,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	LivestockIDs []string         `json:"livestockIds,omitempty"`
}

// RecordExpenseInput is the body of a record expense call.
// ExpenseDate uses the 2006-01-02 layout; empty means today.
type RecordExpenseInput struct {
	Category        string          `json:"category"`
	ExpenseCategory string          `json:"expenseCategory"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	ExpenseDate     string          `json:"expenseDate,omitempty"`
}

// ReportQuery selects a category and an optional date range
type ReportQuery struct {
	Category  string
	StartDate string
	EndDate   string
}

// ExpenseQuery selects a page of expenses
type ExpenseQuery struct {
	ReportQuery
	ExpenseCategory string
	Page            int
	Size            int
}
