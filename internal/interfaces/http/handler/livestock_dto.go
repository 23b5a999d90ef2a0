package handler

import (
	"github.com/shopspring/decimal"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
)

// InitializeCountBody is the body of POST /livestock/:userId/counts
type InitializeCountBody struct {
	Category    string `json:"category" binding:"required,livestock_category"`
	MaleCount   int    `json:"maleCount" binding:"min=0"`
	FemaleCount int    `json:"femaleCount" binding:"min=0"`
}

// ToRequest converts the body to a service request
func (b InitializeCountBody) ToRequest() applivestock.InitializeCountRequest {
	return applivestock.InitializeCountRequest{
		Category:    mustCategory(b.Category),
		MaleCount:   b.MaleCount,
		FemaleCount: b.FemaleCount,
	}
}

// RecordEventBody is the body of POST /livestock/:userId/events
type RecordEventBody struct {
	Category     string           `json:"category" binding:"required,livestock_category"`
	EventType    string           `json:"eventType" binding:"required,event_type"`
	MaleCount    int              `json:"maleCount" binding:"min=0"`
	FemaleCount  int              `json:"femaleCount" binding:"min=0"`
	SalePrice    *decimal.Decimal `json:"salePrice" binding:"omitempty,gte=0"`
	Cost         *decimal.Decimal `json:"cost" binding:"omitempty,gte=0"`
	LivestockIDs []string         `json:"livestockIds"`
}

// ToRequest converts the body to a service request
func (b RecordEventBody) ToRequest() applivestock.RecordEventRequest {
	eventType, _ := livestock.ParseEventType(b.EventType)
	return applivestock.RecordEventRequest{
		Category:     mustCategory(b.Category),
		EventType:    eventType,
		MaleCount:    b.MaleCount,
		FemaleCount:  b.FemaleCount,
		SalePrice:    b.SalePrice,
		Cost:         b.Cost,
		LivestockIDs: b.LivestockIDs,
	}
}

// RecordExpenseBody is the body of POST /livestock/:userId/expenses
type RecordExpenseBody struct {
	Category        string           `json:"category" binding:"required,livestock_category"`
	ExpenseCategory string           `json:"expenseCategory" binding:"required,expense_category"`
	Amount          *decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Description     string           `json:"description" binding:"max=500"`
	ExpenseDate     string           `json:"expenseDate" binding:"omitempty,datetime=2006-01-02"`
}

// ToRequest converts the body to a service request
func (b RecordExpenseBody) ToRequest() (applivestock.RecordExpenseRequest, error) {
	expenseCategory, _ := livestock.ParseExpenseCategory(b.ExpenseCategory)
	date, err := livestock.ParseDate(b.ExpenseDate)
	if err != nil {
		return applivestock.RecordExpenseRequest{}, err
	}
	return applivestock.RecordExpenseRequest{
		Category:        mustCategory(b.Category),
		ExpenseCategory: expenseCategory,
		Amount:          b.Amount,
		Description:     b.Description,
		ExpenseDate:     date,
	}, nil
}

// CategoryQuery selects a category
type CategoryQuery struct {
	Category string `form:"category" binding:"required,livestock_category"`
}

// EventHistoryQuery filters GET /livestock/:userId/events
type EventHistoryQuery struct {
	CategoryQuery
	EventType string `form:"eventType" binding:"omitempty,event_type"`
}

// TagQuery filters GET /livestock/:userId/tags
type TagQuery struct {
	CategoryQuery
	Status string `form:"status" binding:"omitempty,tag_status"`
}

// ReportQuery selects a category and an optional date range
type ReportQuery struct {
	CategoryQuery
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter converts the query to a report filter
func (q ReportQuery) ToFilter() (applivestock.ReportFilter, error) {
	start, err := livestock.ParseDate(q.StartDate)
	if err != nil {
		return applivestock.ReportFilter{}, err
	}
	end, err := livestock.ParseDate(q.EndDate)
	if err != nil {
		return applivestock.ReportFilter{}, err
	}
	return applivestock.ReportFilter{
		Category:  mustCategory(q.Category),
		StartDate: start,
		EndDate:   end,
	}, nil
}

// ExpenseListQuery filters GET /livestock/:userId/expenses. Pages are zero-based.
type ExpenseListQuery struct {
	ReportQuery
	ExpenseCategory string `form:"expenseCategory" binding:"omitempty,expense_category"`
	Page            int    `form:"page,default=0"`
	Size            int    `form:"size,default=20"`
}

// ToFilter converts the query to an expense list filter
func (q ExpenseListQuery) ToFilter() (applivestock.ExpenseListFilter, error) {
	report, err := q.ReportQuery.ToFilter()
	if err != nil {
		return applivestock.ExpenseListFilter{}, err
	}
	filter := applivestock.ExpenseListFilter{
		ReportFilter: report,
		Page:         q.Page,
		Size:         q.Size,
	}
	if q.ExpenseCategory != "" {
		filter.ExpenseCategory, _ = livestock.ParseExpenseCategory(q.ExpenseCategory)
	}
	return filter, nil
}

// RegisterUserBody is the body of POST /users
type RegisterUserBody struct {
	UserID int64 `json:"userId" binding:"required,gt=0"`
}

// mustCategory parses a category that already passed the livestock_category tag
func mustCategory(s string) livestock.Category {
	c, _ := livestock.ParseCategory(s)
	return c
}
