package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create appends an expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *livestock.Expense) error {
	return translateError(r.db.WithContext(ctx).Create(models.ExpenseModelFromDomain(expense)).Error)
}

// FindPage returns one page of expenses and the total number of matches
func (r *GormExpenseRepository) FindPage(ctx context.Context, userID int64, category livestock.Category, filter livestock.ExpenseFilter) ([]livestock.Expense, int64, error) {
	query := r.inRange(ctx, userID, category, filter.Range)
	if filter.ExpenseCategory != "" {
		query = query.Where("expense_category = ?", filter.ExpenseCategory.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ExpenseModel
	if err := query.
		Order("expense_date ASC, created_at ASC").
		Offset(shared.Offset(filter.Page, filter.Size)).
		Limit(filter.Size).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	expenses := make([]livestock.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, *rows[i].ToDomain())
	}
	return expenses, total, nil
}

// SumAmount sums the expense amounts in the range
func (r *GormExpenseRepository) SumAmount(ctx context.Context, userID int64, category livestock.Category, dr livestock.DateRange) (decimal.Decimal, error) {
	return sumColumn(r.inRange(ctx, userID, category, dr), "amount")
}

// Summaries totals the expenses in the range per expense category
func (r *GormExpenseRepository) Summaries(ctx context.Context, userID int64, category livestock.Category, dr livestock.DateRange) ([]livestock.ExpenseSummary, error) {
	var rows []struct {
		ExpenseCategory string
		TotalAmount     decimal.Decimal
		ExpenseCount    int64
	}
	if err := r.inRange(ctx, userID, category, dr).
		Select("expense_category, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS expense_count").
		Group("expense_category").
		Order("expense_category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]livestock.ExpenseSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, livestock.ExpenseSummary{
			ExpenseCategory: livestock.ExpenseCategory(row.ExpenseCategory),
			TotalAmount:     row.TotalAmount,
			ExpenseCount:    row.ExpenseCount,
		})
	}
	return summaries, nil
}

func (r *GormExpenseRepository) inRange(ctx context.Context, userID int64, category livestock.Category, dr livestock.DateRange) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Where("user_id = ? AND category = ?", userID, category.String()).
		Where("expense_date BETWEEN ? AND ?", dr.Start, dr.End)
}

var _ livestock.ExpenseRepository = (*GormExpenseRepository)(nil)
