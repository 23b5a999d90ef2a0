package livestock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/livestock/backend/internal/domain/livestock"
)

func fullRange(t *testing.T) livestock.DateRange {
	t.Helper()
	r, err := livestock.NewDateRange(time.Time{}, time.Time{}, livestock.DateOf(fixedNow))
	require.NoError(t, err)
	return r
}

func TestLivestockService_GetProfitReport(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	r := fullRange(t)
	repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)
	repos.events.On("SumSalePrice", ctx, testUserID, livestock.CategoryCattle, r).Return(decimal.RequireFromString("1000.00"), nil)
	repos.events.On("SumCost", ctx, testUserID, livestock.CategoryCattle, r).Return(decimal.RequireFromString("200.00"), nil)
	repos.tags.On("SumPurchasePrice", ctx, testUserID, livestock.CategoryCattle).Return(decimal.RequireFromString("150.00"), nil)
	repos.expenses.On("SumAmount", ctx, testUserID, livestock.CategoryCattle, r).Return(decimal.RequireFromString("50.50"), nil)

	reports, err := newTestService(repos).GetProfitReport(ctx, testUserID, ReportFilter{Category: livestock.CategoryCattle})

	require.NoError(t, err)
	require.Len(t, reports, 1)
	report := reports[0]
	assert.Equal(t, livestock.CategoryCattle, report.Category)
	assert.True(t, decimal.RequireFromString("1000").Equal(report.TotalRevenue))
	assert.True(t, decimal.RequireFromString("400.50").Equal(report.TotalExpenses), report.TotalExpenses.String())
	assert.True(t, decimal.RequireFromString("599.50").Equal(report.NetProfit), report.NetProfit.String())
	repos.assertExpectations(t)
}

func TestLivestockService_GetProfitReport_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		repos := newTestRepos()
		repos.users.On("ExistsByID", ctx, testUserID).Return(false, nil)

		_, err := newTestService(repos).GetProfitReport(ctx, testUserID, ReportFilter{Category: livestock.CategoryGoat})

		requireCode(t, err, livestock.CodeUserNotFound)
	})

	t.Run("inverted range", func(t *testing.T) {
		repos := newTestRepos()
		repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)

		_, err := newTestService(repos).GetProfitReport(ctx, testUserID, ReportFilter{
			Category:  livestock.CategoryGoat,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		})

		requireCode(t, err, livestock.CodeInvalidRequest)
		repos.events.AssertNotCalled(t, "SumSalePrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLivestockService_GetExpenses(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page", func(t *testing.T) {
		repos := newTestRepos()
		r := fullRange(t)
		expenses := []livestock.Expense{
			{ID: uuid.New(), UserID: testUserID, Category: livestock.CategoryGoat, ExpenseCategory: livestock.ExpenseCategoryFeed,
				Amount: decimal.RequireFromString("10.00"), ExpenseDate: livestock.DateOf(fixedNow)},
		}
		repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)
		repos.expenses.On("FindPage", ctx, testUserID, livestock.CategoryGoat, livestock.ExpenseFilter{
			ExpenseCategory: livestock.ExpenseCategoryFeed, Range: r, Page: 1, Size: 1,
		}).Return(expenses, int64(3), nil)

		page, err := newTestService(repos).GetExpenses(ctx, testUserID, ExpenseListFilter{
			ReportFilter:    ReportFilter{Category: livestock.CategoryGoat},
			ExpenseCategory: livestock.ExpenseCategoryFeed,
			Page:            1,
			Size:            1,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Content, 1)
		assert.Equal(t, "2025-04-10", page.Content[0].Date)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		repos := newTestRepos()
		repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)

		_, err := newTestService(repos).GetExpenses(ctx, testUserID, ExpenseListFilter{
			ReportFilter: ReportFilter{Category: livestock.CategoryGoat},
			Size:         MaxPageSize + 1,
		})

		requireCode(t, err, livestock.CodeInvalidPagination)
	})

	t.Run("invalid expense category", func(t *testing.T) {
		repos := newTestRepos()
		repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)

		_, err := newTestService(repos).GetExpenses(ctx, testUserID, ExpenseListFilter{
			ReportFilter:    ReportFilter{Category: livestock.CategoryGoat},
			ExpenseCategory: livestock.ExpenseCategory("GOLD"),
			Size:            DefaultPageSize,
		})

		requireCode(t, err, livestock.CodeInvalidExpenseCategory)
	})
}

func TestLivestockService_GetExpenseSummaries(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	cache := newMapCache()
	r := fullRange(t)
	repos.users.On("ExistsByID", ctx, testUserID).Return(true, nil)
	repos.expenses.On("Summaries", ctx, testUserID, livestock.CategorySheep, r).Return([]livestock.ExpenseSummary{
		{ExpenseCategory: livestock.ExpenseCategoryFeed, TotalAmount: decimal.RequireFromString("30.00"), ExpenseCount: 2},
		{ExpenseCategory: livestock.ExpenseCategoryMedication, TotalAmount: decimal.RequireFromString("80.00"), ExpenseCount: 1},
	}, nil).Once()
	svc := newTestService(repos, WithQueryCache(cache))

	first, err := svc.GetExpenseSummaries(ctx, testUserID, ReportFilter{Category: livestock.CategorySheep})
	require.NoError(t, err)
	second, err := svc.GetExpenseSummaries(ctx, testUserID, ReportFilter{Category: livestock.CategorySheep})
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, livestock.ExpenseCategoryMedication, first[1].ExpenseCategory)
	assert.Equal(t, int64(2), first[0].ExpenseCount)
	require.Len(t, second, 2)
	assert.True(t, first[0].TotalAmount.Equal(second[0].TotalAmount))
	repos.expenses.AssertNumberOfCalls(t, "Summaries", 1)
}
