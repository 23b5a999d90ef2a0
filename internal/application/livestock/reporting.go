package livestock

import (
	"context"
	"fmt"
	"strconv"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
)

func (s *LivestockService) dateRange(f ReportFilter) (livestock.DateRange, error) {
	return livestock.NewDateRange(f.StartDate, f.EndDate, s.today())
}

// GetProfitReport computes revenue, expenses and net profit of a category.
//
//	revenue  = sale prices of SALE events in range
//	expenses = event costs in range + purchase prices of all tags + expense amounts in range
//
// Tag purchase prices are not bounded by the range.
func (s *LivestockService) GetProfitReport(ctx context.Context, userID int64, filter ReportFilter) ([]ProfitReportResponse, error) {
	if err := s.validation().ValidateUser(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.dateRange(filter)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(userID, filter.Category, CacheOpProfit, dateKey(r.Start), dateKey(r.End))
	return cachedQuery(ctx, s.cache, s.logger, key, func() ([]ProfitReportResponse, error) {
		revenue, err := s.repos.EventRepo().SumSalePrice(ctx, userID, filter.Category, r)
		if err != nil {
			return nil, fmt.Errorf("summing revenue: %w", err)
		}
		eventCosts, err := s.repos.EventRepo().SumCost(ctx, userID, filter.Category, r)
		if err != nil {
			return nil, fmt.Errorf("summing event costs: %w", err)
		}
		purchaseCosts, err := s.repos.TagRepo().SumPurchasePrice(ctx, userID, filter.Category)
		if err != nil {
			return nil, fmt.Errorf("summing purchase prices: %w", err)
		}
		expenseCosts, err := s.repos.ExpenseRepo().SumAmount(ctx, userID, filter.Category, r)
		if err != nil {
			return nil, fmt.Errorf("summing expenses: %w", err)
		}

		totalExpenses := eventCosts.Add(purchaseCosts).Add(expenseCosts)
		return []ProfitReportResponse{{
			Category:      filter.Category,
			TotalRevenue:  revenue,
			TotalExpenses: totalExpenses,
			NetProfit:     revenue.Sub(totalExpenses),
		}}, nil
	})
}

// GetExpenses returns a page of expenses ordered by expense date
func (s *LivestockService) GetExpenses(ctx context.Context, userID int64, filter ExpenseListFilter) (*ExpensePage, error) {
	if err := s.validation().ValidateUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := ValidatePagination(filter.Page, filter.Size); err != nil {
		return nil, err
	}
	if filter.ExpenseCategory != "" && !filter.ExpenseCategory.IsValid() {
		return nil, livestock.NewInvalidExpenseCategoryError(filter.ExpenseCategory.String())
	}
	r, err := s.dateRange(filter.ReportFilter)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(userID, filter.Category, CacheOpExpenses,
		filter.ExpenseCategory.String(), dateKey(r.Start), dateKey(r.End),
		strconv.Itoa(filter.Page), strconv.Itoa(filter.Size))
	page, err := cachedQuery(ctx, s.cache, s.logger, key, func() (ExpensePage, error) {
		expenses, total, err := s.repos.ExpenseRepo().FindPage(ctx, userID, filter.Category, livestock.ExpenseFilter{
			ExpenseCategory: filter.ExpenseCategory,
			Range:           r,
			Page:            filter.Page,
			Size:            filter.Size,
		})
		if err != nil {
			return ExpensePage{}, fmt.Errorf("listing expenses: %w", err)
		}
		responses := make([]ExpenseResponse, 0, len(expenses))
		for i := range expenses {
			responses = append(responses, ToExpenseResponse(&expenses[i]))
		}
		return shared.NewPaginated(responses, total, filter.Page, filter.Size), nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetExpenseSummaries totals expenses per expense category over a date range
func (s *LivestockService) GetExpenseSummaries(ctx context.Context, userID int64, filter ReportFilter) ([]ExpenseSummaryResponse, error) {
	if err := s.validation().ValidateUser(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.dateRange(filter)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(userID, filter.Category, CacheOpExpenseSummaries, dateKey(r.Start), dateKey(r.End))
	return cachedQuery(ctx, s.cache, s.logger, key, func() ([]ExpenseSummaryResponse, error) {
		summaries, err := s.repos.ExpenseRepo().Summaries(ctx, userID, filter.Category, r)
		if err != nil {
			return nil, fmt.Errorf("summarizing expenses: %w", err)
		}
		responses := make([]ExpenseSummaryResponse, 0, len(summaries))
		for _, sum := range summaries {
			responses = append(responses, ExpenseSummaryResponse{
				ExpenseCategory: sum.ExpenseCategory,
				TotalAmount:     sum.TotalAmount,
				ExpenseCount:    sum.ExpenseCount,
			})
		}
		return responses, nil
	})
}
