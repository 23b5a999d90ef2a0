package livestock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/livestock"
)

// MetricsRecorder receives business measurements after a mutation commits
type MetricsRecorder interface {
	EventRecorded(ctx context.Context, category livestock.Category, eventType livestock.EventType, animals int)
	ExpenseRecorded(ctx context.Context, category livestock.Category, expenseCategory livestock.ExpenseCategory, amount decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) EventRecorded(context.Context, livestock.Category, livestock.EventType, int) {}

func (noopMetrics) ExpenseRecorded(context.Context, livestock.Category, livestock.ExpenseCategory, decimal.Decimal) {
}
