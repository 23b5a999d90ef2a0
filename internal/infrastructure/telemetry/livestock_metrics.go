package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/livestock/backend/internal/domain/livestock"
)

const defaultCollectInterval = 5 * time.Minute

// ErrMeterNil is returned when LivestockMetrics is built without a meter
var ErrMeterNil = errors.New("NewLivestockMetrics: meter cannot be nil")

// HerdSize is the number of live animals of one category across all users
type HerdSize struct {
	Male   int64
	Female int64
}

// HerdSizeProvider supplies herd sizes for periodic gauge collection
type HerdSizeProvider interface {
	HerdSizes(ctx context.Context) (map[livestock.Category]HerdSize, error)
}

// LivestockMetrics records event, expense and herd size metrics.
// It satisfies the recorder the livestock service reports mutations to.
type LivestockMetrics struct {
	logger *zap.Logger

	eventsTotal        *Counter
	animalsMovedTotal  *Counter
	expensesTotal      *Counter
	expenseAmountTotal *FloatCounter
	herdSize           *Gauge

	herdProvider HerdSizeProvider
	stopChan     chan struct{}
	stopOnce     sync.Once
	collectOnce  sync.Once
}

// LivestockMetricsConfig holds the dependencies of LivestockMetrics
type LivestockMetricsConfig struct {
	Meter        metric.Meter
	Logger       *zap.Logger
	HerdProvider HerdSizeProvider
}

// NewLivestockMetrics creates the livestock instruments on cfg.Meter
func NewLivestockMetrics(cfg LivestockMetricsConfig) (*LivestockMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LivestockMetrics{
		logger:       logger,
		herdProvider: cfg.HerdProvider,
		stopChan:     make(chan struct{}),
	}

	var err error
	if lm.eventsTotal, err = NewCounter(cfg.Meter,
		"livestock_events_total", "Total number of recorded livestock events", "{events}"); err != nil {
		return nil, err
	}
	if lm.animalsMovedTotal, err = NewCounter(cfg.Meter,
		"livestock_animals_moved_total", "Total number of animals added or removed by events", "{animals}"); err != nil {
		return nil, err
	}
	if lm.expensesTotal, err = NewCounter(cfg.Meter,
		"livestock_expenses_total", "Total number of recorded expenses", "{expenses}"); err != nil {
		return nil, err
	}
	if lm.expenseAmountTotal, err = NewFloatCounter(cfg.Meter,
		"livestock_expense_amount_total", "Total amount of recorded expenses", "{currency}"); err != nil {
		return nil, err
	}
	if lm.herdSize, err = NewGauge(cfg.Meter,
		"livestock_herd_size", "Current number of live animals", "{animals}"); err != nil {
		return nil, err
	}

	return lm, nil
}

// EventRecorded counts a committed event and the animals it moved
func (lm *LivestockMetrics) EventRecorded(ctx context.Context, category livestock.Category, eventType livestock.EventType, animals int) {
	attrs := []attribute.KeyValue{
		AttrCategory.String(category.String()),
		AttrEventType.String(eventType.String()),
	}
	lm.eventsTotal.Inc(ctx, attrs...)
	lm.animalsMovedTotal.Add(ctx, int64(animals), attrs...)
}

// ExpenseRecorded counts a committed expense and its amount
func (lm *LivestockMetrics) ExpenseRecorded(ctx context.Context, category livestock.Category, expenseCategory livestock.ExpenseCategory, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{
		AttrCategory.String(category.String()),
		AttrExpenseCategory.String(expenseCategory.String()),
	}
	lm.expensesTotal.Inc(ctx, attrs...)
	lm.expenseAmountTotal.Add(ctx, amount.InexactFloat64(), attrs...)
}

// RecordHerdSize records the herd size gauge of one category
func (lm *LivestockMetrics) RecordHerdSize(ctx context.Context, category livestock.Category, size HerdSize) {
	lm.herdSize.Record(ctx, size.Male,
		AttrCategory.String(category.String()),
		AttrGender.String(livestock.GenderMale.String()))
	lm.herdSize.Record(ctx, size.Female,
		AttrCategory.String(category.String()),
		AttrGender.String(livestock.GenderFemale.String()))
}

// StartPeriodicCollection samples herd sizes every interval until Stop or ctx ends.
// It is non-blocking and only starts once.
func (lm *LivestockMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	lm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = defaultCollectInterval
		}
		go lm.runPeriodicCollection(ctx, interval)
	})
}

func (lm *LivestockMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lm.collectHerdSizes(ctx)

	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic livestock metrics collection")
			return
		case <-ctx.Done():
			lm.logger.Info("Context cancelled, stopping periodic livestock metrics collection")
			return
		case <-ticker.C:
			lm.collectHerdSizes(ctx)
		}
	}
}

func (lm *LivestockMetrics) collectHerdSizes(ctx context.Context) {
	if lm.herdProvider == nil {
		lm.logger.Debug("No herd size provider configured, skipping collection")
		return
	}

	sizes, err := lm.herdProvider.HerdSizes(ctx)
	if err != nil {
		lm.logger.Warn("Failed to collect herd sizes", zap.Error(err))
		return
	}
	for category, size := range sizes {
		lm.RecordHerdSize(ctx, category, size)
	}
}

// Stop stops the periodic collection. Safe to call multiple times.
func (lm *LivestockMetrics) Stop() {
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}
