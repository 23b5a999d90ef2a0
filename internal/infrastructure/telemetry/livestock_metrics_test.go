package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/infrastructure/telemetry"
)

func newManualMetrics(t *testing.T, provider telemetry.HerdSizeProvider) (*telemetry.LivestockMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	lm, err := telemetry.NewLivestockMetrics(telemetry.LivestockMetricsConfig{
		Meter:        mp.Meter("test"),
		HerdProvider: provider,
	})
	require.NoError(t, err)
	return lm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewLivestockMetrics_NilMeter(t *testing.T) {
	lm, err := telemetry.NewLivestockMetrics(telemetry.LivestockMetricsConfig{})
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Nil(t, lm)
}

func TestNewLivestockMetrics_NoopMeter(t *testing.T) {
	lm, err := telemetry.NewLivestockMetrics(telemetry.LivestockMetricsConfig{
		Meter: noop.NewMeterProvider().Meter("test"),
	})
	require.NoError(t, err)

	// Should not panic
	lm.EventRecorded(context.Background(), livestock.CategoryGoat, livestock.EventTypeBirth, 2)
	lm.ExpenseRecorded(context.Background(), livestock.CategoryGoat, livestock.ExpenseCategoryFeed, decimal.NewFromInt(10))
}

func TestLivestockMetrics_EventRecorded(t *testing.T) {
	lm, reader := newManualMetrics(t, nil)
	ctx := context.Background()

	lm.EventRecorded(ctx, livestock.CategoryCattle, livestock.EventTypeSale, 3)
	lm.EventRecorded(ctx, livestock.CategoryCattle, livestock.EventTypeSale, 2)

	metrics := collect(t, reader)

	events := metrics["livestock_events_total"].Data.(metricdata.Sum[int64])
	require.Len(t, events.DataPoints, 1)
	assert.Equal(t, int64(2), events.DataPoints[0].Value)
	category, ok := events.DataPoints[0].Attributes.Value(telemetry.AttrCategory)
	require.True(t, ok)
	assert.Equal(t, "CATTLE", category.AsString())

	moved := metrics["livestock_animals_moved_total"].Data.(metricdata.Sum[int64])
	require.Len(t, moved.DataPoints, 1)
	assert.Equal(t, int64(5), moved.DataPoints[0].Value)
}

func TestLivestockMetrics_ExpenseRecorded(t *testing.T) {
	lm, reader := newManualMetrics(t, nil)
	ctx := context.Background()

	lm.ExpenseRecorded(ctx, livestock.CategorySheep, livestock.ExpenseCategoryFeed, decimal.RequireFromString("12.50"))
	lm.ExpenseRecorded(ctx, livestock.CategorySheep, livestock.ExpenseCategoryFeed, decimal.RequireFromString("7.50"))

	metrics := collect(t, reader)

	amount := metrics["livestock_expense_amount_total"].Data.(metricdata.Sum[float64])
	require.Len(t, amount.DataPoints, 1)
	assert.InDelta(t, 20.0, amount.DataPoints[0].Value, 0.0001)

	count := metrics["livestock_expenses_total"].Data.(metricdata.Sum[int64])
	assert.Equal(t, int64(2), count.DataPoints[0].Value)
}

type stubHerdProvider struct {
	sizes map[livestock.Category]telemetry.HerdSize
	err   error
	calls chan struct{}
}

func (p *stubHerdProvider) HerdSizes(context.Context) (map[livestock.Category]telemetry.HerdSize, error) {
	if p.calls != nil {
		select {
		case p.calls <- struct{}{}:
		default:
		}
	}
	return p.sizes, p.err
}

func TestLivestockMetrics_PeriodicCollection(t *testing.T) {
	provider := &stubHerdProvider{
		sizes: map[livestock.Category]telemetry.HerdSize{
			livestock.CategoryGoat: {Male: 4, Female: 9},
		},
		calls: make(chan struct{}, 1),
	}
	lm, reader := newManualMetrics(t, provider)

	lm.StartPeriodicCollection(context.Background(), time.Hour)
	defer lm.Stop()

	select {
	case <-provider.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("herd sizes were not collected on start")
	}

	// The provider signals before returning; wait for the gauges to land.
	require.Eventually(t, func() bool {
		gauge, ok := collect(t, reader)["livestock_herd_size"].Data.(metricdata.Gauge[int64])
		return ok && len(gauge.DataPoints) == 2
	}, 5*time.Second, 10*time.Millisecond)

	gauge := collect(t, reader)["livestock_herd_size"].Data.(metricdata.Gauge[int64])
	byGender := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		gender, _ := dp.Attributes.Value(telemetry.AttrGender)
		byGender[gender.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"MALE": 4, "FEMALE": 9}, byGender)
}

func TestLivestockMetrics_CollectionFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	provider := &stubHerdProvider{err: errors.New("db down")}

	lm, err := telemetry.NewLivestockMetrics(telemetry.LivestockMetricsConfig{
		Meter:        noop.NewMeterProvider().Meter("test"),
		Logger:       zap.New(core),
		HerdProvider: provider,
	})
	require.NoError(t, err)

	lm.StartPeriodicCollection(context.Background(), time.Hour)
	defer lm.Stop()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Failed to collect herd sizes").Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestLivestockMetrics_StopIsIdempotent(t *testing.T) {
	lm, _ := newManualMetrics(t, nil)
	lm.StartPeriodicCollection(context.Background(), time.Hour)
	lm.Stop()
	lm.Stop()
}


var _ applivestock.MetricsRecorder = (*telemetry.LivestockMetrics)(nil)
