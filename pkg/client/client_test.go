package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/infrastructure/config"
	"github.com/livestock/backend/internal/infrastructure/persistence"
	"github.com/livestock/backend/internal/interfaces/http/handler"
	"github.com/livestock/backend/internal/interfaces/http/router"
)

// newTestServer serves the full API over an in-memory sqlite database
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())

	repos := persistence.NewRepositories(db.DB)
	engine, err := router.NewEngine(router.EngineConfig{Logger: zap.NewNop()}, router.Handlers{
		Livestock: handler.NewLivestockHandler(applivestock.NewLivestockService(repos, persistence.NewGormTransactionScope(db.DB), nil)),
		User:      handler.NewUserHandler(applivestock.NewUserService(repos.Users, nil)),
		System:    handler.NewSystemHandler(db, "test"),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestClient_HerdLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c := New(Config{BaseURL: srv.URL + "/", RetryCount: -1})
	ctx := context.Background()

	user, err := c.RegisterUser(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(21), user.UserID)

	_, err = c.RegisterUser(ctx, 21)
	assert.ErrorIs(t, err, ErrUserExists)

	count, err := c.InitializeCount(ctx, 21, InitializeCountInput{Category: "SHEEP", MaleCount: 1, FemaleCount: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, count.MaleCount+count.FemaleCount)

	purchase, err := c.RecordEvent(ctx, 21, RecordEventInput{
		Category: "SHEEP", EventType: "PURCHASE", FemaleCount: 2, Cost: money("90"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"F3", "F4"}, purchase.LivestockIDs)

	sale, err := c.RecordEvent(ctx, 21, RecordEventInput{
		Category: "SHEEP", EventType: "SALE", FemaleCount: 1, SalePrice: money("120"), LivestockIDs: []string{"F3"},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.SalePrice)
	assert.True(t, decimal.NewFromInt(120).Equal(*sale.SalePrice))

	got, err := c.GetEvent(ctx, 21, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "SALE", got.EventType)

	events, err := c.GetEventHistory(ctx, 21, "SHEEP", "")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	sold, err := c.ListTags(ctx, 21, "SHEEP", "SOLD")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "F3", sold[0].TagNumber)

	current, err := c.GetCurrentCount(ctx, 21, "SHEEP")
	require.NoError(t, err)
	assert.Equal(t, 1, current.MaleCount)
	assert.Equal(t, 2, current.FemaleCount)

	_, err = c.RecordExpense(ctx, 21, RecordExpenseInput{Category: "SHEEP", ExpenseCategory: "FEED", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	page, err := c.GetExpenses(ctx, 21, ExpenseQuery{ReportQuery: ReportQuery{Category: "SHEEP"}, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	summaries, err := c.GetExpenseSummaries(ctx, 21, ReportQuery{Category: "SHEEP"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "FEED", summaries[0].ExpenseCategory)

	reports, err := c.GetProfitReport(ctx, 21, ReportQuery{Category: "SHEEP"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, decimal.NewFromInt(120).Equal(reports[0].TotalRevenue))

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "UP", health.Status)
}

func TestClient_ProblemDetails(t *testing.T) {
	srv := newTestServer(t)
	c := New(Config{BaseURL: srv.URL, RetryCount: -1})
	ctx := context.Background()

	_, err := c.GetUser(ctx, 404)
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", apiErr.Code())
	assert.Equal(t, "/api/v1/users/404", apiErr.Instance)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetCurrentCount(ctx, 1, "HORSE")
	assert.Equal(t, "INVALID_REQUEST", CodeOf(err))
	assert.Contains(t, err.Error(), "category: must be one of")

	_, err = c.GetEvent(ctx, 1, "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestClient_RetriesRateLimitedRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"type":"urn:livestock:error:RATE_LIMIT_EXCEEDED","title":"RATE_LIMIT_EXCEEDED","status":429}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":5,"createdAt":"2025-06-15T09:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RetryCount: 1, RetryWait: time.Millisecond})
	user, err := c.GetUser(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_NonProblemErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, RetryCount: -1})
	_, err := c.GetUser(context.Background(), 1)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Code())
	assert.Equal(t, "livestock api: 502 Bad Gateway", err.Error())
}
