// Package client is a Go client for the livestock HTTP API. API failures are
// returned as *Error values decoded from the problem details body.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultRetryCount = 2
)

// Config configures a Client
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:8080
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	// RetryWait is the initial backoff between retries
	RetryWait time.Duration
	Logger    *zap.Logger
}

// Client calls the livestock API
type Client struct {
	http *resty.Client
}

// New builds a Client. Requests answered with 429 or 503 are retried with backoff.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.RetryCount
	if retries < 0 {
		retries = 0
	} else if retries == 0 {
		retries = defaultRetryCount
	}
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}

	r := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(10 * wait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return false
			}
			code := resp.StatusCode()
			return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
		})
	if cfg.Logger != nil {
		r.SetLogger(cfg.Logger.Sugar())
	}
	return &Client{http: r}
}

// NewWithResty wraps an existing resty client, for callers that need custom transports
func NewWithResty(r *resty.Client) *Client {
	return &Client{http: r}
}

func call[T any](ctx context.Context, c *Client, method, path string, build func(*resty.Request)) (*T, error) {
	result := new(T)
	apiErr := new(Error)

	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		if apiErr.Title == "" {
			apiErr.Title = http.StatusText(resp.StatusCode())
		}
		return nil, apiErr
	}
	return result, nil
}

func forUser(r *resty.Request, userID int64) *resty.Request {
	return r.SetPathParam("userId", strconv.FormatInt(userID, 10))
}

func reportParams(q ReportQuery) map[string]string {
	params := map[string]string{"category": q.Category}
	if q.StartDate != "" {
		params["startDate"] = q.StartDate
	}
	if q.EndDate != "" {
		params["endDate"] = q.EndDate
	}
	return params
}

// RegisterUser calls POST /api/v1/users
func (c *Client) RegisterUser(ctx context.Context, userID int64) (*User, error) {
	return call[User](ctx, c, http.MethodPost, "/api/v1/users", func(r *resty.Request) {
		r.SetBody(map[string]int64{"userId": userID})
	})
}

// GetUser calls GET /api/v1/users/{userId}
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	return call[User](ctx, c, http.MethodGet, "/api/v1/users/{userId}", func(r *resty.Request) {
		forUser(r, userID)
	})
}

// InitializeCount calls POST /api/v1/livestock/{userId}/counts
func (c *Client) InitializeCount(ctx context.Context, userID int64, in InitializeCountInput) (*Count, error) {
	return call[Count](ctx, c, http.MethodPost, "/api/v1/livestock/{userId}/counts", func(r *resty.Request) {
		forUser(r, userID)
		r.SetBody(in)
	})
}

// GetCurrentCount calls GET /api/v1/livestock/{userId}/counts
func (c *Client) GetCurrentCount(ctx context.Context, userID int64, category string) (*Count, error) {
	return call[Count](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/counts", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParam("category", category)
	})
}

// RecordEvent calls POST /api/v1/livestock/{userId}/events
func (c *Client) RecordEvent(ctx context.Context, userID int64, in RecordEventInput) (*Event, error) {
	return call[Event](ctx, c, http.MethodPost, "/api/v1/livestock/{userId}/events", func(r *resty.Request) {
		forUser(r, userID)
		r.SetBody(in)
	})
}

// GetEventHistory calls GET /api/v1/livestock/{userId}/events. eventType may be empty.
func (c *Client) GetEventHistory(ctx context.Context, userID int64, category, eventType string) ([]Event, error) {
	events, err := call[[]Event](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/events", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParam("category", category)
		if eventType != "" {
			r.SetQueryParam("eventType", eventType)
		}
	})
	if err != nil {
		return nil, err
	}
	return *events, nil
}

// GetEvent calls GET /api/v1/livestock/{userId}/events/{eventId}
func (c *Client) GetEvent(ctx context.Context, userID int64, eventID string) (*Event, error) {
	return call[Event](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/events/{eventId}", func(r *resty.Request) {
		forUser(r, userID)
		r.SetPathParam("eventId", eventID)
	})
}

// ListTags calls GET /api/v1/livestock/{userId}/tags. status may be empty.
func (c *Client) ListTags(ctx context.Context, userID int64, category, status string) ([]Tag, error) {
	tags, err := call[[]Tag](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/tags", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParam("category", category)
		if status != "" {
			r.SetQueryParam("status", status)
		}
	})
	if err != nil {
		return nil, err
	}
	return *tags, nil
}

// RecordExpense calls POST /api/v1/livestock/{userId}/expenses
func (c *Client) RecordExpense(ctx context.Context, userID int64, in RecordExpenseInput) (*Expense, error) {
	return call[Expense](ctx, c, http.MethodPost, "/api/v1/livestock/{userId}/expenses", func(r *resty.Request) {
		forUser(r, userID)
		r.SetBody(in)
	})
}

// GetExpenses calls GET /api/v1/livestock/{userId}/expenses. A zero Size uses the server default.
func (c *Client) GetExpenses(ctx context.Context, userID int64, q ExpenseQuery) (*ExpensePage, error) {
	return call[ExpensePage](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/expenses", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParams(reportParams(q.ReportQuery))
		if q.ExpenseCategory != "" {
			r.SetQueryParam("expenseCategory", q.ExpenseCategory)
		}
		r.SetQueryParam("page", strconv.Itoa(q.Page))
		if q.Size > 0 {
			r.SetQueryParam("size", strconv.Itoa(q.Size))
		}
	})
}

// GetExpenseSummaries calls GET /api/v1/livestock/{userId}/expense-summaries
func (c *Client) GetExpenseSummaries(ctx context.Context, userID int64, q ReportQuery) ([]ExpenseSummary, error) {
	summaries, err := call[[]ExpenseSummary](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/expense-summaries", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParams(reportParams(q))
	})
	if err != nil {
		return nil, err
	}
	return *summaries, nil
}

// GetProfitReport calls GET /api/v1/livestock/{userId}/profit
func (c *Client) GetProfitReport(ctx context.Context, userID int64, q ReportQuery) ([]ProfitReport, error) {
	reports, err := call[[]ProfitReport](ctx, c, http.MethodGet, "/api/v1/livestock/{userId}/profit", func(r *resty.Request) {
		forUser(r, userID)
		r.SetQueryParams(reportParams(q))
	})
	if err != nil {
		return nil, err
	}
	return *reports, nil
}

// Health calls GET /health. A 503 still decodes the body, so callers can
// read which dependency is down.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	health := new(Health)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(health).
		SetError(health).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("GET /health: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusServiceUnavailable {
		return nil, &Error{Status: resp.StatusCode(), Title: http.StatusText(resp.StatusCode())}
	}
	return health, nil
}
