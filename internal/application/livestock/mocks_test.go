package livestock

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/livestock/backend/internal/domain/livestock"
)

// anyCtx matches the span-derived contexts that mutations hand to repositories
var anyCtx = mock.MatchedBy(func(context.Context) bool { return true })

// MockUserRepository is a mock implementation of livestock.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*livestock.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*livestock.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *livestock.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCountRepository is a mock implementation of livestock.CountRepository
type MockCountRepository struct {
	mock.Mock
}

func (m *MockCountRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*livestock.Count), args.Error(1)
}

func (m *MockCountRepository) FindByUserAndCategoryForUpdate(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*livestock.Count), args.Error(1)
}

func (m *MockCountRepository) ExistsByUserAndCategory(ctx context.Context, userID int64, category livestock.Category) (bool, error) {
	args := m.Called(ctx, userID, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountRepository) Create(ctx context.Context, count *livestock.Count) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

func (m *MockCountRepository) SaveWithLock(ctx context.Context, count *livestock.Count) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

// MockEventRepository is a mock implementation of livestock.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByID(ctx context.Context, userID int64, id uuid.UUID) (*livestock.Event, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*livestock.Event), args.Error(1)
}

func (m *MockEventRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category, filter livestock.EventFilter) ([]livestock.Event, error) {
	args := m.Called(ctx, userID, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]livestock.Event), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *livestock.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) SumSalePrice(ctx context.Context, userID int64, category livestock.Category, r livestock.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEventRepository) SumCost(ctx context.Context, userID int64, category livestock.Category, r livestock.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTagRepository is a mock implementation of livestock.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByNumbers(ctx context.Context, userID int64, category livestock.Category, numbers []string) ([]*livestock.Tag, error) {
	args := m.Called(ctx, userID, category, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*livestock.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByNumbersForUpdate(ctx context.Context, userID int64, category livestock.Category, numbers []string) ([]*livestock.Tag, error) {
	args := m.Called(ctx, userID, category, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*livestock.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category, filter livestock.TagFilter) ([]livestock.Tag, error) {
	args := m.Called(ctx, userID, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]livestock.Tag), args.Error(1)
}

func (m *MockTagRepository) CreateBatch(ctx context.Context, tags []*livestock.Tag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *MockTagRepository) UpdateStatus(ctx context.Context, tags []*livestock.Tag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *MockTagRepository) SumPurchasePrice(ctx context.Context, userID int64, category livestock.Category) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockExpenseRepository is a mock implementation of livestock.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *livestock.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindPage(ctx context.Context, userID int64, category livestock.Category, filter livestock.ExpenseFilter) ([]livestock.Expense, int64, error) {
	args := m.Called(ctx, userID, category, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]livestock.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockExpenseRepository) SumAmount(ctx context.Context, userID int64, category livestock.Category, r livestock.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) Summaries(ctx context.Context, userID int64, category livestock.Category, r livestock.DateRange) ([]livestock.ExpenseSummary, error) {
	args := m.Called(ctx, userID, category, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]livestock.ExpenseSummary), args.Error(1)
}

// mapCache is an in-process QueryCache that records invalidations
type mapCache struct {
	mu            sync.Mutex
	values        map[string][]byte
	invalidations int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
	return nil
}

func (c *mapCache) InvalidateScope(_ context.Context, userID int64, category livestock.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	prefix := ScopePrefix(userID, category)
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func (c *mapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// testRepos bundles the mocks used by service tests
type testRepos struct {
	users    *MockUserRepository
	counts   *MockCountRepository
	events   *MockEventRepository
	tags     *MockTagRepository
	expenses *MockExpenseRepository
}

func newTestRepos() *testRepos {
	return &testRepos{
		users:    new(MockUserRepository),
		counts:   new(MockCountRepository),
		events:   new(MockEventRepository),
		tags:     new(MockTagRepository),
		expenses: new(MockExpenseRepository),
	}
}

func (r *testRepos) repositories() Repositories {
	return Repositories{
		Users:    r.users,
		Counts:   r.counts,
		Events:   r.events,
		Tags:     r.tags,
		Expenses: r.expenses,
	}
}

func (r *testRepos) assertExpectations(t mock.TestingT) {
	r.users.AssertExpectations(t)
	r.counts.AssertExpectations(t)
	r.events.AssertExpectations(t)
	r.tags.AssertExpectations(t)
	r.expenses.AssertExpectations(t)
}
