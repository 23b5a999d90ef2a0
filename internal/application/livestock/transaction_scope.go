package livestock

import (
	"context"

	"github.com/livestock/backend/internal/domain/livestock"
)

// TransactionScope provides transactional access to livestock repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all livestock repositories.
// Inside TransactionScope.Execute every repository shares the same transaction.
//
// Count is the aggregate root. Tags and events are written only while its
// row is locked, so all state changes for one (user, category) are serialized.
type TransactionalRepositories interface {
	UserRepo() livestock.UserRepository
	CountRepo() livestock.CountRepository
	EventRepo() livestock.EventRepository
	TagRepo() livestock.TagRepository
	ExpenseRepo() livestock.ExpenseRepository
}

// Repositories is a plain TransactionalRepositories value
type Repositories struct {
	Users    livestock.UserRepository
	Counts   livestock.CountRepository
	Events   livestock.EventRepository
	Tags     livestock.TagRepository
	Expenses livestock.ExpenseRepository
}

// UserRepo returns the user repository.
func (r Repositories) UserRepo() livestock.UserRepository { return r.Users }

// CountRepo returns the count repository.
func (r Repositories) CountRepo() livestock.CountRepository { return r.Counts }

// EventRepo returns the event repository.
func (r Repositories) EventRepo() livestock.EventRepository { return r.Events }

// TagRepo returns the tag repository.
func (r Repositories) TagRepo() livestock.TagRepository { return r.Tags }

// ExpenseRepo returns the expense repository.
func (r Repositories) ExpenseRepo() livestock.ExpenseRepository { return r.Expenses }

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}

// Ensure implementations satisfy the interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = Repositories{}
