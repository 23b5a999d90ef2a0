package persistence

import (
	"context"

	"gorm.io/gorm"

	applivestock "github.com/livestock/backend/internal/application/livestock"
	"github.com/livestock/backend/internal/domain/livestock"
)

// NewRepositories returns the GORM repositories bound to db, for use outside transactions
func NewRepositories(db *gorm.DB) applivestock.Repositories {
	return applivestock.Repositories{
		Users:    NewGormUserRepository(db),
		Counts:   NewGormCountRepository(db),
		Events:   NewGormEventRepository(db),
		Tags:     NewGormTagRepository(db),
		Expenses: NewGormExpenseRepository(db),
	}
}

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos applivestock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the user repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UserRepo() livestock.UserRepository {
	return NewGormUserRepository(r.tx)
}

// CountRepo returns the count repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CountRepo() livestock.CountRepository {
	return NewGormCountRepository(r.tx)
}

// EventRepo returns the event repository scoped to the current transaction.
func (r *gormTransactionalRepositories) EventRepo() livestock.EventRepository {
	return NewGormEventRepository(r.tx)
}

// TagRepo returns the tag repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TagRepo() livestock.TagRepository {
	return NewGormTagRepository(r.tx)
}

// ExpenseRepo returns the expense repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ExpenseRepo() livestock.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ applivestock.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ applivestock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
