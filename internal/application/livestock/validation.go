package livestock

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
)

// Pagination bounds
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ValidationHelper runs the existence checks shared by every operation.
// It works against whichever repositories it is given, so the same checks
// run inside and outside a transaction.
type ValidationHelper struct {
	users  livestock.UserRepository
	counts livestock.CountRepository
}

// NewValidationHelper creates a ValidationHelper over the given repositories
func NewValidationHelper(users livestock.UserRepository, counts livestock.CountRepository) *ValidationHelper {
	return &ValidationHelper{users: users, counts: counts}
}

// ValidationHelperFor creates a ValidationHelper over a repository set
func ValidationHelperFor(repos TransactionalRepositories) *ValidationHelper {
	return NewValidationHelper(repos.UserRepo(), repos.CountRepo())
}

// ValidateUser fails with USER_NOT_FOUND if the user does not exist
func (h *ValidationHelper) ValidateUser(ctx context.Context, userID int64) error {
	exists, err := h.users.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("checking user %d: %w", userID, err)
	}
	if !exists {
		return livestock.NewUserNotFoundError(userID)
	}
	return nil
}

// ValidateCountNotExists fails with LIVESTOCK_COUNT_EXISTS if the pair was already initialized
func (h *ValidationHelper) ValidateCountNotExists(ctx context.Context, userID int64, category livestock.Category) error {
	exists, err := h.counts.ExistsByUserAndCategory(ctx, userID, category)
	if err != nil {
		return fmt.Errorf("checking count: %w", err)
	}
	if exists {
		return livestock.NewCountExistsError(userID, category)
	}
	return nil
}

// ValidateCount returns the count of the pair or fails with LIVESTOCK_COUNT_NOT_FOUND
func (h *ValidationHelper) ValidateCount(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	count, err := h.counts.FindByUserAndCategory(ctx, userID, category)
	return checkCountLookup(userID, category, count, err)
}

// ValidateCountForUpdate is ValidateCount taking the count's row lock
func (h *ValidationHelper) ValidateCountForUpdate(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	count, err := h.counts.FindByUserAndCategoryForUpdate(ctx, userID, category)
	return checkCountLookup(userID, category, count, err)
}

func checkCountLookup(userID int64, category livestock.Category, count *livestock.Count, err error) (*livestock.Count, error) {
	if errors.Is(err, shared.ErrNotFound) {
		return nil, livestock.NewCountNotFoundError(userID, category)
	}
	if err != nil {
		return nil, fmt.Errorf("loading count: %w", err)
	}
	return count, nil
}

// ValidateExpenseAmount fails with INVALID_EXPENSE_AMOUNT if amount is nil or not positive
func ValidateExpenseAmount(amount *decimal.Decimal) error {
	if amount == nil || !amount.IsPositive() {
		return livestock.NewInvalidExpenseAmountError(amount)
	}
	return nil
}

// ValidatePagination fails with INVALID_PAGINATION unless page >= 0 and 0 < size <= MaxPageSize
func ValidatePagination(page, size int) error {
	if page < 0 || size <= 0 || size > MaxPageSize {
		return livestock.NewInvalidPaginationError(page, size)
	}
	return nil
}
