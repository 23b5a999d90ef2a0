package livestock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		size    int
		wantErr bool
	}{
		{"first page default size", 0, DefaultPageSize, false},
		{"largest page size", 0, MaxPageSize, false},
		{"later page", 7, 1, false},
		{"zero size", 0, 0, true},
		{"oversized", 0, MaxPageSize + 1, true},
		{"negative page", -1, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePagination(tt.page, tt.size)
			if tt.wantErr {
				requireCode(t, err, livestock.CodeInvalidPagination)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateExpenseAmount(t *testing.T) {
	assert.NoError(t, ValidateExpenseAmount(dec("0.01")))
	requireCode(t, ValidateExpenseAmount(nil), livestock.CodeInvalidExpenseAmount)
	requireCode(t, ValidateExpenseAmount(dec("0")), livestock.CodeInvalidExpenseAmount)
	requireCode(t, ValidateExpenseAmount(dec("-3")), livestock.CodeInvalidExpenseAmount)
}

func TestValidationHelper_ValidateUser(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	repos.users.On("ExistsByID", ctx, int64(1)).Return(true, nil)
	repos.users.On("ExistsByID", ctx, int64(2)).Return(false, nil)
	repos.users.On("ExistsByID", ctx, int64(3)).Return(false, errors.New("connection reset"))
	h := ValidationHelperFor(repos.repositories())

	assert.NoError(t, h.ValidateUser(ctx, 1))
	requireCode(t, h.ValidateUser(ctx, 2), livestock.CodeUserNotFound)

	err := h.ValidateUser(ctx, 3)
	require.Error(t, err)
	assert.Empty(t, shared.CodeOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidationHelper_ValidateCount(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	count := existingCount(t, 1, 2)
	repos.counts.On("FindByUserAndCategory", ctx, testUserID, livestock.CategoryCattle).Return(count, nil)
	repos.counts.On("FindByUserAndCategory", ctx, testUserID, livestock.CategoryGoat).Return(nil, shared.ErrNotFound)
	repos.counts.On("FindByUserAndCategoryForUpdate", ctx, testUserID, livestock.CategorySheep).Return(nil, shared.ErrNotFound)
	repos.counts.On("ExistsByUserAndCategory", ctx, testUserID, livestock.CategoryCattle).Return(true, nil)
	h := NewValidationHelper(repos.users, repos.counts)

	got, err := h.ValidateCount(ctx, testUserID, livestock.CategoryCattle)
	require.NoError(t, err)
	assert.Same(t, count, got)

	_, err = h.ValidateCount(ctx, testUserID, livestock.CategoryGoat)
	requireCode(t, err, livestock.CodeCountNotFound)

	_, err = h.ValidateCountForUpdate(ctx, testUserID, livestock.CategorySheep)
	requireCode(t, err, livestock.CodeCountNotFound)

	requireCode(t, h.ValidateCountNotExists(ctx, testUserID, livestock.CategoryCattle), livestock.CodeCountExists)
}
