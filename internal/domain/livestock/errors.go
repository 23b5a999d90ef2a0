package livestock

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/shared"
)

// Error codes raised by the livestock domain
const (
	CodeCountExists            = "LIVESTOCK_COUNT_EXISTS"
	CodeCountNotFound          = "LIVESTOCK_COUNT_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeUserExists             = "USER_EXISTS"
	CodeEventNotFound          = "EVENT_NOT_FOUND"
	CodeInvalidEventType       = "INVALID_EVENT_TYPE"
	CodeInvalidSalePrice       = "INVALID_SALE_PRICE"
	CodeNegativeCount          = "NEGATIVE_COUNT"
	CodeInvalidLivestockIDs    = "INVALID_LIVESTOCK_IDS"
	CodeIDCountMismatch        = "LIVESTOCK_ID_COUNT_MISMATCH"
	CodeInvalidExpenseAmount   = "INVALID_EXPENSE_AMOUNT"
	CodeInvalidExpenseCategory = "INVALID_EXPENSE_CATEGORY"
	CodeInvalidPagination      = "INVALID_PAGINATION"
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnexpected             = "UNEXPECTED_ERROR"
)

// Details carried by INVALID_LIVESTOCK_IDS errors
const (
	DetailNoIDs       = "No IDs provided"
	DetailDuplicate   = "Duplicate IDs provided"
	DetailNotFound    = "Some IDs not found"
	DetailNotAlive    = "Some IDs are not alive"
	DetailBlankID     = "Blank IDs provided"
	DetailIDsInUse    = "tag numbers already in use"
)

// at most this many identifiers are echoed back in an error detail
const detailListTrimCap = 10

func NewCountExistsError(userID int64, category Category) *shared.DomainError {
	return shared.NewDomainError(CodeCountExists,
		fmt.Sprintf("Count already exists for user %d and category %s", userID, category))
}

func NewCountNotFoundError(userID int64, category Category) *shared.DomainError {
	return shared.NewDomainError(CodeCountNotFound,
		fmt.Sprintf("Count not found for user %d and category %s", userID, category))
}

func NewUserNotFoundError(userID int64) *shared.DomainError {
	return shared.NewDomainError(CodeUserNotFound, fmt.Sprintf("User not found: %d", userID))
}

func NewUserExistsError(userID int64) *shared.DomainError {
	return shared.NewDomainError(CodeUserExists, fmt.Sprintf("User already exists: %d", userID))
}

func NewEventNotFoundError(eventID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(CodeEventNotFound, fmt.Sprintf("Event not found: %s", eventID))
}

func NewInvalidEventTypeError(value string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidEventType, fmt.Sprintf("Invalid event type: %s", value))
}

func NewInvalidSalePriceError(price *decimal.Decimal) *shared.DomainError {
	value := "null"
	if price != nil {
		value = price.String()
	}
	return shared.NewDomainError(CodeInvalidSalePrice,
		fmt.Sprintf("Sale price must be positive for SALE event: %s", value))
}

func NewNegativeCountError(userID int64, category Category) *shared.DomainError {
	return shared.NewDomainError(CodeNegativeCount,
		fmt.Sprintf("Event would result in negative count for user %d and category %s", userID, category))
}

// NewInvalidLivestockIDsError reports unusable tag identifiers. ids, when
// given, are appended to the detail so callers can see which ones failed.
func NewInvalidLivestockIDsError(detail string, ids ...string) *shared.DomainError {
	if len(ids) > 0 {
		shown := ids
		if len(shown) > detailListTrimCap {
			shown = shown[:detailListTrimCap]
		}
		detail = fmt.Sprintf("%s [%s]", detail, strings.Join(shown, ", "))
	}
	return shared.NewDomainError(CodeInvalidLivestockIDs,
		fmt.Sprintf("Invalid or inactive livestock IDs provided: %s", detail))
}

func NewIDCountMismatchError(got, want int) *shared.DomainError {
	return shared.NewDomainError(CodeIDCountMismatch,
		fmt.Sprintf("Number of livestock IDs (%d) does not match total count (%d)", got, want))
}

func NewInvalidExpenseAmountError(amount *decimal.Decimal) *shared.DomainError {
	value := "null"
	if amount != nil {
		value = amount.String()
	}
	return shared.NewDomainError(CodeInvalidExpenseAmount,
		fmt.Sprintf("Expense amount must be positive: %s", value))
}

func NewInvalidExpenseCategoryError(value string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidExpenseCategory, fmt.Sprintf("Invalid expense category: %s", value))
}

func NewInvalidPaginationError(page, size int) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidPagination,
		fmt.Sprintf("Invalid pagination parameters: page=%d, size=%d", page, size))
}

func NewInvalidRequestError(message string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidRequest, message)
}
