package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/interfaces/http/dto"
)

// Custom validation tags
const (
	TagLivestockCategory = "livestock_category"
	TagEventType         = "event_type"
	TagExpenseCategory   = "expense_category"
	TagTagStatus         = "tag_status"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: JSON and form names in errors,
// the livestock enum tags, and decimal.Decimal compared as a number.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation(TagLivestockCategory, enumValidator(func(s string) bool {
			_, err := livestock.ParseCategory(s)
			return err == nil
		}))
		_ = v.RegisterValidation(TagEventType, enumValidator(func(s string) bool {
			_, err := livestock.ParseEventType(s)
			return err == nil
		}))
		_ = v.RegisterValidation(TagExpenseCategory, enumValidator(func(s string) bool {
			_, err := livestock.ParseExpenseCategory(s)
			return err == nil
		}))
		_ = v.RegisterValidation(TagTagStatus, enumValidator(func(s string) bool {
			_, err := livestock.ParseTagStatus(s)
			return err == nil
		}))
	})
}

func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// BindingError translates a gin binding failure into a domain error.
// Unknown event types and expense categories keep their dedicated codes,
// everything else becomes INVALID_REQUEST with a "field: message; ..." detail.
func BindingError(err error) *shared.DomainError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fromValidationErrors(validationErrors)
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return shared.NewDomainError(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return livestock.NewInvalidRequestError(fmt.Sprintf("%s: must be a %s", typeErr.Field, typeErr.Type))
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return livestock.NewInvalidRequestError(fmt.Sprintf("query: %q is not a number", numErr.Num))
	}

	if errors.Is(err, io.EOF) {
		return livestock.NewInvalidRequestError("body: request body is required")
	}
	return livestock.NewInvalidRequestError("body: malformed request (" + err.Error() + ")")
}

func fromValidationErrors(errs validator.ValidationErrors) *shared.DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case TagEventType:
			return livestock.NewInvalidEventTypeError(fmt.Sprint(e.Value()))
		case TagExpenseCategory:
			return livestock.NewInvalidExpenseCategoryError(fmt.Sprint(e.Value()))
		}
		parts = append(parts, e.Field()+": "+getValidationMessage(e))
	}
	return livestock.NewInvalidRequestError(strings.Join(parts, "; "))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " characters"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "must be at most " + e.Param() + " characters"
		}
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "datetime":
		return "must be a date in " + e.Param() + " format"
	case TagLivestockCategory:
		return "must be one of " + joinValues(livestock.AllCategories)
	case TagTagStatus:
		return "must be one of ALIVE, SOLD, DECEASED, SLAUGHTERED, LOST"
	default:
		return "is invalid"
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
