package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/livestock/backend/internal/domain/shared"
)

// translateError maps gorm sentinel errors onto the shared domain sentinels.
// It requires gorm.Config.TranslateError so that unique violations surface as
// gorm.ErrDuplicatedKey on every driver.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}
