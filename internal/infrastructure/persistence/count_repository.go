package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/infrastructure/persistence/models"
)

// GormCountRepository implements CountRepository using GORM
type GormCountRepository struct {
	db *gorm.DB
}

// NewGormCountRepository creates a new GormCountRepository
func NewGormCountRepository(db *gorm.DB) *GormCountRepository {
	return &GormCountRepository{db: db}
}

// FindByUserAndCategory finds the count of a (user, category) pair
func (r *GormCountRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	return r.find(r.db.WithContext(ctx), userID, category)
}

// FindByUserAndCategoryForUpdate finds the count with SELECT ... FOR UPDATE.
// Only meaningful inside a transaction.
func (r *GormCountRepository) FindByUserAndCategoryForUpdate(ctx context.Context, userID int64, category livestock.Category) (*livestock.Count, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, category)
}

func (r *GormCountRepository) find(db *gorm.DB, userID int64, category livestock.Category) (*livestock.Count, error) {
	var model models.CountModel
	if err := db.
		Where("user_id = ? AND category = ?", userID, category.String()).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByUserAndCategory checks if the pair was initialized
func (r *GormCountRepository) ExistsByUserAndCategory(ctx context.Context, userID int64, category livestock.Category) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CountModel{}).
		Where("user_id = ? AND category = ?", userID, category.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new count. A second count for the pair fails with shared.ErrAlreadyExists.
func (r *GormCountRepository) Create(ctx context.Context, count *livestock.Count) error {
	return translateError(r.db.WithContext(ctx).Create(models.CountModelFromDomain(count)).Error)
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormCountRepository) SaveWithLock(ctx context.Context, count *livestock.Count) error {
	result := r.db.WithContext(ctx).
		Model(&models.CountModel{}).
		Where("id = ? AND version = ?", count.ID, count.Version-1).
		Updates(map[string]interface{}{
			"male_count":   count.MaleCount,
			"female_count": count.FemaleCount,
			"max_id":       count.MaxID,
			"version":      count.Version,
			"updated_at":   count.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Livestock count was modified by another transaction")
	}
	return nil
}

var _ livestock.CountRepository = (*GormCountRepository)(nil)
