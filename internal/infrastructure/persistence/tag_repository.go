package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/domain/shared"
	"github.com/livestock/backend/internal/infrastructure/persistence/models"
)

const tagInsertBatchSize = 100

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByNumbers finds tags of a pair by tag number
func (r *GormTagRepository) FindByNumbers(ctx context.Context, userID int64, category livestock.Category, numbers []string) ([]*livestock.Tag, error) {
	return r.findByNumbers(r.db.WithContext(ctx), userID, category, numbers)
}

// FindByNumbersForUpdate finds tags of a pair by tag number with SELECT ... FOR UPDATE
func (r *GormTagRepository) FindByNumbersForUpdate(ctx context.Context, userID int64, category livestock.Category, numbers []string) ([]*livestock.Tag, error) {
	return r.findByNumbers(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, category, numbers)
}

func (r *GormTagRepository) findByNumbers(db *gorm.DB, userID int64, category livestock.Category, numbers []string) ([]*livestock.Tag, error) {
	if len(numbers) == 0 {
		return []*livestock.Tag{}, nil
	}

	var rows []models.TagModel
	if err := db.
		Where("user_id = ? AND category = ? AND tag_number IN ?", userID, category.String(), numbers).
		Order("tag_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]*livestock.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, rows[i].ToDomain())
	}
	return tags, nil
}

// FindByUserAndCategory lists the tags of a pair ordered by tag number
func (r *GormTagRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category, filter livestock.TagFilter) ([]livestock.Tag, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND category = ?", userID, category.String())
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var rows []models.TagModel
	if err := query.Order("tag_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]livestock.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, *rows[i].ToDomain())
	}
	return tags, nil
}

// CreateBatch inserts minted tags. A reused tag number fails with shared.ErrAlreadyExists.
func (r *GormTagRepository) CreateBatch(ctx context.Context, tags []*livestock.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]*models.TagModel, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, models.TagModelFromDomain(t))
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(rows, tagInsertBatchSize).Error)
}

// UpdateStatus writes the status and event link of each tag
func (r *GormTagRepository) UpdateStatus(ctx context.Context, tags []*livestock.Tag) error {
	for _, t := range tags {
		result := r.db.WithContext(ctx).
			Model(&models.TagModel{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"status":     t.Status.String(),
				"event_id":   t.EventID,
				"updated_at": t.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// SumPurchasePrice sums the purchase prices of every tag of the pair
func (r *GormTagRepository) SumPurchasePrice(ctx context.Context, userID int64, category livestock.Category) (decimal.Decimal, error) {
	return sumColumn(
		r.db.WithContext(ctx).
			Model(&models.TagModel{}).
			Where("user_id = ? AND category = ?", userID, category.String()),
		"purchase_price",
	)
}

var _ livestock.TagRepository = (*GormTagRepository)(nil)
