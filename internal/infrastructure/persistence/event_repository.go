package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livestock/backend/internal/domain/livestock"
	"github.com/livestock/backend/internal/infrastructure/persistence/models"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event of a user
func (r *GormEventRepository) FindByID(ctx context.Context, userID int64, id uuid.UUID) (*livestock.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByUserAndCategory lists the events of a pair, oldest first
func (r *GormEventRepository) FindByUserAndCategory(ctx context.Context, userID int64, category livestock.Category, filter livestock.EventFilter) ([]livestock.Event, error) {
	query := r.scope(ctx, userID, category)
	if filter.Type != "" {
		query = query.Where("event_type = ?", filter.Type.String())
	}
	if filter.Range != nil {
		query = query.Where("event_date BETWEEN ? AND ?", filter.Range.Start, filter.Range.End)
	}

	var rows []models.EventModel
	if err := query.Order("event_date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	events := make([]livestock.Event, 0, len(rows))
	for i := range rows {
		events = append(events, *rows[i].ToDomain())
	}
	return events, nil
}

// Create appends an event
func (r *GormEventRepository) Create(ctx context.Context, event *livestock.Event) error {
	return translateError(r.db.WithContext(ctx).Create(models.EventModelFromDomain(event)).Error)
}

// SumSalePrice sums the sale prices of SALE events in the range
func (r *GormEventRepository) SumSalePrice(ctx context.Context, userID int64, category livestock.Category, dr livestock.DateRange) (decimal.Decimal, error) {
	return sumColumn(
		r.scope(ctx, userID, category).
			Where("event_type = ?", livestock.EventTypeSale.String()).
			Where("event_date BETWEEN ? AND ?", dr.Start, dr.End),
		"sale_price",
	)
}

// SumCost sums the costs of all events in the range
func (r *GormEventRepository) SumCost(ctx context.Context, userID int64, category livestock.Category, dr livestock.DateRange) (decimal.Decimal, error) {
	return sumColumn(
		r.scope(ctx, userID, category).Where("event_date BETWEEN ? AND ?", dr.Start, dr.End),
		"cost",
	)
}

func (r *GormEventRepository) scope(ctx context.Context, userID int64, category livestock.Category) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.EventModel{}).
		Where("user_id = ? AND category = ?", userID, category.String())
}

// sumColumn returns COALESCE(SUM(column), 0) over query
func sumColumn(query *gorm.DB, column string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := query.
		Select("COALESCE(SUM(" + column + "), 0) AS total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ livestock.EventRepository = (*GormEventRepository)(nil)
