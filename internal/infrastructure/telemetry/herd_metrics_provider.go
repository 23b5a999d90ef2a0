package telemetry

import (
	"context"

	"gorm.io/gorm"

	"github.com/livestock/backend/internal/domain/livestock"
)

// GormHerdSizeProvider implements HerdSizeProvider over the livestock_counts table
type GormHerdSizeProvider struct {
	db *gorm.DB
}

// NewGormHerdSizeProvider creates a new GormHerdSizeProvider
func NewGormHerdSizeProvider(db *gorm.DB) *GormHerdSizeProvider {
	return &GormHerdSizeProvider{db: db}
}

// HerdSizes sums the counts of every user per category
func (p *GormHerdSizeProvider) HerdSizes(ctx context.Context) (map[livestock.Category]HerdSize, error) {
	type row struct {
		Category string `gorm:"column:category"`
		Male     int64  `gorm:"column:male"`
		Female   int64  `gorm:"column:female"`
	}

	var rows []row
	err := p.db.WithContext(ctx).
		Table("livestock_counts").
		Select("category, COALESCE(SUM(male_count), 0) AS male, COALESCE(SUM(female_count), 0) AS female").
		Group("category").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sizes := make(map[livestock.Category]HerdSize, len(rows))
	for _, r := range rows {
		sizes[livestock.Category(r.Category)] = HerdSize{Male: r.Male, Female: r.Female}
	}
	return sizes, nil
}
