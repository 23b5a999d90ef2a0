package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livestock/backend/internal/domain/livestock"
)

// UserModel is the persistence model for livestock owners
type UserModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *livestock.User {
	return &livestock.User{ID: m.ID, CreatedAt: m.CreatedAt}
}

// UserModelFromDomain creates a model from a domain user
func UserModelFromDomain(u *livestock.User) *UserModel {
	return &UserModel{ID: u.ID, CreatedAt: u.CreatedAt}
}

// CountModel is the persistence model for the per-(user, category) count aggregate
type CountModel struct {
	AggregateModel
	UserID      int64  `gorm:"not null;uniqueIndex:idx_livestock_counts_user_category"`
	Category    string `gorm:"type:varchar(16);not null;uniqueIndex:idx_livestock_counts_user_category"`
	MaleCount   int    `gorm:"not null;default:0"`
	FemaleCount int    `gorm:"not null;default:0"`
	MaxID       int    `gorm:"column:max_id;not null;default:0"`
}

// TableName returns the table name for GORM
func (CountModel) TableName() string {
	return "livestock_counts"
}

// ToDomain converts the model to a domain count
func (m *CountModel) ToDomain() *livestock.Count {
	return &livestock.Count{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Category:          livestock.Category(m.Category),
		MaleCount:         m.MaleCount,
		FemaleCount:       m.FemaleCount,
		MaxID:             m.MaxID,
	}
}

// CountModelFromDomain creates a model from a domain count
func CountModelFromDomain(c *livestock.Count) *CountModel {
	m := &CountModel{
		UserID:      c.UserID,
		Category:    c.Category.String(),
		MaleCount:   c.MaleCount,
		FemaleCount: c.FemaleCount,
		MaxID:       c.MaxID,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// EventModel is the persistence model for recorded events
type EventModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	UserID      int64            `gorm:"not null;index:idx_livestock_events_scope"`
	Category    string           `gorm:"type:varchar(16);not null;index:idx_livestock_events_scope"`
	EventType   string           `gorm:"type:varchar(16);not null"`
	MaleCount   int              `gorm:"not null;default:0"`
	FemaleCount int              `gorm:"not null;default:0"`
	EventDate   time.Time        `gorm:"type:date;not null;index:idx_livestock_events_scope"`
	SalePrice   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Cost        *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt   time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "livestock_events"
}

// ToDomain converts the model to a domain event
func (m *EventModel) ToDomain() *livestock.Event {
	return &livestock.Event{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    livestock.Category(m.Category),
		Type:        livestock.EventType(m.EventType),
		MaleCount:   m.MaleCount,
		FemaleCount: m.FemaleCount,
		EventDate:   livestock.DateOf(m.EventDate),
		SalePrice:   m.SalePrice,
		Cost:        m.Cost,
		CreatedAt:   m.CreatedAt,
	}
}

// EventModelFromDomain creates a model from a domain event
func EventModelFromDomain(e *livestock.Event) *EventModel {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &EventModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Category:    e.Category.String(),
		EventType:   e.Type.String(),
		MaleCount:   e.MaleCount,
		FemaleCount: e.FemaleCount,
		EventDate:   e.EventDate,
		SalePrice:   e.SalePrice,
		Cost:        e.Cost,
		CreatedAt:   createdAt,
	}
}

// TagModel is the persistence model for individually tagged animals
type TagModel struct {
	BaseModel
	UserID        int64            `gorm:"not null;uniqueIndex:idx_livestock_tags_number"`
	Category      string           `gorm:"type:varchar(16);not null;uniqueIndex:idx_livestock_tags_number"`
	TagNumber     string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_livestock_tags_number"`
	Gender        string           `gorm:"type:varchar(8);not null"`
	Status        string           `gorm:"type:varchar(16);not null;index"`
	EventID       uuid.UUID        `gorm:"type:uuid;not null"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(15,2)"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "livestock_tags"
}

// ToDomain converts the model to a domain tag
func (m *TagModel) ToDomain() *livestock.Tag {
	return &livestock.Tag{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserID:        m.UserID,
		Category:      livestock.Category(m.Category),
		TagNumber:     m.TagNumber,
		Gender:        livestock.Gender(m.Gender),
		Status:        livestock.TagStatus(m.Status),
		EventID:       m.EventID,
		PurchasePrice: m.PurchasePrice,
	}
}

// TagModelFromDomain creates a model from a domain tag
func TagModelFromDomain(t *livestock.Tag) *TagModel {
	m := &TagModel{
		UserID:        t.UserID,
		Category:      t.Category.String(),
		TagNumber:     t.TagNumber,
		Gender:        t.Gender.String(),
		Status:        t.Status.String(),
		EventID:       t.EventID,
		PurchasePrice: t.PurchasePrice,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	UserID          int64           `gorm:"not null;index:idx_livestock_expenses_scope"`
	Category        string          `gorm:"type:varchar(16);not null;index:idx_livestock_expenses_scope"`
	ExpenseCategory string          `gorm:"type:varchar(32);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description     string          `gorm:"type:text"`
	ExpenseDate     time.Time       `gorm:"type:date;not null;index:idx_livestock_expenses_scope"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "livestock_expenses"
}

// ToDomain converts the model to a domain expense
func (m *ExpenseModel) ToDomain() *livestock.Expense {
	return &livestock.Expense{
		ID:              m.ID,
		UserID:          m.UserID,
		Category:        livestock.Category(m.Category),
		ExpenseCategory: livestock.ExpenseCategory(m.ExpenseCategory),
		Amount:          m.Amount,
		Description:     m.Description,
		ExpenseDate:     livestock.DateOf(m.ExpenseDate),
		CreatedAt:       m.CreatedAt,
	}
}

// ExpenseModelFromDomain creates a model from a domain expense
func ExpenseModelFromDomain(e *livestock.Expense) *ExpenseModel {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &ExpenseModel{
		ID:              e.ID,
		UserID:          e.UserID,
		Category:        e.Category.String(),
		ExpenseCategory: e.ExpenseCategory.String(),
		Amount:          e.Amount,
		Description:     e.Description,
		ExpenseDate:     e.ExpenseDate,
		CreatedAt:       createdAt,
	}
}

// AllModels returns every model in dependency order, for AutoMigrate
func AllModels() []any {
	return []any{
		&UserModel{},
		&CountModel{},
		&EventModel{},
		&TagModel{},
		&ExpenseModel{},
	}
}
