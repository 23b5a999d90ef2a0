// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain mappers convert between the two
// 4. Repositories use persistence models for database operations
//
// The SQL migrations under migrations/ are the source of truth for the postgres
// schema. AllModels exists for AutoMigrate in sqlite-backed tests and local runs.
package models
