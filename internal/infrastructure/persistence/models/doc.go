// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models hold all GORM annotations and table mappings
// 3. Each model converts to and from its domain entity
//
// Structure:
// - base.go: BaseModel and AggregateModel
// - order.go: orders and the order_products set
// - ordered.go: fulfillment records
// - identity.go: users
// - catalog.go: products
package models
