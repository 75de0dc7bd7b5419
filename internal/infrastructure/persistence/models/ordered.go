package models

import (
	"time"

	"github.com/tshirtshop/backend/internal/domain/fulfillment"
)

// OrderedModel is the persistence model for a fulfillment record.
// The foreign key to orders is declared ON DELETE RESTRICT in the migrations.
type OrderedModel struct {
	AggregateModel
	OrderID int64             `gorm:"not null;uniqueIndex"`
	UserID  int64             `gorm:"not null;index"`
	Date    time.Time         `gorm:"type:date;not null;index"`
	State   fulfillment.State `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (OrderedModel) TableName() string {
	return "ordered"
}

// ToDomain converts the persistence model to a domain Ordered record
func (m *OrderedModel) ToDomain() *fulfillment.Ordered {
	return &fulfillment.Ordered{
		BaseAggregateRoot: m.aggregate(),
		OrderID:           m.OrderID,
		UserID:            m.UserID,
		Date:              fulfillment.DateOf(m.Date),
		State:             m.State,
	}
}

// FromDomain populates the persistence model from a domain Ordered record
func (m *OrderedModel) FromDomain(o *fulfillment.Ordered) {
	m.setAggregate(o.BaseAggregateRoot)
	m.OrderID = o.OrderID
	m.UserID = o.UserID
	m.Date = fulfillment.DateOf(o.Date)
	m.State = o.State
}

// OrderedModelFromDomain creates a new persistence model from a domain Ordered record
func OrderedModelFromDomain(o *fulfillment.Ordered) *OrderedModel {
	m := &OrderedModel{}
	m.FromDomain(o)
	return m
}
