package models

import (
	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/order"
)

// ActiveOrderIndex is the partial unique index allowing one active order per user
const ActiveOrderIndex = "idx_orders_one_active_per_user"

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	AggregateModel
	UserID     int64               `gorm:"not null;index;index:idx_orders_one_active_per_user,unique,where:active = true"`
	TotalPrice decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Address    string              `gorm:"type:varchar(500);not null"`
	Active     bool                `gorm:"not null;index"`
	Products   []OrderProductModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderProductModel is one member of an order's product set.
// Position keeps the insertion order stable across reads.
type OrderProductModel struct {
	OrderID   int64 `gorm:"primaryKey"`
	ProductID int64 `gorm:"primaryKey;index"`
	Position  int   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderProductModel) TableName() string {
	return "order_products"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	productIDs := make([]int64, len(m.Products))
	for i, p := range m.Products {
		productIDs[i] = p.ProductID
	}
	return &order.Order{
		BaseAggregateRoot: m.aggregate(),
		UserID:            m.UserID,
		ProductIDs:        productIDs,
		TotalPrice:        m.TotalPrice,
		Address:           m.Address,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.setAggregate(o.BaseAggregateRoot)
	m.UserID = o.UserID
	m.TotalPrice = o.TotalPrice
	m.Address = o.Address
	m.Active = o.Active
	m.Products = ProductRows(o.ID, o.ProductIDs)
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// ProductRows builds the order_products rows for a product set
func ProductRows(orderID int64, productIDs []int64) []OrderProductModel {
	rows := make([]OrderProductModel, len(productIDs))
	for i, id := range productIDs {
		rows[i] = OrderProductModel{OrderID: orderID, ProductID: id, Position: i}
	}
	return rows
}
