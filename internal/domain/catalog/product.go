package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// Product is the slice of a catalog product the order lifecycle reads
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
}

// NewProduct creates a product with a non-negative price
func NewProduct(name, description string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product price cannot be negative")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Price:       price,
	}, nil
}
