package order

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type name used in domain events
const AggregateTypeOrder = "Order"

// PricedProduct is a product reference resolved against the catalog
type PricedProduct struct {
	ProductID int64
	Price     decimal.Decimal
}

// Order is the cart / placed order aggregate root.
// ProductIDs has set semantics: a product appears at most once no matter how
// many times it was added. TotalPrice is a running accumulator on the cart
// path and an exact recomputed sum on the replace path.
type Order struct {
	shared.BaseAggregateRoot
	UserID     int64
	ProductIDs []int64
	TotalPrice decimal.Decimal
	Address    string
	Active     bool
}

// NormalizeQuantity maps a non-positive quantity to 1
func NormalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

// NewActiveOrder creates a new active cart holding a single product.
// The total starts at unitPrice * quantity, after quantity normalization.
func NewActiveOrder(userID, productID int64, unitPrice decimal.Decimal, quantity int) (*Order, error) {
	if err := validateOwner(userID); err != nil {
		return nil, err
	}
	if err := validateProduct(productID, unitPrice); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductIDs:        []int64{productID},
		TotalPrice:        lineAmount(unitPrice, quantity),
		Address:           "",
		Active:            true,
	}
	return o, nil
}

// NewOrder creates an active order from an explicit product list.
// The total is the exact sum of the distinct products' prices.
func NewOrder(userID int64, products []PricedProduct, address string) (*Order, error) {
	if err := validateOwner(userID); err != nil {
		return nil, err
	}
	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Address:           address,
		Active:            true,
	}
	if err := o.setProducts(products); err != nil {
		return nil, err
	}
	return o, nil
}

// AddProduct adds a product to the active cart owned by callerUserID.
// The total grows by unitPrice * quantity even when the product is already
// in the set, while the set itself stays unchanged in that case.
func (o *Order) AddProduct(callerUserID, productID int64, unitPrice decimal.Decimal, quantity int) error {
	if err := o.EnsureModifiableBy(callerUserID); err != nil {
		return err
	}
	if err := validateProduct(productID, unitPrice); err != nil {
		return err
	}

	if !o.HasProduct(productID) {
		o.ProductIDs = append(o.ProductIDs, productID)
	}
	o.TotalPrice = o.TotalPrice.Add(lineAmount(unitPrice, quantity))
	o.Touch()
	return nil
}

// Replace fully replaces owner, products, address and active flag.
// The total is recomputed as the exact sum of the distinct products' prices.
func (o *Order) Replace(userID int64, products []PricedProduct, address string, active bool) error {
	if err := validateOwner(userID); err != nil {
		return err
	}
	if err := o.setProducts(products); err != nil {
		return err
	}
	o.UserID = userID
	o.Address = address
	o.Active = active
	o.Touch()
	return nil
}

// Checkout turns the active cart into a placed order with a shipping address
func (o *Order) Checkout(callerUserID int64, address string) error {
	if err := o.EnsureModifiableBy(callerUserID); err != nil {
		return err
	}
	if len(o.ProductIDs) == 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot place an order without products")
	}
	o.Address = address
	o.Active = false
	o.Touch()
	return nil
}

// EnsureModifiableBy checks that the order is an active cart owned by the caller.
// Ownership failures are FORBIDDEN, inactive carts are ORDER_NOT_ACTIVE.
func (o *Order) EnsureModifiableBy(callerUserID int64) error {
	if !o.IsOwnedBy(callerUserID) {
		return shared.NewDomainError(shared.CodeForbidden,
			fmt.Sprintf("Order %d does not belong to user %d", o.ID, callerUserID))
	}
	if !o.Active {
		return shared.NewDomainError(shared.CodeOrderNotActive,
			fmt.Sprintf("Order %d is not active", o.ID))
	}
	return nil
}

// HasProduct reports whether the product is in the line-item set
func (o *Order) HasProduct(productID int64) bool {
	return slices.Contains(o.ProductIDs, productID)
}

// IsOwnedBy reports whether the order belongs to the user
func (o *Order) IsOwnedBy(userID int64) bool {
	return o.UserID == userID
}

// LineItemCount returns the size of the line-item set
func (o *Order) LineItemCount() int {
	return len(o.ProductIDs)
}

func (o *Order) setProducts(products []PricedProduct) error {
	ids := make([]int64, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		if err := validateProduct(p.ProductID, p.Price); err != nil {
			return err
		}
		if slices.Contains(ids, p.ProductID) {
			continue
		}
		ids = append(ids, p.ProductID)
		total = total.Add(p.Price)
	}
	o.ProductIDs = ids
	o.TotalPrice = total
	return nil
}

func lineAmount(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(NormalizeQuantity(quantity))))
}

func validateOwner(userID int64) error {
	if userID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "User ID is required")
	}
	return nil
}

func validateProduct(productID int64, price decimal.Decimal) error {
	if productID <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product ID is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product price cannot be negative")
	}
	return nil
}
