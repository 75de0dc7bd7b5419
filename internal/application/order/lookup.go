package order

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tshirtshop/backend/internal/domain/catalog"
	"github.com/tshirtshop/backend/internal/domain/identity"
	"github.com/tshirtshop/backend/internal/domain/order"
	"github.com/tshirtshop/backend/internal/domain/shared"
)

func requireUser(ctx context.Context, users identity.Lookup, userID int64) error {
	exists, err := users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewNotFoundError("User", userID)
	}
	return nil
}

func resolvePrice(ctx context.Context, products catalog.Lookup, productID int64) (decimal.Decimal, error) {
	exists, err := products.ProductExists(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, shared.NewNotFoundError("Product", productID)
	}
	return products.GetPrice(ctx, productID)
}

func resolveProducts(ctx context.Context, products catalog.Lookup, productIDs []int64) ([]order.PricedProduct, error) {
	priced := make([]order.PricedProduct, 0, len(productIDs))
	for _, id := range productIDs {
		p, err := resolvePrice(ctx, products, id)
		if err != nil {
			return nil, err
		}
		priced = append(priced, order.PricedProduct{ProductID: id, Price: p})
	}
	return priced, nil
}
