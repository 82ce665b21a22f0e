package cart

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

// ProductChecker verifies a product exists before it enters the cart.
type ProductChecker interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// UseCase manages the customer's transient cart. Items live in a Redis hash
// keyed per customer and are never persisted relationally.
type UseCase interface {
	AddItem(ctx context.Context, customerID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID string) error
	Get(ctx context.Context, customerID string) ([]model.CartItem, error)
	Clear(ctx context.Context, customerID string) error
}
