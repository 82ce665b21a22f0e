package order

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/discount"
	"github.com/freshkart/freshkart-api/internal/model"
)

// Collaborator interfaces, declared here on the consumer side so the order
// usecase can be tested with fakes.

type Inventory interface {
	ResolveRetailerOffer(ctx context.Context, productID string) (*model.Inventory, error)
	Reserve(ctx context.Context, inventoryID string, qty int, referenceID string) error
	Release(ctx context.Context, inventoryID string, qty int, referenceID string) error
	Confirm(ctx context.Context, inventoryID string, qty int, referenceID string) error
}

type Discounts interface {
	CalculateBestDiscount(ctx context.Context, customerID string, subtotal float64, codeID *string) (*discount.Quote, error)
	RecordUsage(ctx context.Context, codeID, customerID, orderID string) error
}

type Catalog interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

// Notifier is fire-and-forget: implementations log failures, never return them.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *model.Order)
	SubOrderStatusChanged(ctx context.Context, order *model.Order, sub *model.SubOrder)
	OrderCancelled(ctx context.Context, order *model.Order)
}

// Estimator supplies the per-retailer delivery estimate; failure is tolerated.
type Estimator interface {
	Estimate(ctx context.Context, retailerID, address string) (int, error)
}

// Cart supplies the customer's saved cart when checkout is called without
// inline items, and is cleared once the order is persisted.
type Cart interface {
	Get(ctx context.Context, customerID string) ([]model.CartItem, error)
	Clear(ctx context.Context, customerID string) error
}
