package inventory

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/inventory/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type UseCase interface {
	// ResolveRetailerOffer picks the inventory record order creation buys
	// from: the cheapest active retailer offer for the product.
	ResolveRetailerOffer(ctx context.Context, productID string) (*model.Inventory, error)

	Reserve(ctx context.Context, inventoryID string, qty int, referenceID string) error
	Release(ctx context.Context, inventoryID string, qty int, referenceID string) error
	Confirm(ctx context.Context, inventoryID string, qty int, referenceID string) error

	UpsertOffer(ctx context.Context, input *dto.UpsertOfferInput) (*model.Inventory, error)
	SetDiscount(ctx context.Context, input *dto.SetDiscountInput) (*model.Inventory, error)
	ListSellerInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
