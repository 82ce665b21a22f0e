package inventory

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/inventory/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*model.Inventory, error)
	GetBySellerProduct(ctx context.Context, sellerID, productID string) (*model.Inventory, error)

	// FindRetailerOffers returns active retailer-owned inventory for the
	// product ordered by price ascending.
	FindRetailerOffers(ctx context.Context, productID string) ([]model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	Upsert(ctx context.Context, inv *model.Inventory) error

	// Guarded atomic stock mutations. Each fails with errs.ErrInsufficientStock
	// (or errs.ErrConflict) when the guard does not hold, and writes the
	// movement row in the same transaction.
	Reserve(ctx context.Context, id string, qty int, movement *model.StockMovement) error
	Release(ctx context.Context, id string, qty int, movement *model.StockMovement) error
	Confirm(ctx context.Context, id string, qty int, movement *model.StockMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
