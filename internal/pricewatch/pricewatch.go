package pricewatch

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	Create(ctx context.Context, alert *model.PriceAlert) error
	GetByID(ctx context.Context, id string) (*model.PriceAlert, error)
	ListByCustomer(ctx context.Context, customerID string) ([]model.PriceAlert, error)
	ListActive(ctx context.Context) ([]model.PriceAlert, error)
	Deactivate(ctx context.Context, id string) error

	// MarkTriggered flips the alert inactive and stamps triggered_at so a
	// price that keeps dropping fires at most one notification.
	MarkTriggered(ctx context.Context, id string) error
}

type UseCase interface {
	CreateAlert(ctx context.Context, customerID, productID string, targetPrice float64) (*model.PriceAlert, error)
	ListAlerts(ctx context.Context, customerID string) ([]model.PriceAlert, error)
	DeleteAlert(ctx context.Context, customerID, alertID string) error
}

// OfferResolver yields the cheapest active retailer offer for a product.
type OfferResolver interface {
	ResolveRetailerOffer(ctx context.Context, productID string) (*model.Inventory, error)
}

// AlertNotifier publishes a triggered alert. Delivery is best effort.
type AlertNotifier interface {
	PriceAlertTriggered(ctx context.Context, alert *model.PriceAlert, currentPrice float64)
}
