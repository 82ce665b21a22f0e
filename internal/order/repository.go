package order

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	// Create persists the whole order graph (master, sub-orders, items,
	// initial history entries) in one transaction.
	Create(ctx context.Context, order *model.Order) error

	// GetByID loads the full graph.
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetSubOrder(ctx context.Context, subOrderID string) (*model.SubOrder, error)

	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]model.Order, int, error)
	ListSubOrdersByRetailer(ctx context.Context, retailerID string, page, pageSize int) ([]model.SubOrder, int, error)

	// SaveSubOrderTransition updates one sub-order's status/payment, appends
	// its history entry and rewrites the derived master fields, atomically.
	SaveSubOrderTransition(ctx context.Context, sub *model.SubOrder, entry *model.SubOrderStatus, masterStatus model.OrderStatus, masterPayment model.PaymentStatus) error

	// SaveCancellation flushes a fully cancelled order graph: every mutated
	// sub-order row, the new history entries and the master fields.
	SaveCancellation(ctx context.Context, order *model.Order, entries []model.SubOrderStatus) error

	GetUser(ctx context.Context, id string) (*model.User, error)
}
