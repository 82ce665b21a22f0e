package order

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/order/dto"
)

type UseCase interface {
	// CreateOrder runs the full checkout pipeline: resolve and reserve
	// inventory per item, group by retailer, resolve the best discount,
	// allocate it proportionally and persist one sub-order per retailer.
	// Any failure releases every reservation made earlier in the request.
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)

	GetOrder(ctx context.Context, orderID, requesterID string, role model.Role) (*model.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string, page, pageSize int) ([]model.Order, int, error)
	ListRetailerSubOrders(ctx context.Context, retailerID string, page, pageSize int) ([]model.SubOrder, int, error)

	UpdateSubOrderStatus(ctx context.Context, input *dto.UpdateSubOrderStatusInput) (*model.Order, error)
	MarkSubOrderPaid(ctx context.Context, subOrderID, requesterID string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID, customerID string) (*model.Order, error)
}
