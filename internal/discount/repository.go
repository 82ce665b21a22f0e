package discount

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	GetCode(ctx context.Context, id string) (*model.DiscountCodeEntity, error)
	GetCodeByCode(ctx context.Context, code string) (*model.DiscountCodeEntity, error)
	ListCodes(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.DiscountCodeEntity, int, error)
	CreateCode(ctx context.Context, code *model.DiscountCodeEntity) error
	UpdateCode(ctx context.Context, code *model.DiscountCodeEntity) error

	// CountDeliveredOrders is the loyalty signal: completed orders only.
	CountDeliveredOrders(ctx context.Context, customerID string) (int, error)
	CountUsesByUser(ctx context.Context, codeID, customerID string) (int, error)

	// RecordUsage inserts the usage row and bumps times_used atomically.
	RecordUsage(ctx context.Context, usage *model.DiscountCodeUsage) error
}
