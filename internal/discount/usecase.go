package discount

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/discount/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type UseCase interface {
	// CalculateBestDiscount resolves the single order-level discount from the
	// customer's loyalty tier and an optional code, on the post
	// product-discount subtotal. Code validation failures surface as
	// errs.ErrDiscountCodeInvalid.
	CalculateBestDiscount(ctx context.Context, customerID string, subtotal float64, codeID *string) (*Quote, error)

	// RecordUsage is called after the order is persisted, never before.
	RecordUsage(ctx context.Context, codeID, customerID, orderID string) error

	CreateCode(ctx context.Context, input *dto.CreateCodeInput) (*model.DiscountCodeEntity, error)
	UpdateCode(ctx context.Context, input *dto.UpdateCodeInput) (*model.DiscountCodeEntity, error)
	ListCodes(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.DiscountCodeEntity, int, error)
}
