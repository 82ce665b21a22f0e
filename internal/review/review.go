package review

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	Create(ctx context.Context, rev *model.Review) error
	GetByCustomerProduct(ctx context.Context, customerID, productID string) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error)

	// HasDeliveredProduct reports whether the customer received the product
	// in a delivered sub-order; only verified buyers may review.
	HasDeliveredProduct(ctx context.Context, customerID, productID string) (bool, error)
}

type UseCase interface {
	CreateReview(ctx context.Context, customerID, productID string, rating int, comment string) (*model.Review, error)
	ListProductReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error)
}
