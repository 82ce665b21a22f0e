package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/review"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type reviewUseCase struct {
	repo   review.Repository
	logger logger.ZapLogger
}

func NewReviewUseCase(repo review.Repository, log logger.ZapLogger) review.UseCase {
	return &reviewUseCase{repo: repo, logger: log}
}

func (uc *reviewUseCase) CreateReview(ctx context.Context, customerID, productID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be 1-5: %w", errs.ErrValidation)
	}

	bought, err := uc.repo.HasDeliveredProduct(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, fmt.Errorf("only verified buyers may review: %w", errs.ErrUnauthorized)
	}

	existing, err := uc.repo.GetByCustomerProduct(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("product already reviewed: %w", errs.ErrConflict)
	}

	now := time.Now()
	rev := &model.Review{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
	}
	if comment != "" {
		rev.Comment = &comment
	}

	if err := uc.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (uc *reviewUseCase) ListProductReviews(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error) {
	return uc.repo.ListByProduct(ctx, productID, page, pageSize)
}
