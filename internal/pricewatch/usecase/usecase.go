package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/internal/pricewatch"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type priceWatchUseCase struct {
	repo   pricewatch.Repository
	logger logger.ZapLogger
}

func NewPriceWatchUseCase(repo pricewatch.Repository, log logger.ZapLogger) pricewatch.UseCase {
	return &priceWatchUseCase{repo: repo, logger: log}
}

func (uc *priceWatchUseCase) CreateAlert(ctx context.Context, customerID, productID string, targetPrice float64) (*model.PriceAlert, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required: %w", errs.ErrValidation)
	}
	if targetPrice <= 0 {
		return nil, fmt.Errorf("target price must be positive: %w", errs.ErrValidation)
	}

	alert := &model.PriceAlert{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ProductID:   productID,
		TargetPrice: targetPrice,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (uc *priceWatchUseCase) ListAlerts(ctx context.Context, customerID string) ([]model.PriceAlert, error) {
	return uc.repo.ListByCustomer(ctx, customerID)
}

func (uc *priceWatchUseCase) DeleteAlert(ctx context.Context, customerID, alertID string) error {
	alert, err := uc.repo.GetByID(ctx, alertID)
	if err != nil {
		return err
	}
	if alert.CustomerID != customerID {
		return errs.ErrUnauthorized
	}
	return uc.repo.Deactivate(ctx, alertID)
}
