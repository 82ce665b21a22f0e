package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/discount"
	"github.com/freshkart/freshkart-api/internal/discount/dto"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type discountUseCase struct {
	repo   discount.Repository
	logger logger.ZapLogger
}

func NewDiscountUseCase(repo discount.Repository, log logger.ZapLogger) discount.UseCase {
	return &discountUseCase{repo: repo, logger: log}
}

func (uc *discountUseCase) CalculateBestDiscount(ctx context.Context, customerID string, subtotal float64, codeID *string) (*discount.Quote, error) {
	delivered, err := uc.repo.CountDeliveredOrders(ctx, customerID)
	if err != nil {
		return nil, err
	}
	tier, tierPct := discount.TierFor(delivered)

	codePct := 0.0
	if codeID != nil && *codeID != "" {
		pct, err := uc.validateCode(ctx, *codeID, customerID, subtotal)
		if err != nil {
			return nil, err
		}
		codePct = pct
	}

	q := discount.Resolve(tier, tierPct, subtotal, codePct, codeID)
	uc.logger.Debug("discount resolved",
		zap.String("customer_id", customerID),
		zap.String("tier", string(tier)),
		zap.Float64("tier_discount", q.TierDiscount),
		zap.Float64("code_discount", q.CodeDiscount),
		zap.String("applied", string(q.DiscountType)))
	return &q, nil
}

func (uc *discountUseCase) validateCode(ctx context.Context, codeID, customerID string, subtotal float64) (float64, error) {
	code, err := uc.repo.GetCode(ctx, codeID)
	if err != nil {
		return 0, err
	}
	if code == nil {
		return 0, fmt.Errorf("code %s not found: %w", codeID, errs.ErrDiscountCodeInvalid)
	}

	now := time.Now()
	switch {
	case !code.IsActive:
		return 0, fmt.Errorf("code %s is inactive: %w", code.Code, errs.ErrDiscountCodeInvalid)
	case now.Before(code.ValidFrom) || now.After(code.ValidUntil):
		return 0, fmt.Errorf("code %s is outside its validity window: %w", code.Code, errs.ErrDiscountCodeInvalid)
	case subtotal < code.MinPurchase:
		return 0, fmt.Errorf("code %s requires a minimum purchase of %.2f: %w", code.Code, code.MinPurchase, errs.ErrDiscountCodeInvalid)
	case code.MaxUsesTotal > 0 && code.TimesUsed >= code.MaxUsesTotal:
		return 0, fmt.Errorf("code %s usage limit reached: %w", code.Code, errs.ErrDiscountCodeInvalid)
	}

	if code.MaxUsesPerUser > 0 {
		used, err := uc.repo.CountUsesByUser(ctx, code.ID, customerID)
		if err != nil {
			return 0, err
		}
		if used >= code.MaxUsesPerUser {
			return 0, fmt.Errorf("code %s already used by customer: %w", code.Code, errs.ErrDiscountCodeInvalid)
		}
	}

	return code.Percentage, nil
}

func (uc *discountUseCase) RecordUsage(ctx context.Context, codeID, customerID, orderID string) error {
	return uc.repo.RecordUsage(ctx, &model.DiscountCodeUsage{
		ID:         uuid.New().String(),
		CodeID:     codeID,
		CustomerID: customerID,
		OrderID:    orderID,
		UsedAt:     time.Now(),
	})
}

func (uc *discountUseCase) CreateCode(ctx context.Context, input *dto.CreateCodeInput) (*model.DiscountCodeEntity, error) {
	if input.Code == "" || input.Percentage <= 0 || input.Percentage > 100 {
		return nil, fmt.Errorf("code and percentage (0-100] are required: %w", errs.ErrValidation)
	}
	if !input.ValidUntil.After(input.ValidFrom) {
		return nil, fmt.Errorf("valid_until must be after valid_from: %w", errs.ErrValidation)
	}

	existing, err := uc.repo.GetCodeByCode(ctx, strings.ToUpper(input.Code))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("code %s already exists: %w", input.Code, errs.ErrConflict)
	}

	now := time.Now()
	desc := input.Description
	code := &model.DiscountCodeEntity{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Code:           strings.ToUpper(input.Code),
		Description:    &desc,
		Percentage:     input.Percentage,
		MinPurchase:    input.MinPurchase,
		ValidFrom:      input.ValidFrom,
		ValidUntil:     input.ValidUntil,
		MaxUsesTotal:   input.MaxUsesTotal,
		MaxUsesPerUser: input.MaxUsesPerUser,
		IsActive:       true,
	}

	if err := uc.repo.CreateCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

func (uc *discountUseCase) UpdateCode(ctx context.Context, input *dto.UpdateCodeInput) (*model.DiscountCodeEntity, error) {
	code, err := uc.repo.GetCode(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, fmt.Errorf("code %s: %w", input.ID, errs.ErrNotFound)
	}

	if input.Description != nil {
		code.Description = input.Description
	}
	if input.Percentage != nil {
		if *input.Percentage <= 0 || *input.Percentage > 100 {
			return nil, fmt.Errorf("percentage must be (0-100]: %w", errs.ErrValidation)
		}
		code.Percentage = *input.Percentage
	}
	if input.MinPurchase != nil {
		code.MinPurchase = *input.MinPurchase
	}
	if input.ValidUntil != nil {
		code.ValidUntil = *input.ValidUntil
	}
	if input.MaxUsesTotal != nil {
		code.MaxUsesTotal = *input.MaxUsesTotal
	}
	if input.MaxUsesPerUser != nil {
		code.MaxUsesPerUser = *input.MaxUsesPerUser
	}
	if input.IsActive != nil {
		code.IsActive = *input.IsActive
	}
	code.UpdatedAt = time.Now()

	if err := uc.repo.UpdateCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

func (uc *discountUseCase) ListCodes(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.DiscountCodeEntity, int, error) {
	return uc.repo.ListCodes(ctx, activeOnly, page, pageSize)
}
