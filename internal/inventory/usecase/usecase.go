package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/inventory"
	"github.com/freshkart/freshkart-api/internal/inventory/dto"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/cache"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *inventoryUseCase) ResolveRetailerOffer(ctx context.Context, productID string) (*model.Inventory, error) {
	offers, err := uc.repo.FindRetailerOffers(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("product %s has no active retailer offer: %w", productID, errs.ErrProductUnavailable)
	}
	// Repo orders by price ascending; the cheapest offer wins.
	return &offers[0], nil
}

func (uc *inventoryUseCase) Reserve(ctx context.Context, inventoryID string, qty int, referenceID string) error {
	return uc.withLock(ctx, inventoryID, func() error {
		return uc.repo.Reserve(ctx, inventoryID, qty, uc.movement(ctx, inventoryID, "reserve", -qty, referenceID))
	})
}

func (uc *inventoryUseCase) Release(ctx context.Context, inventoryID string, qty int, referenceID string) error {
	return uc.withLock(ctx, inventoryID, func() error {
		return uc.repo.Release(ctx, inventoryID, qty, uc.movement(ctx, inventoryID, "release", qty, referenceID))
	})
}

func (uc *inventoryUseCase) Confirm(ctx context.Context, inventoryID string, qty int, referenceID string) error {
	return uc.withLock(ctx, inventoryID, func() error {
		return uc.repo.Confirm(ctx, inventoryID, qty, uc.movement(ctx, inventoryID, "confirm", -qty, referenceID))
	})
}

// withLock serializes stock mutations per inventory row across instances.
// The SQL guards remain the source of truth; the lock just shortens the race
// window and keeps movement ordering sane.
func (uc *inventoryUseCase) withLock(ctx context.Context, inventoryID string, fn func() error) error {
	lockKey := "lock:inventory:" + inventoryID
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return fmt.Errorf("inventory %s is busy: %w", inventoryID, errs.ErrConflict)
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	return fn()
}

func (uc *inventoryUseCase) movement(ctx context.Context, inventoryID, movementType string, change int, referenceID string) *model.StockMovement {
	var refID, refType *string
	if referenceID != "" {
		refID = &referenceID
		t := "order"
		refType = &t
	}

	m := &model.StockMovement{
		ID:             uuid.New().String(),
		InventoryID:    inventoryID,
		MovementType:   movementType,
		QuantityChange: change,
		ReferenceType:  refType,
		ReferenceID:    refID,
		CreatedAt:      time.Now(),
	}

	// Seller and product are denormalized onto the movement for querying.
	if inv, err := uc.repo.GetByID(ctx, inventoryID); err == nil && inv != nil {
		m.SellerID = inv.SellerID
		m.ProductID = inv.ProductID
	}
	return m
}

func (uc *inventoryUseCase) UpsertOffer(ctx context.Context, input *dto.UpsertOfferInput) (*model.Inventory, error) {
	if input.Price <= 0 || input.CurrentStock < 0 {
		return nil, fmt.Errorf("price and stock must be non-negative: %w", errs.ErrValidation)
	}

	now := time.Now()
	inv, err := uc.repo.GetBySellerProduct(ctx, input.SellerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &model.Inventory{
			ID:         uuid.New().String(),
			SellerID:   input.SellerID,
			SellerRole: model.Role(input.SellerRole),
			ProductID:  input.ProductID,
		}
	}
	if input.CurrentStock < inv.ReservedStock {
		return nil, fmt.Errorf("stock cannot drop below reserved %d: %w", inv.ReservedStock, errs.ErrConflict)
	}

	inv.CurrentStock = input.CurrentStock
	inv.Price = input.Price
	inv.IsActive = input.IsActive
	inv.UpdatedAt = now

	if err := uc.repo.Upsert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (uc *inventoryUseCase) SetDiscount(ctx context.Context, input *dto.SetDiscountInput) (*model.Inventory, error) {
	if input.Percentage < 0 || input.Percentage > 100 {
		return nil, fmt.Errorf("percentage must be 0-100: %w", errs.ErrValidation)
	}

	inv, err := uc.repo.GetBySellerProduct(ctx, input.SellerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("no offer for product %s: %w", input.ProductID, errs.ErrNotFound)
	}

	pct := input.Percentage
	validUntil := input.ValidUntil
	reason := input.Reason
	inv.DiscountPct = &pct
	inv.DiscountValidUntil = &validUntil
	inv.DiscountIsActive = input.IsActive
	inv.DiscountReason = &reason
	inv.UpdatedAt = time.Now()

	if err := uc.repo.Upsert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (uc *inventoryUseCase) ListSellerInventory(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error) {
	if filters.SellerID == "" {
		return nil, 0, errors.New("seller id is required")
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
