package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/freshkart/freshkart-api/internal/cart"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/cache"
	"github.com/freshkart/freshkart-api/pkg/logger"
)

// Idle carts expire after a week.
const cartTTL = 7 * 24 * time.Hour

type cartUseCase struct {
	cache   *cache.RedisClient
	catalog cart.ProductChecker
	logger  logger.ZapLogger
}

func NewCartUseCase(cache *cache.RedisClient, catalog cart.ProductChecker, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{cache: cache, catalog: catalog, logger: log}
}

func cartKey(customerID string) string { return "cart:" + customerID }

func (uc *cartUseCase) AddItem(ctx context.Context, customerID, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", errs.ErrValidation)
	}

	p, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.IsActive {
		return fmt.Errorf("product %s: %w", productID, errs.ErrProductUnavailable)
	}

	key := cartKey(customerID)
	if err := uc.cache.Client.HIncrBy(ctx, key, productID, int64(quantity)).Err(); err != nil {
		return err
	}
	return uc.cache.Client.Expire(ctx, key, cartTTL).Err()
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, customerID, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1; remove the item instead: %w", errs.ErrValidation)
	}

	key := cartKey(customerID)
	exists, err := uc.cache.Client.HExists(ctx, key, productID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("product %s not in cart: %w", productID, errs.ErrNotFound)
	}

	if err := uc.cache.Client.HSet(ctx, key, productID, quantity).Err(); err != nil {
		return err
	}
	return uc.cache.Client.Expire(ctx, key, cartTTL).Err()
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, customerID, productID string) error {
	return uc.cache.Client.HDel(ctx, cartKey(customerID), productID).Err()
}

func (uc *cartUseCase) Get(ctx context.Context, customerID string) ([]model.CartItem, error) {
	entries, err := uc.cache.Client.HGetAll(ctx, cartKey(customerID)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]model.CartItem, 0, len(entries))
	for productID, qty := range entries {
		n, err := strconv.Atoi(qty)
		if err != nil || n < 1 {
			continue
		}
		items = append(items, model.CartItem{ProductID: productID, Quantity: n})
	}
	return items, nil
}

func (uc *cartUseCase) Clear(ctx context.Context, customerID string) error {
	return uc.cache.Client.Del(ctx, cartKey(customerID)).Err()
}
