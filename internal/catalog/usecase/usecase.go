package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshkart/freshkart-api/internal/catalog"
	"github.com/freshkart/freshkart-api/internal/catalog/dto"
	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
	"github.com/freshkart/freshkart-api/pkg/cache"
	"github.com/freshkart/freshkart-api/pkg/logger"
	"github.com/freshkart/freshkart-api/pkg/search"
)

const listCacheTTL = 5 * time.Minute

type catalogUseCase struct {
	repo    catalog.Repository
	cache   *cache.RedisClient
	es      *search.Client
	esIndex string
	logger  logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, es *search.Client, esIndex string, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:    repo,
		cache:   cache,
		es:      es,
		esIndex: esIndex,
		logger:  log,
	}
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, errs.ErrProductUnavailable)
	}
	return p, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)

	var cached struct {
		Products []model.Product
		Count    int
	}
	if hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached.Products, cached.Count, nil
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	cached.Products = products
	cached.Count = count
	if err := uc.cache.SetJSON(ctx, cacheKey, cached, listCacheTTL); err != nil {
		uc.logger.Warn("failed to cache product list", zap.Error(err))
	}

	return products, count, nil
}

func (uc *catalogUseCase) listCacheKey(filters *dto.ProductFilters) string {
	raw, _ := json.Marshal(filters)
	return fmt.Sprintf("cache:products:%x", md5.Sum(raw))
}

func (uc *catalogUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.DeleteByPattern(ctx, "cache:products:*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *catalogUseCase) SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if uc.es == nil {
		return uc.repo.SearchByName(ctx, query, limit)
	}

	body := fmt.Sprintf(`{
		"size": %d,
		"query": {
			"multi_match": {
				"query": %q,
				"fields": ["name^2", "description"],
				"fuzziness": "AUTO"
			}
		}
	}`, limit, query)

	hits, err := uc.es.Search(ctx, uc.esIndex, body)
	if err != nil {
		uc.logger.Warn("elasticsearch search failed, falling back to SQL", zap.Error(err))
		return uc.repo.SearchByName(ctx, query, limit)
	}

	products := make([]model.Product, 0, len(hits))
	for _, h := range hits {
		var p model.Product
		if err := json.Unmarshal(h, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.Name == "" || input.Unit == "" {
		return nil, fmt.Errorf("name and unit are required: %w", errs.ErrValidation)
	}

	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Unit:      input.Unit,
		IsActive:  true,
	}
	if input.CategoryID != "" {
		p.CategoryID = &input.CategoryID
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.ImageURL != "" {
		p.ImageURL = &input.ImageURL
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", input.ID, errs.ErrProductUnavailable)
	}

	if input.CategoryID != nil {
		p.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = input.Description
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

const productMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"unit": { "type": "keyword" },
			"category_id": { "type": "keyword" },
			"is_active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

func (uc *catalogUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, uc.esIndex, productMapping)
	if err := uc.es.Index(ctx, uc.esIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.ListCategories(ctx)
}

func (uc *catalogUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", errs.ErrValidation)
	}

	now := time.Now()
	c := &model.Category{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if input.ParentID != "" {
		c.ParentID = &input.ParentID
	}
	if input.Description != "" {
		c.Description = &input.Description
	}

	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
