package catalog

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/catalog/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error

	// SearchByName is the SQL fallback when Elasticsearch is unavailable.
	SearchByName(ctx context.Context, query string, limit int) ([]model.Product, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
}
