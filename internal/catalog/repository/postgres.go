package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/freshkart/freshkart-api/internal/catalog/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// Review aggregate rides along on single-product reads.
	var agg struct {
		Avg   sql.NullFloat64 `db:"avg"`
		Count int             `db:"count"`
	}
	err = r.DB.GetContext(ctx, &agg,
		`SELECT avg(rating) AS avg, count(*) AS count FROM reviews WHERE product_id = $1`, id)
	if err == nil {
		p.AvgRating = agg.Avg.Float64
		p.ReviewCount = agg.Count
	}

	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var items []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO products (
            id, category_id, name, description, unit, image_url, is_active,
            created_at, updated_at
        )
        VALUES (
            :id, :category_id, :name, :description, :unit, :image_url, :is_active,
            :created_at, :updated_at
        )`, p)
	return err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, `
        UPDATE products SET
            category_id = :category_id,
            name = :name,
            description = :description,
            unit = :unit,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id`, p)
	return err
}

func (r *PGRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.Product, error) {
	var items []model.Product
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM products
        WHERE is_active = true AND (name ILIKE $1 OR description ILIKE $1)
        ORDER BY name ASC
        LIMIT $2`, "%"+query+"%", limit)
	return items, err
}

func (r *PGRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM categories WHERE is_active = true ORDER BY sort_order ASC, name ASC`)
	return items, err
}

func (r *PGRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO categories (
            id, parent_id, name, description, sort_order, is_active,
            created_at, updated_at
        )
        VALUES (
            :id, :parent_id, :name, :description, :sort_order, :is_active,
            :created_at, :updated_at
        )`, c)
	return err
}
