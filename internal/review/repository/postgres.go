package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/freshkart/freshkart-api/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, rev *model.Review) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO reviews (id, product_id, customer_id, rating, comment, created_at, updated_at)
        VALUES (:id, :product_id, :customer_id, :rating, :comment, :created_at, :updated_at)`, rev)
	return err
}

func (r *PGRepository) GetByCustomerProduct(ctx context.Context, customerID, productID string) (*model.Review, error) {
	var rev model.Review
	err := r.DB.GetContext(ctx, &rev,
		`SELECT * FROM reviews WHERE customer_id = $1 AND product_id = $2`, customerID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *PGRepository) ListByProduct(ctx context.Context, productID string, page, pageSize int) ([]model.Review, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM reviews WHERE product_id = $1`, productID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var items []model.Review
	err := r.DB.SelectContext(ctx, &items, query, productID)
	return items, count, err
}

func (r *PGRepository) HasDeliveredProduct(ctx context.Context, customerID, productID string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `
        SELECT count(*)
        FROM order_items oi
        JOIN sub_orders so ON so.id = oi.sub_order_id
        JOIN orders o ON o.id = so.order_id
        WHERE o.customer_id = $1
          AND oi.product_id = $2
          AND so.status = $3`,
		customerID, productID, model.OrderDelivered)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
