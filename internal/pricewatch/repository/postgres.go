package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, alert *model.PriceAlert) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO price_alerts (id, customer_id, product_id, target_price, is_active, triggered_at, created_at)
        VALUES (:id, :customer_id, :product_id, :target_price, :is_active, :triggered_at, :created_at)`, alert)
	return err
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.PriceAlert, error) {
	var alert model.PriceAlert
	err := r.DB.GetContext(ctx, &alert, `SELECT * FROM price_alerts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *PGRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.DB.SelectContext(ctx, &alerts,
		`SELECT * FROM price_alerts WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	return alerts, err
}

func (r *PGRepository) ListActive(ctx context.Context) ([]model.PriceAlert, error) {
	var alerts []model.PriceAlert
	err := r.DB.SelectContext(ctx, &alerts,
		`SELECT * FROM price_alerts WHERE is_active = true ORDER BY created_at`)
	return alerts, err
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE price_alerts SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *PGRepository) MarkTriggered(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE price_alerts SET is_active = false, triggered_at = now() WHERE id = $1`, id)
	return err
}
