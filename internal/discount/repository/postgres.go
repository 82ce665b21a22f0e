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

func (r *PGRepository) GetCode(ctx context.Context, id string) (*model.DiscountCodeEntity, error) {
	var code model.DiscountCodeEntity
	err := r.DB.GetContext(ctx, &code, `SELECT * FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (r *PGRepository) GetCodeByCode(ctx context.Context, codeStr string) (*model.DiscountCodeEntity, error) {
	var code model.DiscountCodeEntity
	err := r.DB.GetContext(ctx, &code, `SELECT * FROM discount_codes WHERE code = $1`, codeStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (r *PGRepository) ListCodes(ctx context.Context, activeOnly bool, page, pageSize int) ([]model.DiscountCodeEntity, int, error) {
	whereClause := ""
	if activeOnly {
		whereClause = " WHERE is_active = true AND valid_until > now()"
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM discount_codes"+whereClause); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM discount_codes" + whereClause + " ORDER BY created_at DESC"
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var items []model.DiscountCodeEntity
	err := r.DB.SelectContext(ctx, &items, query)
	return items, count, err
}

func (r *PGRepository) CreateCode(ctx context.Context, code *model.DiscountCodeEntity) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO discount_codes (
            id, code, description, percentage, min_purchase,
            valid_from, valid_until, max_uses_total, max_uses_per_user,
            times_used, is_active, created_at, updated_at
        )
        VALUES (
            :id, :code, :description, :percentage, :min_purchase,
            :valid_from, :valid_until, :max_uses_total, :max_uses_per_user,
            :times_used, :is_active, :created_at, :updated_at
        )`, code)
	return err
}

func (r *PGRepository) UpdateCode(ctx context.Context, code *model.DiscountCodeEntity) error {
	_, err := r.DB.NamedExecContext(ctx, `
        UPDATE discount_codes SET
            description = :description,
            percentage = :percentage,
            min_purchase = :min_purchase,
            valid_until = :valid_until,
            max_uses_total = :max_uses_total,
            max_uses_per_user = :max_uses_per_user,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id`, code)
	return err
}

func (r *PGRepository) CountDeliveredOrders(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE customer_id = $1 AND status = $2`,
		customerID, model.OrderDelivered)
	return count, err
}

func (r *PGRepository) CountUsesByUser(ctx context.Context, codeID, customerID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM discount_code_usages WHERE code_id = $1 AND customer_id = $2`,
		codeID, customerID)
	return count, err
}

func (r *PGRepository) RecordUsage(ctx context.Context, usage *model.DiscountCodeUsage) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO discount_code_usages (id, code_id, customer_id, order_id, used_at)
        VALUES (:id, :code_id, :customer_id, :order_id, :used_at)`, usage)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE discount_codes SET times_used = times_used + 1, updated_at = now() WHERE id = $1`,
		usage.CodeID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
