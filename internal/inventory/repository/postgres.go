package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/freshkart/freshkart-api/internal/errs"
	"github.com/freshkart/freshkart-api/internal/inventory/dto"
	"github.com/freshkart/freshkart-api/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.DB.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) GetBySellerProduct(ctx context.Context, sellerID, productID string) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.DB.GetContext(ctx, &inv,
		`SELECT * FROM inventory WHERE seller_id = $1 AND product_id = $2`, sellerID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindRetailerOffers(ctx context.Context, productID string) ([]model.Inventory, error) {
	var items []model.Inventory
	err := r.DB.SelectContext(ctx, &items, `
        SELECT i.* FROM inventory i
        JOIN products p ON p.id = i.product_id
        WHERE i.product_id = $1
          AND i.seller_role = $2
          AND i.is_active = true
          AND p.is_active = true
        ORDER BY i.price ASC, i.id ASC`,
		productID, model.RoleRetailer)
	return items, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	var items []model.Inventory
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SellerID != "" {
		conditions = append(conditions, "seller_id = :seller_id")
		args["seller_id"] = f.SellerID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.LowStock {
		conditions = append(conditions, "current_stock - reserved_stock <= 5")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory" + whereClause + " ORDER BY updated_at DESC"
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

func (r *PGRepository) Upsert(ctx context.Context, inv *model.Inventory) error {
	query := `
        INSERT INTO inventory (
            id, seller_id, seller_role, product_id,
            current_stock, reserved_stock, price, is_active,
            discount_pct, discount_valid_until, discount_is_active, discount_reason,
            updated_at
        )
        VALUES (
            :id, :seller_id, :seller_role, :product_id,
            :current_stock, :reserved_stock, :price, :is_active,
            :discount_pct, :discount_valid_until, :discount_is_active, :discount_reason,
            :updated_at
        )
        ON CONFLICT (seller_id, product_id)
        DO UPDATE SET
            current_stock = EXCLUDED.current_stock,
            price = EXCLUDED.price,
            is_active = EXCLUDED.is_active,
            discount_pct = EXCLUDED.discount_pct,
            discount_valid_until = EXCLUDED.discount_valid_until,
            discount_is_active = EXCLUDED.discount_is_active,
            discount_reason = EXCLUDED.discount_reason,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.DB.NamedExecContext(ctx, query, inv)
	return err
}

// Reserve moves qty into reserved_stock, guarded so the available stock can
// never go negative. Movement row is written in the same transaction.
func (r *PGRepository) Reserve(ctx context.Context, id string, qty int, movement *model.StockMovement) error {
	return r.guardedUpdate(ctx, id, movement, `
        UPDATE inventory
        SET reserved_stock = reserved_stock + $2, updated_at = now()
        WHERE id = $1 AND current_stock - reserved_stock >= $2`, qty,
		errs.ErrInsufficientStock)
}

// Release returns qty from reserved_stock to available.
func (r *PGRepository) Release(ctx context.Context, id string, qty int, movement *model.StockMovement) error {
	return r.guardedUpdate(ctx, id, movement, `
        UPDATE inventory
        SET reserved_stock = reserved_stock - $2, updated_at = now()
        WHERE id = $1 AND reserved_stock >= $2`, qty,
		errs.ErrConflict)
}

// Confirm removes qty from both current and reserved stock: the sale is final.
func (r *PGRepository) Confirm(ctx context.Context, id string, qty int, movement *model.StockMovement) error {
	return r.guardedUpdate(ctx, id, movement, `
        UPDATE inventory
        SET current_stock = current_stock - $2,
            reserved_stock = reserved_stock - $2,
            updated_at = now()
        WHERE id = $1 AND reserved_stock >= $2 AND current_stock >= $2`, qty,
		errs.ErrConflict)
}

func (r *PGRepository) guardedUpdate(ctx context.Context, id string, movement *model.StockMovement, query string, qty int, guardErr error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, id, qty)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("inventory %s qty %d: %w", id, qty, guardErr)
	}

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO stock_movements (
            id, inventory_id, seller_id, product_id,
            movement_type, quantity_change, reference_type, reference_id,
            notes, created_at
        )
        VALUES (
            :id, :inventory_id, :seller_id, :product_id,
            :movement_type, :quantity_change, :reference_type, :reference_id,
            :notes, :created_at
        )`, movement)
	if err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SellerID != "" {
		conditions = append(conditions, "seller_id = :seller_id")
		args["seller_id"] = f.SellerID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.InventoryID != "" {
		conditions = append(conditions, "inventory_id = :inventory_id")
		args["inventory_id"] = f.InventoryID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
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
