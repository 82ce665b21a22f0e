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

const insertSubOrderQuery = `
    INSERT INTO sub_orders (
        id, order_id, retailer_id, status, payment_status,
        subtotal_before_discounts, subtotal_after_discounts,
        discount_share, total_amount, estimated_delivery_mins,
        created_at, updated_at
    )
    VALUES (
        :id, :order_id, :retailer_id, :status, :payment_status,
        :subtotal_before_discounts, :subtotal_after_discounts,
        :discount_share, :total_amount, :estimated_delivery_mins,
        :created_at, :updated_at
    )`

const insertItemQuery = `
    INSERT INTO order_items (
        id, sub_order_id, product_id, inventory_id, product_name,
        quantity, unit_price, original_price, subtotal, discount_share
    )
    VALUES (
        :id, :sub_order_id, :product_id, :inventory_id, :product_name,
        :quantity, :unit_price, :original_price, :subtotal, :discount_share
    )`

const insertHistoryQuery = `
    INSERT INTO sub_order_status_history (id, sub_order_id, status, note, created_at)
    VALUES (:id, :sub_order_id, :status, :note, :created_at)`

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders (
            id, customer_id, delivery_address, notes, total_amount,
            status, payment_status,
            subtotal_before_discounts, subtotal_after_discounts,
            product_discount_savings, tier_discount_amount, code_discount_amount,
            applied_discount_type, applied_code_id,
            created_at, updated_at
        )
        VALUES (
            :id, :customer_id, :delivery_address, :notes, :total_amount,
            :status, :payment_status,
            :subtotal_before_discounts, :subtotal_after_discounts,
            :product_discount_savings, :tier_discount_amount, :code_discount_amount,
            :applied_discount_type, :applied_code_id,
            :created_at, :updated_at
        )`, o)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.SubOrders {
		sub := &o.SubOrders[i]
		if _, err := tx.NamedExecContext(ctx, insertSubOrderQuery, sub); err != nil {
			return fmt.Errorf("insert sub-order %s: %w", sub.ID, err)
		}
		for j := range sub.Items {
			if _, err := tx.NamedExecContext(ctx, insertItemQuery, &sub.Items[j]); err != nil {
				return fmt.Errorf("insert item for %s: %w", sub.ID, err)
			}
		}
		for j := range sub.History {
			if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, &sub.History[j]); err != nil {
				return fmt.Errorf("insert history for %s: %w", sub.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.loadSubOrders(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) loadSubOrders(ctx context.Context, o *model.Order) error {
	err := r.DB.SelectContext(ctx, &o.SubOrders,
		`SELECT * FROM sub_orders WHERE order_id = $1 ORDER BY id ASC`, o.ID)
	if err != nil {
		return err
	}

	for i := range o.SubOrders {
		sub := &o.SubOrders[i]
		if err := r.DB.SelectContext(ctx, &sub.Items,
			`SELECT * FROM order_items WHERE sub_order_id = $1`, sub.ID); err != nil {
			return err
		}
		if err := r.DB.SelectContext(ctx, &sub.History,
			`SELECT * FROM sub_order_status_history WHERE sub_order_id = $1 ORDER BY created_at ASC`, sub.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) GetSubOrder(ctx context.Context, subOrderID string) (*model.SubOrder, error) {
	var sub model.SubOrder
	err := r.DB.GetContext(ctx, &sub, `SELECT * FROM sub_orders WHERE id = $1`, subOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &sub.Items,
		`SELECT * FROM order_items WHERE sub_order_id = $1`, sub.ID); err != nil {
		return nil, err
	}
	if err := r.DB.SelectContext(ctx, &sub.History,
		`SELECT * FROM sub_order_status_history WHERE sub_order_id = $1 ORDER BY created_at ASC`, sub.ID); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *PGRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]model.Order, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var orders []model.Order
	if err := r.DB.SelectContext(ctx, &orders, query, customerID); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.loadSubOrders(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, count, nil
}

func (r *PGRepository) ListSubOrdersByRetailer(ctx context.Context, retailerID string, page, pageSize int) ([]model.SubOrder, int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM sub_orders WHERE retailer_id = $1`, retailerID); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM sub_orders WHERE retailer_id = $1 ORDER BY created_at DESC`
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var subs []model.SubOrder
	if err := r.DB.SelectContext(ctx, &subs, query, retailerID); err != nil {
		return nil, 0, err
	}

	for i := range subs {
		if err := r.DB.SelectContext(ctx, &subs[i].Items,
			`SELECT * FROM order_items WHERE sub_order_id = $1`, subs[i].ID); err != nil {
			return nil, 0, err
		}
	}
	return subs, count, nil
}

func (r *PGRepository) SaveSubOrderTransition(ctx context.Context, sub *model.SubOrder, entry *model.SubOrderStatus, masterStatus model.OrderStatus, masterPayment model.PaymentStatus) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        UPDATE sub_orders SET
            status = :status,
            payment_status = :payment_status,
            updated_at = :updated_at
        WHERE id = :id`, sub)
	if err != nil {
		return fmt.Errorf("update sub-order %s: %w", sub.ID, err)
	}

	if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, entry); err != nil {
		return fmt.Errorf("insert history for %s: %w", sub.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $2, payment_status = $3, updated_at = now() WHERE id = $1`,
		sub.OrderID, masterStatus, masterPayment)
	if err != nil {
		return fmt.Errorf("update master %s: %w", sub.OrderID, err)
	}

	return tx.Commit()
}

func (r *PGRepository) SaveCancellation(ctx context.Context, o *model.Order, entries []model.SubOrderStatus) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range o.SubOrders {
		if _, err := tx.NamedExecContext(ctx, `
            UPDATE sub_orders SET
                status = :status,
                payment_status = :payment_status,
                updated_at = :updated_at
            WHERE id = :id`, &o.SubOrders[i]); err != nil {
			return fmt.Errorf("update sub-order %s: %w", o.SubOrders[i].ID, err)
		}
	}

	for i := range entries {
		if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, &entries[i]); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $2, payment_status = $3, updated_at = now() WHERE id = $1`,
		o.ID, o.Status, o.PaymentStatus)
	if err != nil {
		return fmt.Errorf("update master %s: %w", o.ID, err)
	}

	return tx.Commit()
}

func (r *PGRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
