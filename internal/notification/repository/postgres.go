package repository

import (
	"context"
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

func (r *PGRepository) Insert(ctx context.Context, n *model.Notification) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO notifications (id, user_id, kind, title, body, ref_id, is_read, created_at)
        VALUES (:id, :user_id, :kind, :title, :body, :ref_id, :is_read, :created_at)`, n)
	return err
}

func (r *PGRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) ([]model.Notification, int, error) {
	whereClause := " WHERE user_id = $1"
	if unreadOnly {
		whereClause += " AND is_read = false"
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM notifications"+whereClause, userID); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM notifications" + whereClause + " ORDER BY created_at DESC"
	if pageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var items []model.Notification
	err := r.DB.SelectContext(ctx, &items, query, userID)
	return items, count, err
}

func (r *PGRepository) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
