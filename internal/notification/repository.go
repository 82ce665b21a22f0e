package notification

import (
	"context"

	"github.com/freshkart/freshkart-api/internal/model"
)

type Repository interface {
	Insert(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) ([]model.Notification, int, error)
	MarkRead(ctx context.Context, id, userID string) error
}
