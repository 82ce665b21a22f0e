package model

import "time"

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"` // order_placed, order_status, price_alert, ...
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	RefID     *string   `db:"ref_id" json:"ref_id"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
