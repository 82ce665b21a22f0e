package model

import "time"

type PriceAlert struct {
	ID          string     `db:"id" json:"id"`
	CustomerID  string     `db:"customer_id" json:"customer_id"`
	ProductID   string     `db:"product_id" json:"product_id"`
	TargetPrice float64    `db:"target_price" json:"target_price"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	TriggeredAt *time.Time `db:"triggered_at" json:"triggered_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
