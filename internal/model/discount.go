package model

import "time"

type DiscountCodeEntity struct {
	BaseModel
	Code            string    `db:"code" json:"code"`
	Description     *string   `db:"description" json:"description"`
	Percentage      float64   `db:"percentage" json:"percentage"`
	MinPurchase     float64   `db:"min_purchase" json:"min_purchase"`
	ValidFrom       time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil      time.Time `db:"valid_until" json:"valid_until"`
	MaxUsesTotal    int       `db:"max_uses_total" json:"max_uses_total"`       // 0 = unlimited
	MaxUsesPerUser  int       `db:"max_uses_per_user" json:"max_uses_per_user"` // 0 = unlimited
	TimesUsed       int       `db:"times_used" json:"times_used"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

type DiscountCodeUsage struct {
	ID         string    `db:"id" json:"id"`
	CodeID     string    `db:"code_id" json:"code_id"`
	CustomerID string    `db:"customer_id" json:"customer_id"`
	OrderID    string    `db:"order_id" json:"order_id"`
	UsedAt     time.Time `db:"used_at" json:"used_at"`
}
