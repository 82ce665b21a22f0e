package model

import "time"

// Inventory is one seller's offer of one product: stock, price and an
// optional seller-set promotional discount.
type Inventory struct {
	ID            string    `db:"id" json:"id"`
	SellerID      string    `db:"seller_id" json:"seller_id"`
	SellerRole    Role      `db:"seller_role" json:"seller_role"`
	ProductID     string    `db:"product_id" json:"product_id"`
	CurrentStock  int       `db:"current_stock" json:"current_stock"`
	ReservedStock int       `db:"reserved_stock" json:"reserved_stock"`
	Price         float64   `db:"price" json:"price"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	DiscountPct        *float64   `db:"discount_pct" json:"discount_pct"`
	DiscountValidUntil *time.Time `db:"discount_valid_until" json:"discount_valid_until"`
	DiscountIsActive   bool       `db:"discount_is_active" json:"discount_is_active"`
	DiscountReason     *string    `db:"discount_reason" json:"discount_reason"`
}

func (i *Inventory) Available() int { return i.CurrentStock - i.ReservedStock }

// HasActiveDiscount uses a strict comparison: a discount whose valid_until
// equals now is already expired.
func (i *Inventory) HasActiveDiscount(now time.Time) bool {
	return i.DiscountIsActive && i.DiscountPct != nil && *i.DiscountPct > 0 &&
		i.DiscountValidUntil != nil && i.DiscountValidUntil.After(now)
}

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	InventoryID    string    `db:"inventory_id" json:"inventory_id"`
	SellerID       string    `db:"seller_id" json:"seller_id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"` // reserve, release, confirm, adjustment
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
