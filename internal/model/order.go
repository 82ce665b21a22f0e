package model

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
)

type DiscountType string

const (
	DiscountNone DiscountType = "NONE"
	DiscountTier DiscountType = "TIER"
	DiscountCode DiscountType = "CODE"
)

// Order is the customer-facing master record of one checkout. Status and
// payment status are derived from the sub-orders, never authored directly.
type Order struct {
	BaseModel
	CustomerID      string        `db:"customer_id" json:"customer_id"`
	DeliveryAddress string        `db:"delivery_address" json:"delivery_address"`
	Notes           *string       `db:"notes" json:"notes"`
	TotalAmount     float64       `db:"total_amount" json:"total_amount"`
	Status          OrderStatus   `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`

	SubtotalBeforeDiscounts float64      `db:"subtotal_before_discounts" json:"subtotal_before_discounts"`
	SubtotalAfterDiscounts  float64      `db:"subtotal_after_discounts" json:"subtotal_after_discounts"`
	ProductDiscountSavings  float64      `db:"product_discount_savings" json:"product_discount_savings"`
	TierDiscountAmount      float64      `db:"tier_discount_amount" json:"tier_discount_amount"`
	CodeDiscountAmount      float64      `db:"code_discount_amount" json:"code_discount_amount"`
	AppliedDiscountType     DiscountType `db:"applied_discount_type" json:"applied_discount_type"`
	AppliedCodeID           *string      `db:"applied_code_id" json:"applied_code_id"`

	SubOrders []SubOrder `db:"-" json:"sub_orders"`
}

// SubOrder is the slice of a master order attributable to one retailer.
type SubOrder struct {
	ID            string        `db:"id" json:"id"` // "{masterID}-R{n}"
	OrderID       string        `db:"order_id" json:"order_id"`
	RetailerID    string        `db:"retailer_id" json:"retailer_id"`
	Status        OrderStatus   `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`

	SubtotalBeforeDiscounts float64 `db:"subtotal_before_discounts" json:"subtotal_before_discounts"`
	SubtotalAfterDiscounts  float64 `db:"subtotal_after_discounts" json:"subtotal_after_discounts"`
	DiscountShare           float64 `db:"discount_share" json:"discount_share"`
	TotalAmount             float64 `db:"total_amount" json:"total_amount"`

	EstimatedDeliveryMins *int      `db:"estimated_delivery_mins" json:"estimated_delivery_mins"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`

	Items   []OrderItem      `db:"-" json:"items"`
	History []SubOrderStatus `db:"-" json:"history"`
}

// OrderItem snapshots the product at purchase time.
type OrderItem struct {
	ID            string  `db:"id" json:"id"`
	SubOrderID    string  `db:"sub_order_id" json:"sub_order_id"`
	ProductID     string  `db:"product_id" json:"product_id"`
	InventoryID   string  `db:"inventory_id" json:"inventory_id"`
	ProductName   string  `db:"product_name" json:"product_name"`
	Quantity      int     `db:"quantity" json:"quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"` // post product-discount
	OriginalPrice float64 `db:"original_price" json:"original_price"`
	Subtotal      float64 `db:"subtotal" json:"subtotal"`
	DiscountShare float64 `db:"discount_share" json:"discount_share"`
}

type SubOrderStatus struct {
	ID         string      `db:"id" json:"id"`
	SubOrderID string      `db:"sub_order_id" json:"sub_order_id"`
	Status     OrderStatus `db:"status" json:"status"`
	Note       *string     `db:"note" json:"note"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
