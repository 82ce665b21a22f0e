package notification

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced       = "OrderPlaced"
	EventSubOrderStatus    = "SubOrderStatusChanged"
	EventOrderCancelled    = "OrderCancelled"
	EventPriceAlertTrigger = "PriceAlertTriggered"
)

// Envelope is the wire format for every notification event on Kafka. The
// partition key is the recipient user ID so one user's feed stays ordered.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	UserID     string          `json:"user_id"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID     string  `json:"order_id"`
	SubOrderID  string  `json:"sub_order_id,omitempty"`
	TotalAmount float64 `json:"total_amount"`
}

type SubOrderStatusPayload struct {
	OrderID    string `json:"order_id"`
	SubOrderID string `json:"sub_order_id"`
	Status     string `json:"status"`
}

type PriceAlertPayload struct {
	AlertID      string  `json:"alert_id"`
	ProductID    string  `json:"product_id"`
	TargetPrice  float64 `json:"target_price"`
	CurrentPrice float64 `json:"current_price"`
}
