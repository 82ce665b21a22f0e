package dto

import "github.com/freshkart/freshkart-api/internal/model"

type CreateOrderInput struct {
	CustomerID      string          `json:"-"`
	Items           []ItemRequest   `json:"items"`
	DeliveryAddress string          `json:"delivery_address"`
	Notes           string          `json:"notes"`
	DiscountCodeID  *string         `json:"discount_code_id"`
}

type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateSubOrderStatusInput struct {
	SubOrderID  string            `json:"-"`
	RequesterID string            `json:"-"`
	Status      model.OrderStatus `json:"status"`
	Note        string            `json:"note"`
}
