package dto

import "time"

type UpsertOfferInput struct {
	SellerID     string
	SellerRole   string
	ProductID    string
	CurrentStock int
	Price        float64
	IsActive     bool
}

type SetDiscountInput struct {
	SellerID   string
	ProductID  string
	Percentage float64
	ValidUntil time.Time
	Reason     string
	IsActive   bool
}
