package model

// CartItem lives in Redis only, keyed per customer; it is never persisted in
// the relational store.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
