package model

type Review struct {
	BaseModel
	ProductID  string  `db:"product_id" json:"product_id"`
	CustomerID string  `db:"customer_id" json:"customer_id"`
	Rating     int     `db:"rating" json:"rating"` // 1..5
	Comment    *string `db:"comment" json:"comment"`
}
