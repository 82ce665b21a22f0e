package dto

import "time"

type CreateCodeInput struct {
	Code           string
	Description    string
	Percentage     float64
	MinPurchase    float64
	ValidFrom      time.Time
	ValidUntil     time.Time
	MaxUsesTotal   int
	MaxUsesPerUser int
}

type UpdateCodeInput struct {
	ID             string
	Description    *string
	Percentage     *float64
	MinPurchase    *float64
	ValidUntil     *time.Time
	MaxUsesTotal   *int
	MaxUsesPerUser *int
	IsActive       *bool
}
