package model

// Role discriminates the three kinds of accounts sharing the users table.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRetailer   Role = "retailer"
	RoleWholesaler Role = "wholesaler"
)

type User struct {
	BaseModel
	Name     string  `db:"name" json:"name"`
	Email    string  `db:"email" json:"email"`
	Phone    *string `db:"phone" json:"phone"`
	Role     Role    `db:"role" json:"role"`
	Address  *string `db:"address" json:"address"`
	IsActive bool    `db:"is_active" json:"is_active"`
}

// LoyaltyTier is derived from the customer's delivered-order count, never stored.
type LoyaltyTier string

const (
	TierBronze LoyaltyTier = "BRONZE"
	TierSilver LoyaltyTier = "SILVER"
	TierGold   LoyaltyTier = "GOLD"
)
