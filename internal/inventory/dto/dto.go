package dto

type InventoryFilters struct {
	SellerID  string
	ProductID string
	LowStock  bool // available (current - reserved) <= 5
	Page      int
	PageSize  int
}

type MovementFilters struct {
	SellerID     string
	ProductID    string
	InventoryID  string
	MovementType string
	Page         int
	PageSize     int
}
