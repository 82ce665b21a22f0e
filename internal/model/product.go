package model

type Product struct {
	BaseModel
	CategoryID  *string   `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Unit        string    `db:"unit" json:"unit"` // kg, litre, piece, pack
	ImageURL    *string   `db:"image_url" json:"image_url"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Category    *Category `db:"-" json:"category,omitempty"`
	// Aggregated from reviews on read paths, not a column.
	AvgRating   float64 `db:"-" json:"avg_rating"`
	ReviewCount int     `db:"-" json:"review_count"`
}

type Category struct {
	BaseModel
	ParentID    *string `db:"parent_id" json:"parent_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}
