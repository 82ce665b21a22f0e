package dto

type ProductFilters struct {
	CategoryID string
	ActiveOnly bool
	Page       int
	PageSize   int
}

type CreateProductInput struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	ImageURL    string  `json:"image_url"`
}

type UpdateProductInput struct {
	ID          string  `json:"-"`
	CategoryID  *string `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type CreateCategoryInput struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}
