package request

type CreateGalleryItemRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=150"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	Category  string `json:"category" validate:"required,min=2,max=50"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsActive  bool   `json:"is_active"`
}

type UpdateGalleryItemRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=150"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	Category  string `json:"category" validate:"required,min=2,max=50"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsActive  bool   `json:"is_active"`
}
