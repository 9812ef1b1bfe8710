package response

type GalleryItemResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}
