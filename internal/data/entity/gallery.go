package entity

type GalleryItem struct {
	BaseNoDelete
	Title     string `db:"title"`
	ImageURL  string `db:"image_url"`
	Category  string `db:"category"`
	SortOrder int    `db:"sort_order"`
	IsActive  bool   `db:"is_active"`
}
