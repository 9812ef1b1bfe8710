package request

type CreatePackageRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	PhotoCount      int     `json:"photo_count" validate:"gte=0"`
	IsActive        bool    `json:"is_active"`
}

type UpdatePackageRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	PhotoCount      int     `json:"photo_count" validate:"gte=0"`
	IsActive        bool    `json:"is_active"`
}

type CreateAddOnRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	IsActive bool    `json:"is_active"`
}

type CreateLocationRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Address  *string `json:"address,omitempty"`
	Fee      float64 `json:"fee" validate:"gte=0"`
	IsActive bool    `json:"is_active"`
}

type UpdateLocationRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Address  *string `json:"address,omitempty"`
	Fee      float64 `json:"fee" validate:"gte=0"`
	IsActive bool    `json:"is_active"`
}
