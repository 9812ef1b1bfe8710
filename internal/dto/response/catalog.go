package response

import "time"

type AddOnResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"is_active"`
}

type PackageResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Price           float64         `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	PhotoCount      int             `json:"photo_count"`
	IsActive        bool            `json:"is_active"`
	AddOns          []AddOnResponse `json:"add_ons,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type LocationResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Fee      float64 `json:"fee"`
	IsActive bool    `json:"is_active"`
}
