package entity

import (
	"github.com/google/uuid"
)

type PhotoPackage struct {
	Base
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	Price           float64 `db:"price"`
	DurationMinutes int     `db:"duration_minutes"`
	PhotoCount      int     `db:"photo_count"`
	IsActive        bool    `db:"is_active"`
}

type AddOn struct {
	BaseNoDelete
	PackageID uuid.UUID `db:"package_id"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	IsActive  bool      `db:"is_active"`
}
