package entity

import (
	"github.com/google/uuid"
)

// BookingAddOn snapshots one selected add-on at booking time, so later
// catalog edits do not rewrite history.
type BookingAddOn struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	AddOnID   uuid.UUID `db:"addon_id"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
}
