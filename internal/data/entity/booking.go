package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentState string

const (
	PaymentStateUnpaid   PaymentState = "unpaid"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateRefunded PaymentState = "refunded"
)

// Booking is a paid studio session. Bookings are never created
// speculatively: materialization happens only after the gateway
// confirms the payment.
type Booking struct {
	Base
	BookingCode   string        `db:"booking_code"`
	CustomerID    uuid.UUID     `db:"customer_id"`
	PackageID     uuid.UUID     `db:"package_id"`
	LocationID    *uuid.UUID    `db:"location_id"`
	ShootDate     time.Time     `db:"shoot_date"`
	ShootTime     string        `db:"shoot_time"`
	TotalAmount   float64       `db:"total_amount"`
	LocationFee   float64       `db:"location_fee"`
	SpecialNotes  *string       `db:"special_notes"`
	Status        BookingStatus `db:"status"`
	PaymentStatus PaymentState  `db:"payment_status"`
}
