package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type BookingAddOnResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type BookingResponse struct {
	ID            string                 `json:"id"`
	BookingCode   string                 `json:"booking_code"`
	PackageID     string                 `json:"package_id"`
	LocationID    *string                `json:"location_id,omitempty"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	CustomerEmail string                 `json:"customer_email,omitempty"`
	ShootDate     string                 `json:"shoot_date"`
	ShootTime     string                 `json:"shoot_time"`
	TotalAmount   float64                `json:"total_amount"`
	LocationFee   float64                `json:"location_fee"`
	SpecialNotes  *string                `json:"special_notes,omitempty"`
	Status        entity.BookingStatus   `json:"status"`
	PaymentStatus entity.PaymentState    `json:"payment_status"`
	AddOns        []BookingAddOnResponse `json:"add_ons,omitempty"`
	Payment       *PaymentResponse       `json:"payment,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type PaymentResponse struct {
	ID               string               `json:"id"`
	Amount           float64              `json:"amount"`
	Currency         string               `json:"currency"`
	GatewayPaymentID string               `json:"gateway_payment_id"`
	Installment      int                  `json:"installment"`
	Status           entity.PaymentStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
}

type AvailabilityResponse struct {
	Date        string   `json:"date"`
	BookedTimes []string `json:"booked_times"`
}
