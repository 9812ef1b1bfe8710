package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records one verified gateway charge. GatewayPaymentID is
// unique: inserting the same verified payment twice resolves to the
// already-persisted row instead of a second booking.
type Payment struct {
	Base
	BookingID        uuid.UUID     `db:"booking_id"`
	Amount           float64       `db:"amount"`
	Currency         string        `db:"currency"`
	GatewayPaymentID string        `db:"gateway_payment_id"`
	Token            string        `db:"token"`
	ConversationID   string        `db:"conversation_id"`
	Installment      int           `db:"installment"`
	Status           PaymentStatus `db:"status"`
}
