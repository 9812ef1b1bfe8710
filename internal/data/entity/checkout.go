package entity

import "time"

// DraftAddOn is one selected add-on inside a pending checkout
type DraftAddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CheckoutDraft is the priced, still-unpaid booking intent. It lives in
// the draft cache for the lifetime of one payment attempt and is never
// written to the database before the gateway confirms the charge.
type CheckoutDraft struct {
	PackageID      string       `json:"package_id"`
	PackageName    string       `json:"package_name"`
	PackagePrice   float64      `json:"package_price"`
	AddOns         []DraftAddOn `json:"add_ons,omitempty"`
	LocationID     *string      `json:"location_id,omitempty"`
	LocationName   string       `json:"location_name,omitempty"`
	LocationFee    float64      `json:"location_fee"`
	TotalAmount    float64      `json:"total_amount"`
	CustomerName   string       `json:"customer_name"`
	CustomerEmail  string       `json:"customer_email"`
	CustomerPhone  string       `json:"customer_phone"`
	ShootDate      string       `json:"shoot_date"`
	ShootTime      string       `json:"shoot_time"`
	SpecialNotes   string       `json:"special_notes,omitempty"`
	ConversationID string       `json:"conversation_id"`
	CreatedAt      time.Time    `json:"created_at"`
}
