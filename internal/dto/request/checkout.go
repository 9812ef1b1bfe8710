package request

type CheckoutAddOn struct {
	ID    string  `json:"id" validate:"required,uuid4"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type InitiateCheckoutRequest struct {
	PackageID    string  `json:"package_id" validate:"required,uuid4"`
	PackageName  string  `json:"package_name" validate:"required"`
	PackagePrice float64 `json:"package_price" validate:"required,gt=0"`

	AddOns []CheckoutAddOn `json:"add_ons" validate:"omitempty,dive"`

	LocationID   *string `json:"location_id,omitempty" validate:"omitempty,uuid4"`
	LocationName string  `json:"location_name,omitempty"`
	LocationFee  float64 `json:"location_fee" validate:"gte=0"`

	TotalAmount float64 `json:"total_amount" validate:"required,gt=0"`

	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=10,max=20"`

	ShootDate    string `json:"shoot_date" validate:"required,datetime=2006-01-02"`
	ShootTime    string `json:"shoot_time" validate:"required,datetime=15:04"`
	SpecialNotes string `json:"special_notes,omitempty" validate:"max=500"`

	CallbackURL string `json:"callback_url" validate:"required,url"`
}

type VerifyPaymentRequest struct {
	Token          string `json:"token" validate:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// CompleteCheckoutRequest carries the payment token plus an optional
// client-side copy of the draft. The server-side cached draft always
// takes precedence; the client copy is only a fallback for when the
// cache entry has expired.
type CompleteCheckoutRequest struct {
	Token          string                   `json:"token" validate:"required"`
	ConversationID string                   `json:"conversation_id,omitempty"`
	Draft          *InitiateCheckoutRequest `json:"draft,omitempty"`
}
