package response

type CheckoutSessionResponse struct {
	Token          string `json:"token"`
	PaymentPageURL string `json:"payment_page_url"`
	ConversationID string `json:"conversation_id"`
	ExpiresAt      string `json:"expires_at,omitempty"`
}

type VerificationResponse struct {
	Verified     bool    `json:"verified"`
	PaymentID    string  `json:"payment_id,omitempty"`
	PaidPrice    float64 `json:"paid_price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	ErrorCode    string  `json:"error_code,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

type CompleteCheckoutResponse struct {
	BookingCode string           `json:"booking_code"`
	Booking     *BookingResponse `json:"booking"`
	Duplicate   bool             `json:"duplicate"`
}

type PaymentStatusResponse struct {
	Token            string  `json:"token"`
	Status           string  `json:"status"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	GatewayPaymentID string  `json:"gateway_payment_id,omitempty"`
	BookingCode      string  `json:"booking_code,omitempty"`
}
