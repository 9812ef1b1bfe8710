package response

import "time"

type CustomerResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerDetailResponse struct {
	CustomerResponse
	Bookings []BookingResponse `json:"bookings"`
}
