package request

type UpdateCustomerRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"required,min=10,max=20"`
	Notes    *string `json:"notes,omitempty"`
}

type CustomerListRequest struct {
	PaginatedRequest
	Search string `json:"search" validate:"omitempty,max=100"`
}
