package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	GetCustomers(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerDetailResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomers(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	customers, err := s.repo.Customer.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list customers", zap.Error(err))
		return nil, fmt.Errorf("failed to list customers")
	}
	total, err := s.repo.Customer.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count customers", zap.Error(err))
		return nil, fmt.Errorf("failed to list customers")
	}

	items := make([]response.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, response.CustomerResponse{
			ID:        c.ID.String(),
			FullName:  c.FullName,
			Email:     c.Email,
			Phone:     c.Phone,
			Notes:     c.Notes,
			CreatedAt: c.CreatedAt,
		})
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerDetailResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to find customer")
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s not found", customerID)
	}

	resp := &response.CustomerDetailResponse{
		CustomerResponse: response.CustomerResponse{
			ID:        customer.ID.String(),
			FullName:  customer.FullName,
			Email:     customer.Email,
			Phone:     customer.Phone,
			Notes:     customer.Notes,
			CreatedAt: customer.CreatedAt,
		},
		Bookings: []response.BookingResponse{},
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load customer bookings", zap.Error(err), zap.String("customer_id", customerID))
		return resp, nil
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *bookingToResponse(b, nil, nil, customer.FullName, customer.Email))
	}
	return resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update customer validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID format %s: %w", customerID, err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to find customer")
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s not found", customerID)
	}

	customer.FullName = req.FullName
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Notes = req.Notes
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer")
	}

	return &response.CustomerResponse{
		ID:        customer.ID.String(),
		FullName:  customer.FullName,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Notes:     customer.Notes,
		CreatedAt: customer.CreatedAt,
	}, nil
}
