package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public
	GetBookingByCode(ctx context.Context, code string) (*response.BookingResponse, error)
	GetBookedTimes(ctx context.Context, date string) (*response.AvailabilityResponse, error)

	// Admin
	GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) error
	CancelBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookingByCode(ctx context.Context, code string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByCode(ctx, code)
	if err != nil {
		s.log.Error("Failed to find booking by code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", code)
	}
	return s.toDetailResponse(ctx, booking), nil
}

func (s *bookingService) GetBookedTimes(ctx context.Context, date string) (*response.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", date, err)
	}

	times, err := s.repo.Booking.FindTimesByDate(ctx, day)
	if err != nil {
		s.log.Error("Failed to load booked times", zap.Error(err), zap.String("date", date))
		return nil, fmt.Errorf("failed to load availability")
	}

	if times == nil {
		times = []string{}
	}
	return &response.AvailabilityResponse{Date: date, BookedTimes: times}, nil
}

func (s *bookingService) GetBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to list bookings")
	}
	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to list bookings")
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *s.toDetailResponse(ctx, b))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	return s.toDetailResponse(ctx, booking), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatus(req.Status)); err != nil {
		s.log.Error("Failed to update booking status", zap.Error(err), zap.String("booking_id", bookingID))
		return fmt.Errorf("failed to update booking status")
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status))
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	return s.UpdateBookingStatus(ctx, bookingID, &request.UpdateBookingStatusRequest{
		Status: string(entity.BookingStatusCancelled),
	})
}

// toDetailResponse enriches a booking with its add-ons, payment and
// customer. Lookups are best effort; the core row is always returned.
func (s *bookingService) toDetailResponse(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	addOns, err := s.repo.BookingAddOn.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load booking add-ons", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}
	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load payment", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}

	var name, email string
	if customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID); err == nil && customer != nil {
		name, email = customer.FullName, customer.Email
	}
	return bookingToResponse(booking, addOns, payment, name, email)
}
