package usecase

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (m *MockBookingRepo) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindTimesByDate(ctx context.Context, date time.Time) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

type bookingFixture struct {
	bookings   *MockBookingRepo
	bookingAdd *MockBookingAddOnRepo
	payments   *MockPaymentRepo
	customers  *MockCustomerRepo
	service    BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		bookings:   new(MockBookingRepo),
		bookingAdd: new(MockBookingAddOnRepo),
		payments:   new(MockPaymentRepo),
		customers:  new(MockCustomerRepo),
	}
	repo := &repository.Repository{
		Booking:      f.bookings,
		BookingAddOn: f.bookingAdd,
		Payment:      f.payments,
		Customer:     f.customers,
	}
	f.service = NewBookingService(repo, zap.NewNop())
	return f
}

func (m *MockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func TestGetBookedTimes(t *testing.T) {
	f := newBookingFixture(t)

	day, _ := time.Parse("2006-01-02", "2026-09-15")
	f.bookings.On("FindTimesByDate", mock.Anything, day).Return([]string{"10:00", "14:00"}, nil)

	resp, err := f.service.GetBookedTimes(context.Background(), "2026-09-15")

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "14:00"}, resp.BookedTimes)
	assert.Equal(t, "2026-09-15", resp.Date)
}

func TestGetBookedTimes_BadDate(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetBookedTimes(context.Background(), "15.09.2026")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date format")
}

func TestGetBookingByCode(t *testing.T) {
	f := newBookingFixture(t)

	bookingID := uuid.New()
	customerID := uuid.New()
	f.bookings.On("FindByCode", mock.Anything, "STD-1").Return(&entity.Booking{
		Base:          entity.Base{ID: bookingID},
		BookingCode:   "STD-1",
		CustomerID:    customerID,
		PackageID:     uuid.New(),
		ShootDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ShootTime:     "10:00",
		TotalAmount:   1750,
		Status:        entity.BookingStatusConfirmed,
		PaymentStatus: entity.PaymentStatePaid,
	}, nil)
	f.bookingAdd.On("FindByBookingID", mock.Anything, bookingID).Return([]*entity.BookingAddOn{
		{BookingID: bookingID, AddOnID: uuid.New(), Name: "Ekstra baski", Price: 250},
	}, nil)
	f.payments.On("FindByBookingID", mock.Anything, bookingID).Return(nil, nil)
	f.customers.On("FindByID", mock.Anything, customerID).Return(&entity.Customer{
		Base: entity.Base{ID: customerID}, FullName: "Ayse Yilmaz", Email: "ayse@example.com",
	}, nil)

	resp, err := f.service.GetBookingByCode(context.Background(), "STD-1")

	require.NoError(t, err)
	assert.Equal(t, "STD-1", resp.BookingCode)
	assert.Equal(t, "2026-09-15", resp.ShootDate)
	assert.Equal(t, "Ayse Yilmaz", resp.CustomerName)
	require.Len(t, resp.AddOns, 1)
	assert.Equal(t, 250.0, resp.AddOns[0].Price)
}

func TestGetBookingByCode_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	f.bookings.On("FindByCode", mock.Anything, "STD-missing").Return(nil, nil)

	_, err := f.service.GetBookingByCode(context.Background(), "STD-missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)

	bookingID := uuid.New()
	f.bookings.On("FindByID", mock.Anything, bookingID).Return(&entity.Booking{
		Base: entity.Base{ID: bookingID}, BookingCode: "STD-1",
		PackageID: uuid.New(), CustomerID: uuid.New(),
	}, nil)
	f.bookings.On("UpdateStatus", mock.Anything, bookingID, entity.BookingStatusCancelled).Return(nil)

	err := f.service.CancelBooking(context.Background(), bookingID.String())

	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}
