package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/gateway"
	"studio-booking/pkg/mailer"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mocks embed the interface so only the methods a test touches need
// an implementation; anything else panics loudly.

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockGateway) CreateSession(ctx context.Context, req *gateway.CheckoutRequest) (*gateway.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CheckoutSession), args.Error(1)
}

func (m *MockGateway) RetrieveSession(ctx context.Context, token, conversationID string) (*gateway.SessionResult, error) {
	args := m.Called(ctx, token, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.SessionResult), args.Error(1)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Save(ctx context.Context, token string, draft *entity.CheckoutDraft, ttl time.Duration) error {
	return m.Called(ctx, token, draft, ttl).Error(0)
}

func (m *MockDraftStore) Get(ctx context.Context, token string) (*entity.CheckoutDraft, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CheckoutDraft), args.Error(1)
}

func (m *MockDraftStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockPackageRepo struct {
	repository.PackageRepository
	mock.Mock
}

func (m *MockPackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PhotoPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PhotoPackage), args.Error(1)
}

type MockAddOnRepo struct {
	repository.AddOnRepository
	mock.Mock
}

func (m *MockAddOnRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.AddOn, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AddOn), args.Error(1)
}

type MockLocationRepo struct {
	repository.LocationRepository
	mock.Mock
}

func (m *MockLocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Location), args.Error(1)
}

type MockIntegrationRepo struct {
	repository.IntegrationRepository
	mock.Mock
}

func (m *MockIntegrationRepo) FindByName(ctx context.Context, name string) (*entity.Integration, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Integration), args.Error(1)
}

type MockCustomerRepo struct {
	repository.CustomerRepository
	mock.Mock
}

func (m *MockCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

type MockBookingRepo struct {
	repository.BookingRepository
	mock.Mock
}

func (m *MockBookingRepo) CreatePaid(ctx context.Context, booking *entity.Booking, addOns []*entity.BookingAddOn, payment *entity.Payment) (bool, error) {
	args := m.Called(ctx, booking, addOns, payment)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

type MockPaymentRepo struct {
	repository.PaymentRepository
	mock.Mock
}

func (m *MockPaymentRepo) FindByToken(ctx context.Context, token string) (*entity.Payment, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentRepo) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*entity.Payment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

type MockBookingAddOnRepo struct {
	repository.BookingAddOnRepository
	mock.Mock
}

func (m *MockBookingAddOnRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingAddOn), args.Error(1)
}

type checkoutFixture struct {
	gw          *MockGateway
	drafts      *MockDraftStore
	packages    *MockPackageRepo
	addOns      *MockAddOnRepo
	locations   *MockLocationRepo
	integration *MockIntegrationRepo
	customers   *MockCustomerRepo
	bookings    *MockBookingRepo
	payments    *MockPaymentRepo
	bookingAdd  *MockBookingAddOnRepo
	service     CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		gw:          new(MockGateway),
		drafts:      new(MockDraftStore),
		packages:    new(MockPackageRepo),
		addOns:      new(MockAddOnRepo),
		locations:   new(MockLocationRepo),
		integration: new(MockIntegrationRepo),
		customers:   new(MockCustomerRepo),
		bookings:    new(MockBookingRepo),
		payments:    new(MockPaymentRepo),
		bookingAdd:  new(MockBookingAddOnRepo),
	}

	repo := &repository.Repository{
		Package:      f.packages,
		AddOn:        f.addOns,
		Location:     f.locations,
		Integration:  f.integration,
		Customer:     f.customers,
		Booking:      f.bookings,
		Payment:      f.payments,
		BookingAddOn: f.bookingAdd,
	}
	config := &utils.Config{
		Checkout: utils.CheckoutConfig{
			DraftTTLMinutes: 30,
			DefaultSurname:  "-",
			Currency:        "TRY",
		},
	}

	var _ cache.DraftStore = f.drafts
	f.service = NewCheckoutService(repo, f.gw, f.drafts, mailer.NewMailer(utils.EmailConfig{}, zap.NewNop()), config, zap.NewNop())
	return f
}

func validInitiateRequest(packageID, addOnID string) *request.InitiateCheckoutRequest {
	return &request.InitiateCheckoutRequest{
		PackageID:    packageID,
		PackageName:  "Portre Paketi",
		PackagePrice: 1500,
		AddOns: []request.CheckoutAddOn{
			{ID: addOnID, Name: "Ekstra baski", Price: 250},
		},
		TotalAmount:   1750,
		CustomerName:  "Ayse Yilmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "05321234567",
		ShootDate:     "2026-09-15",
		ShootTime:     "10:00",
		CallbackURL:   "https://studio.example.com/checkout/callback",
	}
}

func TestInitiateCheckout_ValidationFailsBeforeGateway(t *testing.T) {
	f := newCheckoutFixture(t)

	req := validInitiateRequest(uuid.NewString(), uuid.NewString())
	req.CustomerEmail = "not-an-email"

	_, err := f.service.InitiateCheckout(context.Background(), "10.0.0.1", req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	f.gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiateCheckout_BasketSumMismatch(t *testing.T) {
	f := newCheckoutFixture(t)

	req := validInitiateRequest(uuid.NewString(), uuid.NewString())
	req.TotalAmount = 1600 // 1500 + 250 != 1600

	_, err := f.service.InitiateCheckout(context.Background(), "10.0.0.1", req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match the basket sum")
	f.gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiateCheckout_CatalogPriceMismatch(t *testing.T) {
	f := newCheckoutFixture(t)

	packageID := uuid.New()
	addOnID := uuid.New()
	req := validInitiateRequest(packageID.String(), addOnID.String())

	// catalog says the package costs more than the client claims
	f.packages.On("FindByID", mock.Anything, packageID).Return(&entity.PhotoPackage{
		Base:     entity.Base{ID: packageID},
		Name:     "Portre Paketi",
		Price:    1800,
		IsActive: true,
	}, nil)

	_, err := f.service.InitiateCheckout(context.Background(), "10.0.0.1", req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "package price does not match")
	f.gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiateCheckout_GatewayDisabled(t *testing.T) {
	f := newCheckoutFixture(t)

	packageID := uuid.New()
	addOnID := uuid.New()
	req := validInitiateRequest(packageID.String(), addOnID.String())

	f.packages.On("FindByID", mock.Anything, packageID).Return(&entity.PhotoPackage{
		Base: entity.Base{ID: packageID}, Name: "Portre Paketi", Price: 1500, IsActive: true,
	}, nil)
	f.addOns.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.AddOn{
		{BaseNoDelete: entity.BaseNoDelete{ID: addOnID}, PackageID: packageID, Name: "Ekstra baski", Price: 250, IsActive: true},
	}, nil)
	f.integration.On("FindByName", mock.Anything, entity.IntegrationIyzico).Return(&entity.Integration{
		Name: entity.IntegrationIyzico, IsActive: false,
	}, nil)

	_, err := f.service.InitiateCheckout(context.Background(), "10.0.0.1", req)

	require.Error(t, err)
	assert.ErrorIs(t, err, gateway.ErrNotConfigured)
	f.gw.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiateCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(t)

	packageID := uuid.New()
	addOnID := uuid.New()
	req := validInitiateRequest(packageID.String(), addOnID.String())

	f.packages.On("FindByID", mock.Anything, packageID).Return(&entity.PhotoPackage{
		Base: entity.Base{ID: packageID}, Name: "Portre Paketi", Price: 1500, IsActive: true,
	}, nil)
	f.addOns.On("FindByIDs", mock.Anything, mock.Anything).Return([]*entity.AddOn{
		{BaseNoDelete: entity.BaseNoDelete{ID: addOnID}, PackageID: packageID, Name: "Ekstra baski", Price: 250, IsActive: true},
	}, nil)
	f.integration.On("FindByName", mock.Anything, entity.IntegrationIyzico).Return(nil, nil)
	f.gw.On("Configured").Return(true)
	f.gw.On("CreateSession", mock.Anything, mock.MatchedBy(func(r *gateway.CheckoutRequest) bool {
		return r.PaidPrice == 1750 && len(r.BasketItems) == 2 && r.Buyer.Surname == "Yilmaz"
	})).Return(&gateway.CheckoutSession{
		Token:          "tok-abc",
		PaymentPageURL: "https://sandbox.example.com/pay/tok-abc",
	}, nil)
	f.drafts.On("Save", mock.Anything, "tok-abc", mock.MatchedBy(func(d *entity.CheckoutDraft) bool {
		return d.TotalAmount == 1750 && d.ConversationID != ""
	}), 30*time.Minute).Return(nil)

	resp, err := f.service.InitiateCheckout(context.Background(), "10.0.0.1", req)

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", resp.Token)
	assert.NotEmpty(t, resp.PaymentPageURL)
	assert.NotEmpty(t, resp.ConversationID)
	f.drafts.AssertExpectations(t)
}

func TestVerifyPayment_RequiresBothStatuses(t *testing.T) {
	cases := []struct {
		name          string
		status        string
		paymentStatus string
		verified      bool
	}{
		{"both successful", "success", "SUCCESS", true},
		{"call failed", "failure", "SUCCESS", false},
		{"payment failed", "success", "FAILURE", false},
		{"payment waiting", "success", "INIT_THREEDS", false},
		{"both failed", "failure", "FAILURE", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(&gateway.SessionResult{
				Status:        tc.status,
				PaymentStatus: tc.paymentStatus,
				PaymentID:     "pay-1",
				PaidPrice:     1750,
			}, nil)

			resp, err := f.service.VerifyPayment(context.Background(), &request.VerifyPaymentRequest{Token: "tok-1"})

			require.NoError(t, err)
			assert.Equal(t, tc.verified, resp.Verified)
		})
	}
}

func successfulResult() *gateway.SessionResult {
	return &gateway.SessionResult{
		Status:        "success",
		PaymentStatus: "SUCCESS",
		PaymentID:     "gw-pay-42",
		PaidPrice:     1750,
		Currency:      "TRY",
		Installment:   1,
	}
}

func storedDraft(packageID, addOnID string) *entity.CheckoutDraft {
	return &entity.CheckoutDraft{
		PackageID:      packageID,
		PackageName:    "Portre Paketi",
		PackagePrice:   1500,
		AddOns:         []entity.DraftAddOn{{ID: addOnID, Name: "Ekstra baski", Price: 250}},
		TotalAmount:    1750,
		CustomerName:   "Ayse Yilmaz",
		CustomerEmail:  "ayse@example.com",
		CustomerPhone:  "05321234567",
		ShootDate:      "2026-09-15",
		ShootTime:      "10:00",
		ConversationID: "conv-1",
		CreatedAt:      time.Now(),
	}
}

func TestCompleteCheckout_CreatesBooking(t *testing.T) {
	f := newCheckoutFixture(t)
	packageID := uuid.NewString()
	addOnID := uuid.NewString()

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(successfulResult(), nil)
	f.drafts.On("Get", mock.Anything, "tok-1").Return(storedDraft(packageID, addOnID), nil)
	f.customers.On("FindByEmail", mock.Anything, "ayse@example.com").Return(nil, nil)
	f.customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("CreatePaid", mock.Anything,
		mock.MatchedBy(func(b *entity.Booking) bool {
			return b.Status == entity.BookingStatusConfirmed &&
				b.PaymentStatus == entity.PaymentStatePaid &&
				b.TotalAmount == 1750 &&
				b.BookingCode != ""
		}),
		mock.MatchedBy(func(addOns []*entity.BookingAddOn) bool { return len(addOns) == 1 }),
		mock.MatchedBy(func(p *entity.Payment) bool {
			return p.GatewayPaymentID == "gw-pay-42" && p.Token == "tok-1" && p.Status == entity.PaymentStatusCompleted
		}),
	).Return(true, nil)
	f.drafts.On("Delete", mock.Anything, "tok-1").Return(nil)

	resp, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.NoError(t, err)
	assert.False(t, resp.Duplicate)
	assert.NotEmpty(t, resp.BookingCode)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "gw-pay-42", resp.Booking.Payment.GatewayPaymentID)
	f.bookings.AssertExpectations(t)
}

func TestCompleteCheckout_RejectsUnpaidSession(t *testing.T) {
	f := newCheckoutFixture(t)

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(&gateway.SessionResult{
		Status:        "failure",
		PaymentStatus: "FAILURE",
		ErrorCode:     "10051",
		ErrorMessage:  "Insufficient funds",
	}, nil)

	_, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	f.bookings.AssertNotCalled(t, "CreatePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteCheckout_SameTokenReturnsExistingBooking(t *testing.T) {
	f := newCheckoutFixture(t)

	bookingID := uuid.New()
	existing := &entity.Payment{
		Base:             entity.Base{ID: uuid.New()},
		BookingID:        bookingID,
		Amount:           1750,
		Currency:         "TRY",
		GatewayPaymentID: "gw-pay-42",
		Token:            "tok-1",
		Status:           entity.PaymentStatusCompleted,
	}
	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(existing, nil)
	f.bookings.On("FindByID", mock.Anything, bookingID).Return(&entity.Booking{
		Base:        entity.Base{ID: bookingID},
		BookingCode: "STD-20260915-101530-0042",
		PackageID:   uuid.New(),
		CustomerID:  uuid.New(),
		ShootDate:   time.Now(),
	}, nil)
	f.bookingAdd.On("FindByBookingID", mock.Anything, bookingID).Return(nil, nil)
	f.customers.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.NoError(t, err)
	assert.True(t, resp.Duplicate)
	assert.Equal(t, "STD-20260915-101530-0042", resp.BookingCode)
	f.gw.AssertNotCalled(t, "RetrieveSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteCheckout_LostRaceResolvesToWinner(t *testing.T) {
	f := newCheckoutFixture(t)
	packageID := uuid.NewString()
	addOnID := uuid.NewString()
	bookingID := uuid.New()

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(successfulResult(), nil)
	f.drafts.On("Get", mock.Anything, "tok-1").Return(storedDraft(packageID, addOnID), nil)
	f.customers.On("FindByEmail", mock.Anything, "ayse@example.com").Return(nil, nil)
	f.customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("CreatePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.payments.On("FindByGatewayPaymentID", mock.Anything, "gw-pay-42").Return(&entity.Payment{
		Base:             entity.Base{ID: uuid.New()},
		BookingID:        bookingID,
		GatewayPaymentID: "gw-pay-42",
		Token:            "tok-other",
		Status:           entity.PaymentStatusCompleted,
	}, nil)
	f.bookings.On("FindByID", mock.Anything, bookingID).Return(&entity.Booking{
		Base:        entity.Base{ID: bookingID},
		BookingCode: "STD-20260915-101530-0001",
		PackageID:   uuid.New(),
		CustomerID:  uuid.New(),
		ShootDate:   time.Now(),
	}, nil)
	f.bookingAdd.On("FindByBookingID", mock.Anything, bookingID).Return(nil, nil)
	f.customers.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.NoError(t, err)
	assert.True(t, resp.Duplicate)
	assert.Equal(t, "STD-20260915-101530-0001", resp.BookingCode)
}

func TestCompleteCheckout_PersistenceFailureDemandsReconciliation(t *testing.T) {
	f := newCheckoutFixture(t)
	packageID := uuid.NewString()
	addOnID := uuid.NewString()

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(successfulResult(), nil)
	f.drafts.On("Get", mock.Anything, "tok-1").Return(storedDraft(packageID, addOnID), nil)
	f.customers.On("FindByEmail", mock.Anything, "ayse@example.com").Return(nil, nil)
	f.customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("CreatePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("connection reset"))

	_, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReconciliationRequired)
}

func TestCompleteCheckout_ClientDraftOnlyCoversCacheMiss(t *testing.T) {
	f := newCheckoutFixture(t)
	packageID := uuid.NewString()
	addOnID := uuid.NewString()

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(successfulResult(), nil)
	f.drafts.On("Get", mock.Anything, "tok-1").Return(nil, nil)
	f.customers.On("FindByEmail", mock.Anything, "ayse@example.com").Return(nil, nil)
	f.customers.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("CreatePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	f.drafts.On("Delete", mock.Anything, "tok-1").Return(nil)

	resp, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{
		Token: "tok-1",
		Draft: validInitiateRequest(packageID, addOnID),
	})

	require.NoError(t, err)
	assert.False(t, resp.Duplicate)
}

func TestCompleteCheckout_NoDraftAnywhereDemandsReconciliation(t *testing.T) {
	f := newCheckoutFixture(t)

	f.payments.On("FindByToken", mock.Anything, "tok-1").Return(nil, nil)
	f.gw.On("RetrieveSession", mock.Anything, "tok-1", "").Return(successfulResult(), nil)
	f.drafts.On("Get", mock.Anything, "tok-1").Return(nil, nil)

	_, err := f.service.CompleteCheckout(context.Background(), &request.CompleteCheckoutRequest{Token: "tok-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReconciliationRequired)
	f.bookings.AssertNotCalled(t, "CreatePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
