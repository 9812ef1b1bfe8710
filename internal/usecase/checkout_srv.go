package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/gateway"
	"studio-booking/pkg/mailer"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// priceTolerance absorbs float rounding when comparing money values.
const priceTolerance = 0.005

// GatewayClient is the slice of the payment gateway the checkout flow
// needs. *gateway.Client satisfies it.
type GatewayClient interface {
	Configured() bool
	CreateSession(ctx context.Context, req *gateway.CheckoutRequest) (*gateway.CheckoutSession, error)
	RetrieveSession(ctx context.Context, token, conversationID string) (*gateway.SessionResult, error)
}

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, clientIP string, req *request.InitiateCheckoutRequest) (*response.CheckoutSessionResponse, error)
	VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerificationResponse, error)
	CompleteCheckout(ctx context.Context, req *request.CompleteCheckoutRequest) (*response.CompleteCheckoutResponse, error)
	GetPaymentStatus(ctx context.Context, token string) (*response.PaymentStatusResponse, error)
}

type checkoutService struct {
	repo    *repository.Repository
	gateway GatewayClient
	drafts  cache.DraftStore
	mailer  *mailer.Mailer
	config  *utils.Config
	log     *zap.Logger
}

func NewCheckoutService(
	repo *repository.Repository,
	gw GatewayClient,
	drafts cache.DraftStore,
	mail *mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		repo:    repo,
		gateway: gw,
		drafts:  drafts,
		mailer:  mail,
		config:  config,
		log:     log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) InitiateCheckout(ctx context.Context, clientIP string, req *request.InitiateCheckoutRequest) (*response.CheckoutSessionResponse, error) {
	// 1. Validate input before anything touches the gateway
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initiate checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. The stated total must equal the basket sum
	sum := req.PackagePrice + req.LocationFee
	for _, a := range req.AddOns {
		sum += a.Price
	}
	if math.Abs(sum-req.TotalAmount) > priceTolerance {
		s.log.Warn("Basket sum mismatch",
			zap.Float64("total_amount", req.TotalAmount),
			zap.Float64("basket_sum", sum))
		return nil, fmt.Errorf("validation failed: total_amount does not match the basket sum")
	}

	// 3. Re-price the basket against the catalog; client prices are a
	// claim, the database is the authority
	pkg, addOns, location, err := s.verifyBasket(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Online payment must be switched on and configured
	if err := s.checkGatewayEnabled(ctx); err != nil {
		return nil, err
	}

	conversationID := utils.GenerateConversationID()
	firstName, lastName := utils.SplitFullName(req.CustomerName, s.config.Checkout.DefaultSurname)

	basket := []gateway.BasketItem{{
		ID:       pkg.ID.String(),
		Name:     pkg.Name,
		Category: "Package",
		Price:    pkg.Price,
	}}
	for _, a := range addOns {
		basket = append(basket, gateway.BasketItem{
			ID:       a.ID.String(),
			Name:     a.Name,
			Category: "AddOn",
			Price:    a.Price,
		})
	}
	if location != nil && location.Fee > 0 {
		basket = append(basket, gateway.BasketItem{
			ID:       location.ID.String(),
			Name:     location.Name,
			Category: "Location",
			Price:    location.Fee,
		})
	}

	session, err := s.gateway.CreateSession(ctx, &gateway.CheckoutRequest{
		ConversationID: conversationID,
		Price:          req.TotalAmount,
		PaidPrice:      req.TotalAmount,
		Currency:       s.config.Checkout.Currency,
		BasketID:       conversationID,
		CallbackURL:    req.CallbackURL,
		Buyer: gateway.Buyer{
			ID:      conversationID,
			Name:    firstName,
			Surname: lastName,
			Email:   req.CustomerEmail,
			Phone:   req.CustomerPhone,
			IP:      clientIP,
		},
		BasketItems: basket,
	})
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err), zap.String("conversation_id", conversationID))
		return nil, err
	}

	// 5. Park the priced draft server-side, keyed by the gateway token.
	// Completion reads it back instead of trusting whatever the browser
	// returns after the redirect.
	draft := s.buildDraft(req, conversationID)
	ttl := time.Duration(s.config.Checkout.DraftTTLMinutes) * time.Minute
	if err := s.drafts.Save(ctx, session.Token, draft, ttl); err != nil {
		s.log.Error("Failed to store checkout draft",
			zap.Error(err), zap.String("token", session.Token))
		return nil, fmt.Errorf("failed to store checkout draft")
	}

	s.log.Info("Checkout session created",
		zap.String("token", session.Token),
		zap.String("conversation_id", conversationID),
		zap.Float64("amount", req.TotalAmount))

	resp := &response.CheckoutSessionResponse{
		Token:          session.Token,
		PaymentPageURL: session.PaymentPageURL,
		ConversationID: conversationID,
	}
	if session.TokenExpireTime > 0 {
		resp.ExpiresAt = time.UnixMilli(session.TokenExpireTime).Format(time.RFC3339)
	}
	return resp, nil
}

func (s *checkoutService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerificationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	result, err := s.gateway.RetrieveSession(ctx, req.Token, req.ConversationID)
	if err != nil {
		s.log.Error("Failed to retrieve payment result", zap.Error(err), zap.String("token", req.Token))
		return nil, err
	}

	resp := &response.VerificationResponse{
		Verified:  paymentSucceeded(result),
		PaymentID: result.PaymentID,
		PaidPrice: result.PaidPrice,
		Currency:  result.Currency,
	}
	if !resp.Verified {
		resp.ErrorCode = result.ErrorCode
		resp.ErrorMessage = result.ErrorMessage
		s.log.Info("Payment not verified",
			zap.String("token", req.Token),
			zap.String("status", result.Status),
			zap.String("payment_status", result.PaymentStatus),
			zap.String("error_code", result.ErrorCode))
	}
	return resp, nil
}

func (s *checkoutService) CompleteCheckout(ctx context.Context, req *request.CompleteCheckoutRequest) (*response.CompleteCheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Same token twice returns the booking recorded the first time
	if existing, err := s.repo.Payment.FindByToken(ctx, req.Token); err != nil {
		s.log.Error("Failed to look up payment by token", zap.Error(err), zap.String("token", req.Token))
		return nil, fmt.Errorf("failed to look up payment")
	} else if existing != nil {
		return s.completedResponse(ctx, existing, true)
	}

	// Re-verify with the gateway; the redirect itself proves nothing
	result, err := s.gateway.RetrieveSession(ctx, req.Token, req.ConversationID)
	if err != nil {
		s.log.Error("Failed to retrieve payment result", zap.Error(err), zap.String("token", req.Token))
		return nil, err
	}
	if !paymentSucceeded(result) {
		s.log.Warn("Completion attempted on unpaid session",
			zap.String("token", req.Token),
			zap.String("status", result.Status),
			zap.String("payment_status", result.PaymentStatus))
		if result.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotCompleted, result.ErrorMessage)
		}
		return nil, ErrPaymentNotCompleted
	}

	// The cached draft wins; the client copy only covers cache expiry
	draft, err := s.drafts.Get(ctx, req.Token)
	if err != nil {
		s.log.Warn("Failed to read checkout draft", zap.Error(err), zap.String("token", req.Token))
	}
	if draft == nil && req.Draft != nil {
		draft = s.buildDraft(req.Draft, req.ConversationID)
	}
	if draft == nil {
		s.log.Error("Charge taken but no draft to materialize",
			zap.String("token", req.Token),
			zap.String("gateway_payment_id", result.PaymentID))
		return nil, fmt.Errorf("booking details for payment %s are missing: %w",
			result.PaymentID, ErrReconciliationRequired)
	}

	// The gateway-confirmed amount is what was actually charged
	if math.Abs(result.PaidPrice-draft.TotalAmount) > priceTolerance {
		s.log.Warn("Charged amount differs from draft total",
			zap.String("token", req.Token),
			zap.Float64("paid_price", result.PaidPrice),
			zap.Float64("draft_total", draft.TotalAmount))
	}

	booking, addOns, payment, err := s.materialize(ctx, draft, result, req.Token)
	if err != nil {
		s.log.Error("Failed to materialize booking, manual reconciliation required",
			zap.Error(err),
			zap.String("token", req.Token),
			zap.String("gateway_payment_id", result.PaymentID))
		return nil, fmt.Errorf("%v: %w", err, ErrReconciliationRequired)
	}

	created, err := s.repo.Booking.CreatePaid(ctx, booking, addOns, payment)
	if err != nil {
		s.log.Error("Failed to record paid booking, manual reconciliation required",
			zap.Error(err),
			zap.String("token", req.Token),
			zap.String("gateway_payment_id", result.PaymentID))
		return nil, fmt.Errorf("failed to record booking: %w", ErrReconciliationRequired)
	}
	if !created {
		// Lost the race against a concurrent completion of the same charge
		winner, err := s.repo.Payment.FindByGatewayPaymentID(ctx, result.PaymentID)
		if err != nil || winner == nil {
			s.log.Error("Duplicate charge detected but winning payment not found",
				zap.Error(err), zap.String("gateway_payment_id", result.PaymentID))
			return nil, fmt.Errorf("failed to resolve duplicate payment: %w", ErrReconciliationRequired)
		}
		return s.completedResponse(ctx, winner, true)
	}

	if err := s.drafts.Delete(ctx, req.Token); err != nil {
		s.log.Warn("Failed to delete checkout draft", zap.Error(err), zap.String("token", req.Token))
	}
	go s.sendConfirmation(draft, booking)

	s.log.Info("Booking created from paid checkout",
		zap.String("booking_code", booking.BookingCode),
		zap.String("gateway_payment_id", result.PaymentID),
		zap.Float64("amount", payment.Amount))

	return &response.CompleteCheckoutResponse{
		BookingCode: booking.BookingCode,
		Booking:     bookingToResponse(booking, addOns, payment, draft.CustomerName, draft.CustomerEmail),
		Duplicate:   false,
	}, nil
}

func (s *checkoutService) GetPaymentStatus(ctx context.Context, token string) (*response.PaymentStatusResponse, error) {
	payment, err := s.repo.Payment.FindByToken(ctx, token)
	if err != nil {
		s.log.Error("Failed to look up payment", zap.Error(err), zap.String("token", token))
		return nil, fmt.Errorf("failed to look up payment")
	}
	if payment == nil {
		return nil, fmt.Errorf("payment %s not found", token)
	}

	resp := &response.PaymentStatusResponse{
		Token:            payment.Token,
		Status:           string(payment.Status),
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		GatewayPaymentID: payment.GatewayPaymentID,
	}
	if booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID); err == nil && booking != nil {
		resp.BookingCode = booking.BookingCode
	}
	return resp, nil
}

// ==================== HELPER METHODS ====================

// paymentSucceeded is the one place that decides what counts as paid:
// both the call status and the payment status have to agree.
func paymentSucceeded(result *gateway.SessionResult) bool {
	return result.Status == "success" && result.PaymentStatus == "SUCCESS"
}

func (s *checkoutService) checkGatewayEnabled(ctx context.Context) error {
	integ, err := s.repo.Integration.FindByName(ctx, entity.IntegrationIyzico)
	if err != nil {
		s.log.Error("Failed to check integration settings", zap.Error(err))
		return fmt.Errorf("failed to check integration settings")
	}
	if integ != nil && !integ.IsActive {
		return fmt.Errorf("online payment is disabled: %w", gateway.ErrNotConfigured)
	}
	if !s.gateway.Configured() {
		return gateway.ErrNotConfigured
	}
	return nil
}

// verifyBasket re-reads every priced line from the database and rejects
// the request when the client-stated prices have drifted.
func (s *checkoutService) verifyBasket(ctx context.Context, req *request.InitiateCheckoutRequest) (*entity.PhotoPackage, []*entity.AddOn, *entity.Location, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid package ID format %s: %w", req.PackageID, err)
	}
	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		s.log.Error("Failed to load package", zap.Error(err), zap.String("package_id", req.PackageID))
		return nil, nil, nil, fmt.Errorf("failed to load package")
	}
	if pkg == nil || !pkg.IsActive {
		return nil, nil, nil, fmt.Errorf("package %s not found", req.PackageID)
	}
	if math.Abs(pkg.Price-req.PackagePrice) > priceTolerance {
		return nil, nil, nil, fmt.Errorf("validation failed: package price does not match the catalog")
	}

	var addOns []*entity.AddOn
	if len(req.AddOns) > 0 {
		ids := make([]uuid.UUID, 0, len(req.AddOns))
		for _, a := range req.AddOns {
			id, err := uuid.Parse(a.ID)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("invalid add-on ID format %s: %w", a.ID, err)
			}
			ids = append(ids, id)
		}
		found, err := s.repo.AddOn.FindByIDs(ctx, ids)
		if err != nil {
			s.log.Error("Failed to load add-ons", zap.Error(err))
			return nil, nil, nil, fmt.Errorf("failed to load add-ons")
		}
		byID := make(map[string]*entity.AddOn, len(found))
		for _, a := range found {
			byID[a.ID.String()] = a
		}
		for _, a := range req.AddOns {
			dbAddOn, ok := byID[a.ID]
			if !ok || !dbAddOn.IsActive || dbAddOn.PackageID != packageID {
				return nil, nil, nil, fmt.Errorf("add-on %s not found", a.ID)
			}
			if math.Abs(dbAddOn.Price-a.Price) > priceTolerance {
				return nil, nil, nil, fmt.Errorf("validation failed: add-on price does not match the catalog")
			}
			addOns = append(addOns, dbAddOn)
		}
	}

	var location *entity.Location
	if req.LocationID != nil {
		locationID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid location ID format %s: %w", *req.LocationID, err)
		}
		location, err = s.repo.Location.FindByID(ctx, locationID)
		if err != nil {
			s.log.Error("Failed to load location", zap.Error(err), zap.String("location_id", *req.LocationID))
			return nil, nil, nil, fmt.Errorf("failed to load location")
		}
		if location == nil || !location.IsActive {
			return nil, nil, nil, fmt.Errorf("location %s not found", *req.LocationID)
		}
		if math.Abs(location.Fee-req.LocationFee) > priceTolerance {
			return nil, nil, nil, fmt.Errorf("validation failed: location fee does not match the catalog")
		}
	}

	return pkg, addOns, location, nil
}

func (s *checkoutService) buildDraft(req *request.InitiateCheckoutRequest, conversationID string) *entity.CheckoutDraft {
	draft := &entity.CheckoutDraft{
		PackageID:      req.PackageID,
		PackageName:    req.PackageName,
		PackagePrice:   req.PackagePrice,
		LocationID:     req.LocationID,
		LocationName:   req.LocationName,
		LocationFee:    req.LocationFee,
		TotalAmount:    req.TotalAmount,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		ShootDate:      req.ShootDate,
		ShootTime:      req.ShootTime,
		SpecialNotes:   req.SpecialNotes,
		ConversationID: conversationID,
		CreatedAt:      time.Now(),
	}
	for _, a := range req.AddOns {
		draft.AddOns = append(draft.AddOns, entity.DraftAddOn{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return draft
}

// materialize turns a verified charge plus its draft into the entities
// CreatePaid writes in one transaction.
func (s *checkoutService) materialize(ctx context.Context, draft *entity.CheckoutDraft, result *gateway.SessionResult, token string) (*entity.Booking, []*entity.BookingAddOn, *entity.Payment, error) {
	packageID, err := uuid.Parse(draft.PackageID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid package ID in draft %s: %w", draft.PackageID, err)
	}
	var locationID *uuid.UUID
	if draft.LocationID != nil {
		id, err := uuid.Parse(*draft.LocationID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid location ID in draft %s: %w", *draft.LocationID, err)
		}
		locationID = &id
	}
	shootDate, err := time.Parse("2006-01-02", draft.ShootDate)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid shoot date in draft %s: %w", draft.ShootDate, err)
	}

	customer, err := s.findOrCreateCustomer(ctx, draft)
	if err != nil {
		return nil, nil, nil, err
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:   utils.GenerateBookingCode(),
		CustomerID:    customer.ID,
		PackageID:     packageID,
		LocationID:    locationID,
		ShootDate:     shootDate,
		ShootTime:     draft.ShootTime,
		TotalAmount:   result.PaidPrice,
		LocationFee:   draft.LocationFee,
		Status:        entity.BookingStatusConfirmed,
		PaymentStatus: entity.PaymentStatePaid,
	}
	if draft.SpecialNotes != "" {
		notes := draft.SpecialNotes
		booking.SpecialNotes = &notes
	}

	addOns := make([]*entity.BookingAddOn, 0, len(draft.AddOns))
	for _, a := range draft.AddOns {
		addOnID, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid add-on ID in draft %s: %w", a.ID, err)
		}
		addOns = append(addOns, &entity.BookingAddOn{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			BookingID:  booking.ID,
			AddOnID:    addOnID,
			Name:       a.Name,
			Price:      a.Price,
		})
	}

	currency := result.Currency
	if currency == "" {
		currency = s.config.Checkout.Currency
	}
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:        booking.ID,
		Amount:           result.PaidPrice,
		Currency:         currency,
		GatewayPaymentID: result.PaymentID,
		Token:            token,
		ConversationID:   draft.ConversationID,
		Installment:      result.Installment,
		Status:           entity.PaymentStatusCompleted,
	}

	return booking, addOns, payment, nil
}

func (s *checkoutService) findOrCreateCustomer(ctx context.Context, draft *entity.CheckoutDraft) (*entity.Customer, error) {
	customer, err := s.repo.Customer.FindByEmail(ctx, draft.CustomerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer != nil {
		return customer, nil
	}

	now := time.Now()
	customer = &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName: draft.CustomerName,
		Email:    draft.CustomerEmail,
		Phone:    draft.CustomerPhone,
	}
	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *checkoutService) completedResponse(ctx context.Context, payment *entity.Payment, duplicate bool) (*response.CompleteCheckoutResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil || booking == nil {
		s.log.Error("Payment exists without its booking",
			zap.Error(err), zap.String("payment_id", payment.ID.String()))
		return nil, fmt.Errorf("failed to load booking: %w", ErrReconciliationRequired)
	}
	addOns, err := s.repo.BookingAddOn.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load booking add-ons", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}

	var name, email string
	if customer, err := s.repo.Customer.FindByID(ctx, booking.CustomerID); err == nil && customer != nil {
		name, email = customer.FullName, customer.Email
	}

	return &response.CompleteCheckoutResponse{
		BookingCode: booking.BookingCode,
		Booking:     bookingToResponse(booking, addOns, payment, name, email),
		Duplicate:   duplicate,
	}, nil
}

func (s *checkoutService) sendConfirmation(draft *entity.CheckoutDraft, booking *entity.Booking) {
	data := mailer.BookingConfirmation{
		CustomerName: draft.CustomerName,
		BookingCode:  booking.BookingCode,
		PackageName:  draft.PackageName,
		ShootDate:    draft.ShootDate,
		ShootTime:    draft.ShootTime,
		Amount:       booking.TotalAmount,
		Currency:     s.config.Checkout.Currency,
	}
	if err := s.mailer.SendBookingConfirmation(draft.CustomerEmail, data); err != nil {
		s.log.Warn("Failed to send booking confirmation",
			zap.Error(err), zap.String("booking_code", booking.BookingCode))
	}
}

func bookingToResponse(booking *entity.Booking, addOns []*entity.BookingAddOn, payment *entity.Payment, customerName, customerEmail string) *response.BookingResponse {
	resp := &response.BookingResponse{
		ID:            booking.ID.String(),
		BookingCode:   booking.BookingCode,
		PackageID:     booking.PackageID.String(),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		ShootDate:     booking.ShootDate.Format("2006-01-02"),
		ShootTime:     booking.ShootTime,
		TotalAmount:   booking.TotalAmount,
		LocationFee:   booking.LocationFee,
		SpecialNotes:  booking.SpecialNotes,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		CreatedAt:     booking.CreatedAt,
	}
	if booking.LocationID != nil {
		id := booking.LocationID.String()
		resp.LocationID = &id
	}
	for _, a := range addOns {
		resp.AddOns = append(resp.AddOns, response.BookingAddOnResponse{
			ID:    a.AddOnID.String(),
			Name:  a.Name,
			Price: a.Price,
		})
	}
	if payment != nil {
		resp.Payment = &response.PaymentResponse{
			ID:               payment.ID.String(),
			Amount:           payment.Amount,
			Currency:         payment.Currency,
			GatewayPaymentID: payment.GatewayPaymentID,
			Installment:      payment.Installment,
			Status:           payment.Status,
			CreatedAt:        payment.CreatedAt,
		}
	}
	return resp
}
