package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/gateway"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	service usecase.CheckoutService
	config  *utils.Config
	log     *zap.Logger
}

func NewCheckoutHandler(service usecase.CheckoutService, config *utils.Config, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "checkout")),
	}
}

// Initiate handles POST /api/checkout/initiate
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req request.InitiateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.InitiateCheckout(r.Context(), utils.ClientIP(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "initiate checkout")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// Verify handles POST /api/checkout/verify
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Complete handles POST /api/checkout/complete
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req request.CompleteCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CompleteCheckout(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "complete checkout")
		return
	}

	if result.Duplicate {
		utils.ResponseSuccess(w, "success", result)
		return
	}
	utils.ResponseCreated(w, "success", result)
}

// Callback handles POST /api/checkout/callback. The gateway form-posts
// the token here after the shopper leaves the hosted payment page. The
// redirect carries only a hint; the booking itself was created from the
// gateway-verified result, never from anything in this request.
func (h *CheckoutHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid callback payload", nil)
		return
	}
	token := r.FormValue("token")
	if token == "" {
		utils.ResponseBadRequest(w, "Missing token", nil)
		return
	}

	result, err := h.service.CompleteCheckout(r.Context(), &request.CompleteCheckoutRequest{Token: token})
	if err != nil {
		h.log.Warn("Callback completion failed", zap.Error(err), zap.String("token", token))
		switch {
		case errors.Is(err, usecase.ErrReconciliationRequired):
			h.redirect(w, r, url.Values{"status": {"pending"}})
		default:
			h.redirect(w, r, url.Values{"status": {"failed"}})
		}
		return
	}

	h.redirect(w, r, url.Values{"status": {"success"}, "code": {result.BookingCode}})
}

// PaymentStatus handles GET /api/payments/{token}
func (h *CheckoutHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ResponseBadRequest(w, "Missing token", nil)
		return
	}

	status, err := h.service.GetPaymentStatus(r.Context(), token)
	if err != nil {
		h.handleServiceError(w, err, "get payment status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

func (h *CheckoutHandler) redirect(w http.ResponseWriter, r *http.Request, params url.Values) {
	target := h.config.Checkout.ResultURL
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target+"?"+params.Encode(), http.StatusFound)
}

// handleServiceError maps checkout failures onto HTTP statuses. The
// typed errors come first; message sniffing only covers the plain ones.
func (h *CheckoutHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	var gwErr *gateway.Error
	switch {
	case errors.As(err, &gwErr):
		h.log.Warn(operation+" rejected by gateway",
			zap.String("code", gwErr.Code),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, gwErr.Message, nil)

	case errors.Is(err, gateway.ErrNotConfigured):
		h.log.Error(operation+" failed - gateway not available",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Online payment is currently unavailable")

	case errors.Is(err, usecase.ErrPaymentNotCompleted):
		h.log.Warn(operation+" failed - payment not completed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrReconciliationRequired):
		h.log.Error(operation+" failed - reconciliation required",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Your payment was received but the booking could not be recorded. Please contact support.")

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "gateway request failed"):
		h.log.Error(operation+" failed - gateway unreachable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Payment provider is unreachable, please try again later")

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
