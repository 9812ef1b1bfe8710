package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/gateway"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubCheckoutService returns canned results per method
type stubCheckoutService struct {
	initiateErr error
	completeErr error
	complete    *response.CompleteCheckoutResponse
}

func (s *stubCheckoutService) InitiateCheckout(ctx context.Context, clientIP string, req *request.InitiateCheckoutRequest) (*response.CheckoutSessionResponse, error) {
	if s.initiateErr != nil {
		return nil, s.initiateErr
	}
	return &response.CheckoutSessionResponse{Token: "tok-1", PaymentPageURL: "https://pay.example.com"}, nil
}

func (s *stubCheckoutService) VerifyPayment(ctx context.Context, req *request.VerifyPaymentRequest) (*response.VerificationResponse, error) {
	return &response.VerificationResponse{Verified: true}, nil
}

func (s *stubCheckoutService) CompleteCheckout(ctx context.Context, req *request.CompleteCheckoutRequest) (*response.CompleteCheckoutResponse, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return s.complete, nil
}

func (s *stubCheckoutService) GetPaymentStatus(ctx context.Context, token string) (*response.PaymentStatusResponse, error) {
	return nil, fmt.Errorf("payment %s not found", token)
}

func newCheckoutHandlerWith(svc usecase.CheckoutService) *CheckoutHandler {
	config := &utils.Config{}
	config.Checkout.ResultURL = "https://studio.example.com/result"
	return NewCheckoutHandler(svc, config, zap.NewNop())
}

func TestInitiate_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"validation", fmt.Errorf("validation failed: email must be valid"), http.StatusBadRequest},
		{"gateway declined", &gateway.Error{Code: "1001", Message: "declined"}, http.StatusBadRequest},
		{"gateway off", gateway.ErrNotConfigured, http.StatusInternalServerError},
		{"gateway unreachable", fmt.Errorf("gateway request failed: connection refused"), http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newCheckoutHandlerWith(&stubCheckoutService{initiateErr: tc.err})

			r := httptest.NewRequest(http.MethodPost, "/api/checkout/initiate", strings.NewReader(`{}`))
			w := httptest.NewRecorder()
			h.Initiate(w, r)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestComplete_StatusMapping(t *testing.T) {
	t.Run("payment not completed", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{completeErr: usecase.ErrPaymentNotCompleted})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/complete", strings.NewReader(`{"token":"tok-1"}`))
		w := httptest.NewRecorder()
		h.Complete(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reconciliation required", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{completeErr: usecase.ErrReconciliationRequired})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/complete", strings.NewReader(`{"token":"tok-1"}`))
		w := httptest.NewRecorder()
		h.Complete(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "contact support")
	})

	t.Run("duplicate returns 200 not 201", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{complete: &response.CompleteCheckoutResponse{
			BookingCode: "STD-1", Duplicate: true,
		}})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/complete", strings.NewReader(`{"token":"tok-1"}`))
		w := httptest.NewRecorder()
		h.Complete(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCallback_RedirectsWithHint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{complete: &response.CompleteCheckoutResponse{
			BookingCode: "STD-20260915-101530-0042",
		}})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/callback",
			strings.NewReader("token=tok-1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.Callback(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		location := w.Header().Get("Location")
		assert.Contains(t, location, "https://studio.example.com/result")
		assert.Contains(t, location, "status=success")
		assert.Contains(t, location, "code=STD-20260915-101530-0042")
	})

	t.Run("failed payment", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{completeErr: usecase.ErrPaymentNotCompleted})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/callback",
			strings.NewReader("token=tok-1"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.Callback(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "status=failed")
	})

	t.Run("missing token", func(t *testing.T) {
		h := newCheckoutHandlerWith(&stubCheckoutService{})

		r := httptest.NewRequest(http.MethodPost, "/api/checkout/callback", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.Callback(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
