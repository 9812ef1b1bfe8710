package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCheckout(
	r chi.Router,
	checkoutHandler *adaptor.CheckoutHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The whole payment flow is guest-facing; there is nothing to
	// authenticate before the shopper has paid.
	r.Route("/api/checkout", func(r chi.Router) {
		// POST /api/checkout/initiate - price the basket, open a gateway session
		r.Post("/initiate", checkoutHandler.Initiate)

		// POST /api/checkout/verify - ask the gateway how an attempt ended
		r.Post("/verify", checkoutHandler.Verify)

		// POST /api/checkout/complete - verify and materialize the booking
		r.Post("/complete", checkoutHandler.Complete)

		// POST /api/checkout/callback - gateway form-post after the hosted page
		r.Post("/callback", checkoutHandler.Callback)
	})

	// GET /api/payments/{token} - payment status lookup
	r.Get("/api/payments/{token}", checkoutHandler.PaymentStatus)
}
