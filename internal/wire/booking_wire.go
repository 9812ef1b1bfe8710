package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings/{code} - booking lookup by code (guests)
	r.Get("/api/bookings/{code}", bookingHandler.GetByCode)

	// GET /api/availability?date= - booked time slots for a day
	r.Get("/api/availability", bookingHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings - list all bookings
		r.Get("/", bookingHandler.List)

		// GET /api/admin/bookings/{id} - booking details
		r.Get("/{id}", bookingHandler.GetByID)

		// PATCH /api/admin/bookings/{id}/status - move the booking along
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)

		// DELETE /api/admin/bookings/{id} - cancel
		r.Delete("/{id}", bookingHandler.Cancel)
	})
}
