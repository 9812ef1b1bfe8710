package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetByCode handles GET /api/bookings/{code} (public)
func (h *BookingHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Missing booking code", nil)
		return
	}

	booking, err := h.service.GetBookingByCode(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, err, "get booking by code")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetAvailability handles GET /api/availability?date=2006-01-02 (public)
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "Missing date parameter", nil)
		return
	}

	availability, err := h.service.GetBookedTimes(r.Context(), date)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// List handles GET /api/admin/bookings (admin)
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	bookings, err := h.service.GetBookings(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetByID handles GET /api/admin/bookings/{id} (admin)
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateStatus handles PATCH /api/admin/bookings/{id}/status (admin)
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		h.handleServiceError(w, err, "update booking status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Cancel handles DELETE /api/admin/bookings/{id} (admin)
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
