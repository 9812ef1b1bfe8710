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

type GalleryHandler struct {
	service usecase.GalleryService
	log     *zap.Logger
}

func NewGalleryHandler(service usecase.GalleryService, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		log:     log.With(zap.String("handler", "gallery")),
	}
}

// List handles GET /api/gallery?category=portrait (public, active only)
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetGallery(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.handleServiceError(w, err, "list gallery")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// ListAll handles GET /api/admin/gallery (admin)
func (h *GalleryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAllItems(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list gallery")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// Create handles POST /api/admin/gallery (admin)
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create gallery item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// Update handles PUT /api/admin/gallery/{id} (admin)
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update gallery item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// Delete handles DELETE /api/admin/gallery/{id} (admin)
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete gallery item")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *GalleryHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
