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

type IntegrationHandler struct {
	service usecase.IntegrationService
	log     *zap.Logger
}

func NewIntegrationHandler(service usecase.IntegrationService, log *zap.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		service: service,
		log:     log.With(zap.String("handler", "integration")),
	}
}

// List handles GET /api/admin/integrations (admin)
func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	integrations, err := h.service.GetIntegrations(r.Context())
	if err != nil {
		h.log.Error("list integrations failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", integrations)
}

// Update handles PUT /api/admin/integrations/{name} (admin)
func (h *IntegrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.service.SetIntegrationActive(r.Context(), name, req.IsActive); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.ResponseNotFound(w, err.Error())
			return
		}
		h.log.Error("update integration failed", zap.Error(err), zap.String("name", name))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
