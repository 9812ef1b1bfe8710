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

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListPackages handles GET /api/packages (public, active only)
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.GetPackages(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list packages")
		return
	}
	utils.ResponseSuccess(w, "success", packages)
}

// GetPackage handles GET /api/packages/{id} (public)
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.GetPackageByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get package")
		return
	}
	utils.ResponseSuccess(w, "success", pkg)
}

// ListLocations handles GET /api/locations (public, active only)
func (h *CatalogHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.GetLocations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list locations")
		return
	}
	utils.ResponseSuccess(w, "success", locations)
}

// ListAllPackages handles GET /api/admin/packages (admin)
func (h *CatalogHandler) ListAllPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.GetAllPackages(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list packages")
		return
	}
	utils.ResponseSuccess(w, "success", packages)
}

// CreatePackage handles POST /api/admin/packages (admin)
func (h *CatalogHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create package")
		return
	}
	utils.ResponseCreated(w, "success", pkg)
}

// UpdatePackage handles PUT /api/admin/packages/{id} (admin)
func (h *CatalogHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update package")
		return
	}
	utils.ResponseSuccess(w, "success", pkg)
}

// DeletePackage handles DELETE /api/admin/packages/{id} (admin)
func (h *CatalogHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePackage(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete package")
		return
	}
	utils.ResponseSuccess(w, "success", nil)
}

// CreateAddOn handles POST /api/admin/packages/{id}/addons (admin)
func (h *CatalogHandler) CreateAddOn(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAddOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	addOn, err := h.service.CreateAddOn(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "create add-on")
		return
	}
	utils.ResponseCreated(w, "success", addOn)
}

// DeleteAddOn handles DELETE /api/admin/addons/{id} (admin)
func (h *CatalogHandler) DeleteAddOn(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAddOn(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete add-on")
		return
	}
	utils.ResponseSuccess(w, "success", nil)
}

// ListAllLocations handles GET /api/admin/locations (admin)
func (h *CatalogHandler) ListAllLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.GetAllLocations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list locations")
		return
	}
	utils.ResponseSuccess(w, "success", locations)
}

// CreateLocation handles POST /api/admin/locations (admin)
func (h *CatalogHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	location, err := h.service.CreateLocation(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create location")
		return
	}
	utils.ResponseCreated(w, "success", location)
}

// UpdateLocation handles PUT /api/admin/locations/{id} (admin)
func (h *CatalogHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	location, err := h.service.UpdateLocation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update location")
		return
	}
	utils.ResponseSuccess(w, "success", location)
}

// DeleteLocation handles DELETE /api/admin/locations/{id} (admin)
func (h *CatalogHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete location")
		return
	}
	utils.ResponseSuccess(w, "success", nil)
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
