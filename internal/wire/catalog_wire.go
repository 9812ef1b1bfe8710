package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/packages", catalogHandler.ListPackages)
	r.Get("/api/packages/{id}", catalogHandler.GetPackage)
	r.Get("/api/locations", catalogHandler.ListLocations)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/api/admin/packages", catalogHandler.ListAllPackages)
		r.Post("/api/admin/packages", catalogHandler.CreatePackage)
		r.Put("/api/admin/packages/{id}", catalogHandler.UpdatePackage)
		r.Delete("/api/admin/packages/{id}", catalogHandler.DeletePackage)
		r.Post("/api/admin/packages/{id}/addons", catalogHandler.CreateAddOn)
		r.Delete("/api/admin/addons/{id}", catalogHandler.DeleteAddOn)

		r.Get("/api/admin/locations", catalogHandler.ListAllLocations)
		r.Post("/api/admin/locations", catalogHandler.CreateLocation)
		r.Put("/api/admin/locations/{id}", catalogHandler.UpdateLocation)
		r.Delete("/api/admin/locations/{id}", catalogHandler.DeleteLocation)
	})
}
