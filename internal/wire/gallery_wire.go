package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGallery(
	r chi.Router,
	galleryHandler *adaptor.GalleryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/gallery", galleryHandler.List)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/gallery", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", galleryHandler.ListAll)
		r.Post("/", galleryHandler.Create)
		r.Put("/{id}", galleryHandler.Update)
		r.Delete("/{id}", galleryHandler.Delete)
	})
}
