// internal/wire/wire.go
package wire

import (
	"net/http"

	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/mailer"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	gw usecase.GatewayClient,
	drafts cache.DraftStore,
	mail *mailer.Mailer,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, gw, drafts, mail, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireCheckout(r, handler.Checkout, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireCatalog(r, handler.Catalog, repo, config, logger)
	wireCustomer(r, handler.Customer, repo, config, logger)
	wireGallery(r, handler.Gallery, repo, config, logger)
	wireIntegration(r, handler.Integration, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
