package usecase

import (
	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/mailer"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Checkout    CheckoutService
	Booking     BookingService
	Catalog     CatalogService
	Customer    CustomerService
	Gallery     GalleryService
	Integration IntegrationService
}

func NewService(
	repo *repository.Repository,
	gw GatewayClient,
	drafts cache.DraftStore,
	mail *mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Checkout:    NewCheckoutService(repo, gw, drafts, mail, config, log),
		Booking:     NewBookingService(repo, log),
		Catalog:     NewCatalogService(repo, log),
		Customer:    NewCustomerService(repo, log),
		Gallery:     NewGalleryService(repo, log),
		Integration: NewIntegrationService(repo, log),
	}
}
