package adaptor

import (
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Checkout    *CheckoutHandler
	Booking     *BookingHandler
	Catalog     *CatalogHandler
	Customer    *CustomerHandler
	Gallery     *GalleryHandler
	Integration *IntegrationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Checkout:    NewCheckoutHandler(service.Checkout, config, log),
		Booking:     NewBookingHandler(service.Booking, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Customer:    NewCustomerHandler(service.Customer, log),
		Gallery:     NewGalleryHandler(service.Gallery, log),
		Integration: NewIntegrationHandler(service.Integration, log),
	}
}
