package repository

import (
	"studio-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Package      PackageRepository
	AddOn        AddOnRepository
	Location     LocationRepository
	Customer     CustomerRepository
	Booking      BookingRepository
	BookingAddOn BookingAddOnRepository
	Payment      PaymentRepository
	Gallery      GalleryRepository
	Integration  IntegrationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Package:      NewPackageRepository(db, log),
		AddOn:        NewAddOnRepository(db, log),
		Location:     NewLocationRepository(db, log),
		Customer:     NewCustomerRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		BookingAddOn: NewBookingAddOnRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Gallery:      NewGalleryRepository(db, log),
		Integration:  NewIntegrationRepository(db, log),
	}
}
