package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingAddOnRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error)
}

type bookingAddOnRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingAddOnRepository(db database.PgxIface, log *zap.Logger) BookingAddOnRepository {
	return &bookingAddOnRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_addon")),
	}
}

func (r *bookingAddOnRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	query := `
		SELECT id, booking_id, addon_id, name, price, created_at
		FROM booking_addons
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking add-ons",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find add-ons for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var addOns []*entity.BookingAddOn
	for rows.Next() {
		var addOn entity.BookingAddOn
		err := rows.Scan(
			&addOn.ID,
			&addOn.BookingID,
			&addOn.AddOnID,
			&addOn.Name,
			&addOn.Price,
			&addOn.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan booking add-on row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}
