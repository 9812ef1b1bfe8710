package repository

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreatePaid persists a booking, its add-on snapshots and the verified
	// payment in one transaction. Returns false without writing anything
	// when a payment with the same gateway payment ID already exists.
	CreatePaid(ctx context.Context, booking *entity.Booking, addOns []*entity.BookingAddOn, payment *entity.Payment) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error)

	// Business queries
	FindTimesByDate(ctx context.Context, date time.Time) ([]string, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, customer_id, package_id, location_id, shoot_date, shoot_time,
       total_amount, location_fee, special_notes, status, payment_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.CustomerID,
		&booking.PackageID,
		&booking.LocationID,
		&booking.ShootDate,
		&booking.ShootTime,
		&booking.TotalAmount,
		&booking.LocationFee,
		&booking.SpecialNotes,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CreatePaid(ctx context.Context, booking *entity.Booking, addOns []*entity.BookingAddOn, payment *entity.Payment) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin materialization tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertBooking := `
		INSERT INTO bookings (id, booking_code, customer_id, package_id, location_id, shoot_date, shoot_time,
		                     total_amount, location_fee, special_notes, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.BookingCode,
		booking.CustomerID,
		booking.PackageID,
		booking.LocationID,
		booking.ShootDate,
		booking.ShootTime,
		booking.TotalAmount,
		booking.LocationFee,
		booking.SpecialNotes,
		booking.Status,
		booking.PaymentStatus,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
		)
		return false, fmt.Errorf("insert booking %s: %w", booking.BookingCode, err)
	}

	// The unique index on gateway_payment_id is the idempotency guard:
	// a second materialization of the same charge inserts zero rows and
	// the whole transaction rolls back, booking included.
	insertPayment := `
		INSERT INTO payments (id, booking_id, amount, currency, gateway_payment_id, token,
		                     conversation_id, installment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (gateway_payment_id) DO NOTHING
	`

	tag, err := tx.Exec(ctx, insertPayment,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Currency,
		payment.GatewayPaymentID,
		payment.Token,
		payment.ConversationID,
		payment.Installment,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert payment",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("gateway_payment_id", payment.GatewayPaymentID),
		)
		return false, fmt.Errorf("insert payment for booking %s: %w", booking.BookingCode, err)
	}

	if tag.RowsAffected() == 0 {
		// Already materialized for this charge
		return false, nil
	}

	insertAddOn := `
		INSERT INTO booking_addons (id, booking_id, addon_id, name, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, addOn := range addOns {
		if _, err := tx.Exec(ctx, insertAddOn,
			addOn.ID,
			addOn.BookingID,
			addOn.AddOnID,
			addOn.Name,
			addOn.Price,
			addOn.CreatedAt,
		); err != nil {
			r.log.Error("Failed to insert booking add-on",
				zap.Error(err),
				zap.String("booking_code", booking.BookingCode),
			)
			return false, fmt.Errorf("insert add-on for booking %s: %w", booking.BookingCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit materialization tx: %w", err)
	}

	return true, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find bookings by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindTimesByDate(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT shoot_time
		FROM bookings
		WHERE shoot_date = $1 AND status != 'cancelled'
		ORDER BY shoot_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find booked times",
			zap.Error(err),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find booked times for %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			r.log.Error("Failed to scan booked time", zap.Error(err))
			return nil, fmt.Errorf("scan booked time: %w", err)
		}
		times = append(times, t)
	}

	return times, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
