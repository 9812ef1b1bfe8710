package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByToken(ctx context.Context, token string) (*entity.Payment, error)
	FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount, currency, gateway_payment_id, token,
       conversation_id, installment, status, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Currency,
		&payment.GatewayPaymentID,
		&payment.Token,
		&payment.ConversationID,
		&payment.Installment,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByToken(ctx context.Context, token string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE token = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, token))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by token",
			zap.Error(err),
			zap.String("token", token),
		)
		return nil, fmt.Errorf("find payment by token: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_payment_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, gatewayPaymentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by gateway payment ID",
			zap.Error(err),
			zap.String("gateway_payment_id", gatewayPaymentID),
		)
		return nil, fmt.Errorf("find payment by gateway payment ID %s: %w", gatewayPaymentID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, paymentID, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}
