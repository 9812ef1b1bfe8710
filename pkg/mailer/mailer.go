package mailer

import (
	"fmt"

	"studio-booking/pkg/utils"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// BookingConfirmation holds the fields rendered into the confirmation mail
type BookingConfirmation struct {
	CustomerName string
	BookingCode  string
	PackageName  string
	ShootDate    string
	ShootTime    string
	Amount       float64
	Currency     string
}

func (m *Mailer) SendBookingConfirmation(toEmail string, data BookingConfirmation) error {
	if m.config.Host == "" {
		m.log.Warn("SMTP not configured, skipping confirmation mail",
			zap.String("booking_code", data.BookingCode))
		return nil
	}

	subject := fmt.Sprintf("Booking confirmed - %s", data.BookingCode)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your photo session is confirmed.\n\n"+
			"Booking code: %s\n"+
			"Package: %s\n"+
			"Date: %s %s\n"+
			"Amount paid: %.2f %s\n\n"+
			"See you at the studio!\n",
		data.CustomerName,
		data.BookingCode,
		data.PackageName,
		data.ShootDate,
		data.ShootTime,
		data.Amount,
		data.Currency,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.User, m.config.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send confirmation mail",
			zap.Error(err),
			zap.String("booking_code", data.BookingCode),
		)
		return fmt.Errorf("send confirmation mail: %w", err)
	}

	m.log.Info("Confirmation mail sent",
		zap.String("booking_code", data.BookingCode),
	)
	return nil
}
