package usecase

import "errors"

var (
	// ErrPaymentNotCompleted means the gateway reports the attempt as
	// anything other than a settled, successful charge.
	ErrPaymentNotCompleted = errors.New("payment has not been completed")

	// ErrReconciliationRequired marks the one truly bad state: the charge
	// went through but the booking could not be recorded. Callers must
	// surface a "contact support" message, never a retry prompt.
	ErrReconciliationRequired = errors.New("payment received but the booking could not be recorded")
)
