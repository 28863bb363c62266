package domain

import "time"

// PendingCheckout marks a checkout session that was handed to the payment
// processor but not yet confirmed. At most one exists at a time; only the
// last session matters.
type PendingCheckout struct {
	SessionID string
	CreatedAt time.Time
}

// PaymentStatus is the processor outcome for a checkout session, read-only
// from this side.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}
