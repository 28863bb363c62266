package reconcile

import (
	"context"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/logger"
	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/store"
	"go.uber.org/zap"
)

// Outcome is the terminal state of one reconciliation run. The machine runs
// once per application load and every outcome is final for that load.
type Outcome string

const (
	OutcomeIdle    Outcome = "IDLE"     // no pending record, the common case
	OutcomeSettled Outcome = "SETTLED"  // payment confirmed, cart cleared
	OutcomeExpired Outcome = "EXPIRED"  // record outlived the validity window
	OutcomeNotPaid Outcome = "NOT_PAID" // processor has not confirmed yet
	OutcomeError   Outcome = "ERROR"    // status query failed, record kept
)

func (o Outcome) String() string {
	return string(o)
}

type PendingTracker interface {
	Peek(ctx context.Context) (*domain.PendingCheckout, error)
	IsValid(record *domain.PendingCheckout) bool
	Clear(ctx context.Context) error
}

type StatusChecker interface {
	CheckPaymentStatus(ctx context.Context, sessionID string) (domain.PaymentStatus, error)
}

type CartClearer interface {
	ClearCart(ctx context.Context) error
}

// Reconciler settles the cart after the processor redirect round-trip.
type Reconciler struct {
	pending  PendingTracker
	payments StatusChecker
	cart     CartClearer
	store    *store.Store
	logger   *zap.Logger
}

func New(pending PendingTracker, payments StatusChecker, cart CartClearer, cartStore *store.Store, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		pending:  pending,
		payments: payments,
		cart:     cart,
		store:    cartStore,
		logger:   logger,
	}
}

// Run performs the once-per-load settlement check. It never surfaces a
// user-blocking error: the purchase may have succeeded server-side
// regardless of this client's ability to confirm it.
func (r *Reconciler) Run(ctx context.Context) Outcome {
	log := logger.WithTrace(ctx, r.logger)

	record, err := r.pending.Peek(ctx)
	if err != nil {
		log.Error("failed to read pending checkout", zap.Error(err))
		return OutcomeError
	}
	if record == nil {
		return OutcomeIdle
	}

	if !r.pending.IsValid(record) {
		// Stale record: no network call, just drop it.
		if err := r.pending.Clear(ctx); err != nil {
			log.Error("failed to clear expired checkout", zap.Error(err))
		}
		log.Info("pending checkout expired", zap.String("session_id", record.SessionID))
		return OutcomeExpired
	}

	status, err := r.payments.CheckPaymentStatus(ctx, record.SessionID)
	if err != nil {
		// Record stays put; a later load inside the window re-checks.
		log.Warn("payment status check failed",
			zap.String("session_id", record.SessionID),
			zap.Error(err),
		)
		return OutcomeError
	}

	if status != domain.PaymentStatusPaid {
		// Deliberately at-least-once: the record is kept so the next load
		// can re-check within the validity window.
		log.Info("payment not confirmed yet",
			zap.String("session_id", record.SessionID),
			zap.String("status", status.String()),
		)
		return OutcomeNotPaid
	}

	// Clear the tracker before the cart-clear round-trip so a failure there
	// cannot trigger a second settlement of the same record.
	if err := r.pending.Clear(ctx); err != nil {
		log.Error("failed to clear settled checkout", zap.Error(err))
	}
	if err := r.cart.ClearCart(ctx); err != nil {
		// Soft failure: payment already settled. The badge shows a stale
		// count until the next full fetch.
		log.Warn("cart clear after payment failed",
			zap.String("session_id", record.SessionID),
			zap.Error(err),
		)
	}
	r.store.Reset()

	log.Info("payment settled, cart cleared", zap.String("session_id", record.SessionID))
	return OutcomeSettled
}
