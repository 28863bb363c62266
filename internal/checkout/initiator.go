package checkout

import (
	"context"
	"fmt"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/api"
	"go.uber.org/zap"
)

// Surcharge is the fixed shipping/handling fee added to the server-reported
// cart total for display. It is never sent to the server; the processor
// session is priced entirely server-side.
const Surcharge = 19.99

// DisplayTotal is the user-facing order total shown on the checkout button.
func DisplayTotal(cartTotal float64) float64 {
	return cartTotal + Surcharge
}

// Navigator transfers control to the payment processor. The real
// implementation leaves the application; tests record the target.
type Navigator interface {
	Navigate(url string) error
}

type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context) (*api.CheckoutSession, error)
}

type PendingRecorder interface {
	Record(ctx context.Context, sessionID string) error
}

// Initiator obtains a processor session and performs the redirect handoff.
type Initiator struct {
	sessions SessionCreator
	pending  PendingRecorder
	nav      Navigator
	logger   *zap.Logger
}

func NewInitiator(sessions SessionCreator, pending PendingRecorder, nav Navigator, logger *zap.Logger) *Initiator {
	return &Initiator{
		sessions: sessions,
		pending:  pending,
		nav:      nav,
		logger:   logger,
	}
}

// BeginCheckout opens a session for the current server-side cart, records
// the pending checkout, then navigates to the processor. On any failure
// before navigation nothing is recorded and no navigation happens.
// expectedTotal is the display total (cart total plus Surcharge); it is
// logged, never transmitted.
func (i *Initiator) BeginCheckout(ctx context.Context, expectedTotal float64) error {
	session, err := i.sessions.CreateCheckoutSession(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrSessionCreation, err)
	}

	if err := i.pending.Record(ctx, session.ID); err != nil {
		// Without the record the return trip could never reconcile, so the
		// redirect is abandoned.
		return fmt.Errorf("%w: record pending checkout: %v", api.ErrSessionCreation, err)
	}

	i.logger.Info("redirecting to payment processor",
		zap.String("session_id", session.ID),
		zap.Float64("display_total", expectedTotal),
	)

	if err := i.nav.Navigate(session.URL); err != nil {
		return fmt.Errorf("navigate to processor: %w", err)
	}
	return nil
}
