package pending

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
)

const (
	sessionKey   = "lastCheckoutSession"
	timestampKey = "checkoutTimestamp"

	// ValidityWindow bounds how long an unconfirmed checkout may wait for
	// reconciliation after the processor redirect.
	ValidityWindow = 5 * time.Minute
)

// Tracker keeps the at-most-one pending-checkout record across page loads.
// The two storage keys are always written, read and removed together.
type Tracker struct {
	storage Storage
	now     func() time.Time
}

func NewTracker(storage Storage) *Tracker {
	return &Tracker{
		storage: storage,
		now:     time.Now,
	}
}

// Record stores the session id with the current timestamp, replacing any
// prior record. Only the most recent session matters.
func (t *Tracker) Record(ctx context.Context, sessionID string) error {
	if err := t.storage.Set(ctx, sessionKey, sessionID); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	ts := strconv.FormatInt(t.now().UnixMilli(), 10)
	if err := t.storage.Set(ctx, timestampKey, ts); err != nil {
		return fmt.Errorf("record timestamp: %w", err)
	}
	return nil
}

// Peek reads the stored record without consuming it. Returns nil when no
// record exists. A torn record (one key missing) or an unparsable timestamp
// is discarded and reported as absent.
func (t *Tracker) Peek(ctx context.Context) (*domain.PendingCheckout, error) {
	sessionID, errSession := t.storage.Get(ctx, sessionKey)
	if errSession != nil && !errors.Is(errSession, ErrNotFound) {
		return nil, fmt.Errorf("read session: %w", errSession)
	}

	ts, errTs := t.storage.Get(ctx, timestampKey)
	if errTs != nil && !errors.Is(errTs, ErrNotFound) {
		return nil, fmt.Errorf("read timestamp: %w", errTs)
	}

	if errors.Is(errSession, ErrNotFound) && errors.Is(errTs, ErrNotFound) {
		return nil, nil
	}

	millis, errParse := strconv.ParseInt(ts, 10, 64)
	if errSession != nil || errTs != nil || errParse != nil {
		if err := t.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &domain.PendingCheckout{
		SessionID: sessionID,
		CreatedAt: time.UnixMilli(millis),
	}, nil
}

// IsValid reports whether the record is still inside the validity window,
// measured against read time so a long-idle tab expires on its next check.
// A record aged exactly the window is expired.
func (t *Tracker) IsValid(record *domain.PendingCheckout) bool {
	if record == nil {
		return false
	}
	return t.now().Sub(record.CreatedAt) < ValidityWindow
}

// Clear removes the record, both keys together.
func (t *Tracker) Clear(ctx context.Context) error {
	if err := t.storage.Delete(ctx, sessionKey, timestampKey); err != nil {
		return fmt.Errorf("clear pending checkout: %w", err)
	}
	return nil
}
