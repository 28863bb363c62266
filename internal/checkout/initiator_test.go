package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSessionCreator implements SessionCreator for testing
type MockSessionCreator struct {
	session *api.CheckoutSession
	err     error
}

func (m *MockSessionCreator) CreateCheckoutSession(_ context.Context) (*api.CheckoutSession, error) {
	return m.session, m.err
}

// MockRecorder implements PendingRecorder for testing
type MockRecorder struct {
	recorded []string
	err      error
}

func (m *MockRecorder) Record(_ context.Context, sessionID string) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, sessionID)
	return nil
}

// MockNavigator implements Navigator for testing
type MockNavigator struct {
	targets []string
	err     error
}

func (m *MockNavigator) Navigate(url string) error {
	if m.err != nil {
		return m.err
	}
	m.targets = append(m.targets, url)
	return nil
}

func TestBeginCheckout_RecordsThenNavigates(t *testing.T) {
	sessions := &MockSessionCreator{session: &api.CheckoutSession{
		ID:  "cs_123",
		URL: "https://checkout.stripe.com/session_123",
	}}
	recorder := &MockRecorder{}
	nav := &MockNavigator{}
	initiator := NewInitiator(sessions, recorder, nav, zap.NewNop())

	err := initiator.BeginCheckout(context.Background(), 99.97)
	require.NoError(t, err)

	assert.Equal(t, []string{"cs_123"}, recorder.recorded)
	assert.Equal(t, []string{"https://checkout.stripe.com/session_123"}, nav.targets)
}

func TestBeginCheckout_SessionCreationFails(t *testing.T) {
	sessions := &MockSessionCreator{err: api.ErrAPIFailure}
	recorder := &MockRecorder{}
	nav := &MockNavigator{}
	initiator := NewInitiator(sessions, recorder, nav, zap.NewNop())

	err := initiator.BeginCheckout(context.Background(), 99.97)
	assert.ErrorIs(t, err, api.ErrSessionCreation)

	// No record, no navigation.
	assert.Empty(t, recorder.recorded)
	assert.Empty(t, nav.targets)
}

func TestBeginCheckout_RecordFailureAbortsNavigation(t *testing.T) {
	sessions := &MockSessionCreator{session: &api.CheckoutSession{ID: "cs_123", URL: "https://pay.example/cs_123"}}
	recorder := &MockRecorder{err: errors.New("disk full")}
	nav := &MockNavigator{}
	initiator := NewInitiator(sessions, recorder, nav, zap.NewNop())

	err := initiator.BeginCheckout(context.Background(), 99.97)
	assert.ErrorIs(t, err, api.ErrSessionCreation)
	assert.Empty(t, nav.targets)
}

func TestDisplayTotal_AddsFixedSurcharge(t *testing.T) {
	assert.InDelta(t, 99.97, DisplayTotal(79.98), 1e-9)
	assert.InDelta(t, Surcharge, DisplayTotal(0), 1e-9)
}
