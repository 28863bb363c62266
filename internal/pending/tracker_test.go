package pending

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/LozonschiRazvan123/mern-bookstore-frontend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_WritesBothKeysTogether(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	tracker := NewTracker(storage)
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return at }

	require.NoError(t, tracker.Record(ctx, "cs_123"))

	sessionID, err := storage.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.Equal(t, "cs_123", sessionID)

	ts, err := storage.Get(ctx, timestampKey)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(at.UnixMilli(), 10), ts)
}

func TestRecord_OverwritesPriorRecord(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(NewMemoryStorage())

	require.NoError(t, tracker.Record(ctx, "cs_first"))
	require.NoError(t, tracker.Record(ctx, "cs_second"))

	record, err := tracker.Peek(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "cs_second", record.SessionID)
}

func TestPeek_NoRecord(t *testing.T) {
	tracker := NewTracker(NewMemoryStorage())

	record, err := tracker.Peek(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPeek_DoesNotConsumeRecord(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(NewMemoryStorage())
	require.NoError(t, tracker.Record(ctx, "cs_123"))

	first, err := tracker.Peek(ctx)
	require.NoError(t, err)
	second, err := tracker.Peek(ctx)
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestPeek_TornRecordDiscarded(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	tracker := NewTracker(storage)

	// Session without its timestamp must be treated as absent and cleaned.
	require.NoError(t, storage.Set(ctx, sessionKey, "cs_123"))

	record, err := tracker.Peek(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = storage.Get(ctx, sessionKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPeek_UnparsableTimestampDiscarded(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	tracker := NewTracker(storage)

	require.NoError(t, storage.Set(ctx, sessionKey, "cs_123"))
	require.NoError(t, storage.Set(ctx, timestampKey, "not-a-number"))

	record, err := tracker.Peek(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = storage.Get(ctx, timestampKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsValid_Boundary(t *testing.T) {
	tracker := NewTracker(NewMemoryStorage())
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return now }

	record := func(age time.Duration) *domain.PendingCheckout {
		return &domain.PendingCheckout{SessionID: "cs_123", CreatedAt: now.Add(-age)}
	}

	assert.True(t, tracker.IsValid(record(0)))
	assert.True(t, tracker.IsValid(record(ValidityWindow-time.Millisecond)))
	// The boundary is exclusive: a record aged exactly the window is expired.
	assert.False(t, tracker.IsValid(record(ValidityWindow)))
	assert.False(t, tracker.IsValid(record(ValidityWindow+time.Millisecond)))
	assert.False(t, tracker.IsValid(nil))
}

func TestClear_RemovesBothKeys(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	tracker := NewTracker(storage)
	require.NoError(t, tracker.Record(ctx, "cs_123"))

	require.NoError(t, tracker.Clear(ctx))

	_, errSession := storage.Get(ctx, sessionKey)
	_, errTs := storage.Get(ctx, timestampKey)
	assert.ErrorIs(t, errSession, ErrNotFound)
	assert.ErrorIs(t, errTs, ErrNotFound)

	record, err := tracker.Peek(ctx)
	require.NoError(t, err)
	assert.Nil(t, record)
}
