package pending

import (
	"context"
	"errors"
)

// Storage is the durable key-value space the tracker writes through. It
// stands in for whatever the host platform provides: a state file for a
// desktop client, Redis for a kiosk fleet, plain memory in tests.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

var ErrNotFound = errors.New("key not found")
