package metadata

import (
	"context"
)

// Repository is the local key/value store behind the client session. It
// holds nothing but the current session, so logging out clears it.
type Repository interface {
	// Get returns an error matching common.ErrorNotFound when key is absent
	// or stored empty.
	Get(ctx context.Context, key string) (string, error)
	// SetAll upserts every pair. Run it inside dbx.WithTx to replace a
	// session atomically.
	SetAll(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
}
