// Package tokenstore persists the single opaque session token between runs.
// It is the client-side stand-in for a platform secure store: one slot,
// last-writer-wins, written only by the session store.
package tokenstore

import (
	"context"
	"errors"
)

// ErrNoToken is returned by Get when no token is persisted. Callers treat
// this as "not logged in", not as a failure.
var ErrNoToken = errors.New("no token stored")

// Store is the secure token slot.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
