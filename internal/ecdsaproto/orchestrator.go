package ecdsaproto

import (
	"context"

	"github.com/google/uuid"

	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// Orchestrator drives the three threshold-ECDSA protocols against a
// persistence backend. It holds no per-session state in memory; every
// round loads what it needs from store and writes what the next round
// needs back to store.
type Orchestrator struct {
	store                        storage.Store
	failKeygenIfActiveShareExists bool
}

// New creates an Orchestrator backed by store. When failIfActive is true,
// the first key-generation round rejects customers that already own a
// non-deleted master key.
func New(store storage.Store, failIfActive bool) *Orchestrator {
	return &Orchestrator{store: store, failKeygenIfActiveShareExists: failIfActive}
}

// newSessionID mints a fresh session identifier for the first round of a
// protocol.
func newSessionID() string {
	return uuid.NewString()
}

// load reads an artifact for (customerID, sessionID, kind) into out,
// translating a missing artifact into NotFoundError and any backend
// failure into StorageError.
func (o *Orchestrator) load(ctx context.Context, customerID, sessionID string, kind storage.Kind, out interface{}) error {
	ok, err := o.store.Get(ctx, customerID, sessionID, kind, out)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !ok {
		return &NotFoundError{Reason: string(kind) + " not found for session " + sessionID}
	}
	return nil
}

// save writes an artifact, translating backend failures into StorageError.
func (o *Orchestrator) save(ctx context.Context, customerID, sessionID string, kind storage.Kind, value interface{}) error {
	if err := o.store.Insert(ctx, customerID, sessionID, kind, value); err != nil {
		return &StorageError{Err: err}
	}
	return nil
}
