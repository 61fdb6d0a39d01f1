package ecdsaproto

import (
	"context"

	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// Recover handles the recovery endpoint: a pure read of the session's POS
// counter, used by the client as a recovery hint.
func (o *Orchestrator) Recover(ctx context.Context, customerID, sessionID string) (uint32, error) {
	var pos uint32
	if err := o.load(ctx, customerID, sessionID, storage.KindPOS, &pos); err != nil {
		return 0, err
	}
	return pos, nil
}

// DeleteMasterKey flags the session's MasterKey as deleted so the
// active-share guard no longer counts it, without removing the underlying
// record.
func (o *Orchestrator) DeleteMasterKey(ctx context.Context, customerID, sessionID string) error {
	if err := o.store.MarkDeleted(ctx, customerID, sessionID, storage.KindMasterKey); err != nil {
		if err == storage.ErrNotFound {
			return &NotFoundError{Reason: "MasterKey not found for session " + sessionID}
		}
		return &StorageError{Err: err}
	}
	return nil
}
