// Package storage implements the persistence adapter: a key-value store of
// typed protocol artifacts indexed by (customer_id, session_id, kind).
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// Kind identifies one of the closed set of artifact kinds the protocol
// orchestrator reads and writes.
type Kind string

// The closed set of artifact kinds.
const (
	KindKeyGenFirstMsg        Kind = "KeyGenFirstMsg"
	KindCommWitness           Kind = "CommWitness"
	KindEcKeyPair             Kind = "EcKeyPair"
	KindPaillierKeyPair       Kind = "PaillierKeyPair"
	KindParty1Private         Kind = "Party1Private"
	KindParty2Public          Kind = "Party2Public"
	KindPDLDecommit           Kind = "PDLDecommit"
	KindAlpha                 Kind = "Alpha"
	KindParty2PDLFirstMsg     Kind = "Party2PDLFirstMsg"
	KindCCKeyGenFirstMsg      Kind = "CCKeyGenFirstMsg"
	KindCCCommWitness         Kind = "CCCommWitness"
	KindCCEcKeyPair           Kind = "CCEcKeyPair"
	KindCC                    Kind = "CC"
	KindMasterKey             Kind = "MasterKey"
	KindEphEcKeyPair          Kind = "EphEcKeyPair"
	KindEphKeyGenFirstMsg     Kind = "EphKeyGenFirstMsg"
	KindRotateCommitMessage1M Kind = "RotateCommitMessage1M"
	KindRotateCommitMessage1R Kind = "RotateCommitMessage1R"
	KindRotateRandom1         Kind = "RotateRandom1"
	KindRotateFirstMsg        Kind = "RotateFirstMsg"
	KindRotatePrivateNew      Kind = "RotatePrivateNew"
	KindRotatePdlDecom        Kind = "RotatePdlDecom"
	KindRotateParty2First     Kind = "RotateParty2First"
	KindRotateParty1Second    Kind = "RotateParty1Second"
	KindPOS                   Kind = "POS"
)

// ErrNotFound is returned by Get when no artifact exists for the given key.
// The orchestrator maps this directly to its NotFound error class: an
// out-of-order call, or a session belonging to another customer.
var ErrNotFound = errors.New("artifact not found")

// record is the envelope every artifact is wrapped in before it's
// serialized. IsDeleted only has meaning for MasterKey records; it backs the
// active-share guard's "non-deleted" filter.
type record struct {
	Value     json.RawMessage `json:"value"`
	IsDeleted bool            `json:"is_deleted"`
}

// Store is the persistence adapter consumed by the protocol orchestrator.
// Insert is an upsert: rotation depends on MasterKey and Alpha being
// overwritable. Implementations must provide read-your-write consistency
// within one session's sequential requests.
type Store interface {
	// Insert serializes value and stores it under the composite key,
	// overwriting any prior value for the same key.
	Insert(ctx context.Context, customerID, sessionID string, kind Kind, value interface{}) error

	// Get deserializes the stored value into out and reports whether an
	// artifact existed for the composite key.
	Get(ctx context.Context, customerID, sessionID string, kind Kind, out interface{}) (bool, error)

	// HasActiveShare reports whether the customer already owns a
	// non-deleted MasterKey in any session.
	HasActiveShare(ctx context.Context, customerID string) (bool, error)

	// MarkDeleted flags an existing MasterKey record as deleted without
	// removing it, so it no longer counts toward the active-share guard.
	MarkDeleted(ctx context.Context, customerID, sessionID string, kind Kind) error
}

func marshalRecord(value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record{Value: raw})
}

func unmarshalRecord(data []byte, out interface{}) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	return json.Unmarshal(rec.Value, out)
}
