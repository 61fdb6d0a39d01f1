package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jaydenbeard/gotham-ecdsa/internal/metrics"
)

// Local is a single-process, in-memory persistence backend. It is used for
// development and tests; it round-trips every value through JSON so
// serialization bugs surface the same way they would against the Cloud
// backend.
type Local struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewLocal creates an empty Local store.
func NewLocal() *Local {
	return &Local{data: make(map[string][]byte)}
}

func localKey(customerID, sessionID string, kind Kind) string {
	return customerID + "\x00" + sessionID + "\x00" + string(kind)
}

func (l *Local) Insert(_ context.Context, customerID, sessionID string, kind Kind, value interface{}) (err error) {
	defer func() { metrics.RecordStorageOp("local", "insert", err) }()

	raw, err := marshalRecord(value)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[localKey(customerID, sessionID, kind)] = raw
	return nil
}

func (l *Local) Get(_ context.Context, customerID, sessionID string, kind Kind, out interface{}) (found bool, err error) {
	defer func() { metrics.RecordStorageOp("local", "get", err) }()

	l.mu.RLock()
	raw, ok := l.data[localKey(customerID, sessionID, kind)]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := unmarshalRecord(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveShare always reports false: the local backend has no durable
// cross-session index and exists only for dev/test, where the guard is
// expected to be disabled.
func (l *Local) HasActiveShare(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// MarkDeleted flips the is_deleted flag on an existing record in place.
func (l *Local) MarkDeleted(_ context.Context, customerID, sessionID string, kind Kind) error {
	key := localKey(customerID, sessionID, kind)

	l.mu.Lock()
	defer l.mu.Unlock()
	raw, ok := l.data[key]
	if !ok {
		return ErrNotFound
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	rec.IsDeleted = true
	out, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	l.data[key] = out
	return nil
}
