// Package ecdsaproto is the protocol orchestrator: the state machine that
// drives the key generation, signing, and rotation protocols across their
// HTTP round trips, loading and persisting typed artifacts between requests
// and invoking the mpc primitive library at each round.
package ecdsaproto

// AuthError means the caller's bearer token was missing or invalid. Maps to
// HTTP 401. No side effects.
type AuthError struct{ Reason string }

func (e *AuthError) Error() string { return "auth: " + e.Reason }

// NotFoundError means an artifact required for this round is missing for
// the given (customer, session, kind) — an out-of-order call, a wrong
// session id, or a session belonging to another customer. Maps to HTTP 400.
type NotFoundError struct{ Reason string }

func (e *NotFoundError) Error() string { return "not found: " + e.Reason }

// StorageError means the persistence backend failed. Maps to HTTP 500. May
// leave a partial write; safe to retry only for rounds that are
// deterministic given their prior persisted inputs.
type StorageError struct{ Err error }

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// CryptoError means a primitive in the mpc library reported a verification
// failure: a PDL mismatch, an invalid signature share, or a failed rotation
// check. Maps to HTTP 400 and is fatal for the session.
type CryptoError struct{ Reason string }

func (e *CryptoError) Error() string { return "crypto: " + e.Reason }

// AlreadyActiveError is the active-share guard's rejection at the first
// key-generation round. Maps to HTTP 400. No side effects: no session is
// allocated.
type AlreadyActiveError struct{ CustomerID string }

func (e *AlreadyActiveError) Error() string {
	return "customer already has an active master key: " + e.CustomerID
}
