// Package mpc implements the cryptographic primitive library consumed by
// the protocol orchestrator: secp256k1 arithmetic, Paillier encryption,
// commitments, Schnorr-style discrete-log proofs, and the named two-party
// keygen/sign/rotate operations. The orchestrator treats this package as a
// black box exposing exactly the operations it needs; this package owns
// their concrete math.
package mpc

import "errors"

// ErrVerification is returned whenever a primitive's internal consistency
// check (a decommitment, a DLog proof, a PDL check) fails. The orchestrator
// maps this to the CryptoError class (400, fatal for the session).
var ErrVerification = errors.New("mpc: verification failed")
