package mpc

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
)

// RandomBytes returns n cryptographically random bytes, used throughout this
// package as commitment blinding factors.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Commit produces a SHA-256 hash commitment to msg under blind.
func Commit(msg, blind []byte) []byte {
	h := sha256.New()
	h.Write(msg)
	h.Write(blind)
	return h.Sum(nil)
}

// VerifyCommit reports whether commitment opens to msg under blind.
func VerifyCommit(commitment, msg, blind []byte) bool {
	return subtle.ConstantTimeCompare(commitment, Commit(msg, blind)) == 1
}
