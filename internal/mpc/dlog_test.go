package mpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDLogProofVerifies(t *testing.T) {
	x, err := RandomScalar()
	require.NoError(t, err)

	proof, err := ProveDLog(x)
	require.NoError(t, err)

	assert.True(t, proof.Verify())
}

func TestDLogProofRejectsTamperedResponse(t *testing.T) {
	x, err := RandomScalar()
	require.NoError(t, err)

	proof, err := ProveDLog(x)
	require.NoError(t, err)

	other, err := RandomScalar()
	require.NoError(t, err)
	proof.Response = other

	assert.False(t, proof.Verify())
}

func TestCommitVerify(t *testing.T) {
	msg := []byte("alpha")
	blind, err := RandomBytes(32)
	require.NoError(t, err)

	commitment := Commit(msg, blind)

	assert.True(t, VerifyCommit(commitment, msg, blind))
	assert.False(t, VerifyCommit(commitment, []byte("beta"), blind))
}
