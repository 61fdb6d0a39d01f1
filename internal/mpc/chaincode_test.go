package mpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainCodeRoundTripProducesAgreeingCode(t *testing.T) {
	party2Seed, err := RandomScalar()
	require.NoError(t, err)
	party2Point := ScalarBaseMul(party2Seed)

	_, witness, err := ChainCodeFirst()
	require.NoError(t, err)

	_, _, chainCode, err := ChainCodeSecond(witness, party2Point)
	require.NoError(t, err)
	assert.Len(t, chainCode, 32)
}

func TestDeriveChildPreservesPartyTwoShareAndShiftsJointKey(t *testing.T) {
	priv, err := GeneratePaillierKeyPair(testPaillierBits)
	require.NoError(t, err)

	x1, err := RandomScalar()
	require.NoError(t, err)
	x2, err := RandomScalar()
	require.NoError(t, err)

	ciphertext, _, err := priv.Encrypt(x1.BigInt())
	require.NoError(t, err)

	party1Priv := &Party1Private{SecretShare: x1, Paillier: priv, EncryptedSecretShare: ciphertext}
	chainCode := []byte("0123456789abcdef0123456789abcdef")[:32]

	mk := NewMasterKey(party1Priv, ScalarBaseMul(x1), ScalarBaseMul(x2), chainCode)

	child, err := mk.DeriveChild(7)
	require.NoError(t, err)

	// Party 2's public share is untouched by a non-hardened derivation.
	assert.True(t, child.Party2Public.Equal(mk.Party2Public))

	// Party 1's re-derived share must still match its re-derived public
	// share, and the joint key must be their sum.
	assert.True(t, ScalarBaseMul(child.Party1.SecretShare).Equal(child.Party1Public))
	assert.True(t, child.JointPublic.Equal(child.Party1Public.Add(child.Party2Public)))

	// Deriving the same index twice from the same parent is deterministic.
	again, err := mk.DeriveChild(7)
	require.NoError(t, err)
	assert.True(t, again.Party1Public.Equal(child.Party1Public))

	// A different index produces a different child share.
	other, err := mk.DeriveChild(8)
	require.NoError(t, err)
	assert.False(t, other.Party1Public.Equal(child.Party1Public))
}
