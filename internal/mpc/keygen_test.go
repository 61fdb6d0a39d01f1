package mpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// party2Double is a minimal stand-in for the client side of the protocol,
// used only to drive party 1's functions through a full round trip in
// tests.
type party2Double struct {
	secretShare *Scalar
	challenge   []byte
	blind       []byte
}

func newParty2Double(t *testing.T) *party2Double {
	t.Helper()
	x2, err := RandomScalar()
	require.NoError(t, err)
	return &party2Double{secretShare: x2}
}

func (p *party2Double) dlogProof(t *testing.T) *DLogProof {
	t.Helper()
	proof, err := ProveDLog(p.secretShare)
	require.NoError(t, err)
	return proof
}

func (p *party2Double) pdlFirstMessage(t *testing.T) *Party2PDLFirstMessage {
	t.Helper()
	challenge, err := RandomBytes(32)
	require.NoError(t, err)
	blind, err := RandomBytes(32)
	require.NoError(t, err)
	p.challenge, p.blind = challenge, blind
	return &Party2PDLFirstMessage{Commitment: Commit(challenge, blind)}
}

func (p *party2Double) pdlSecondMessage() *Party2PDLSecondMessage {
	return &Party2PDLSecondMessage{Challenge: p.challenge, Blind: p.blind}
}

func TestKeygenFullRoundTrip(t *testing.T) {
	party2 := newParty2Double(t)

	firstMsg, witness, keypair, err := KeygenFirst()
	require.NoError(t, err)
	assert.NotEmpty(t, firstMsg.Commitment)

	secondMsg, _, priv, err := KeygenSecond(witness, keypair, party2.dlogProof(t))
	require.NoError(t, err)
	assert.NotNil(t, secondMsg.PaillierPub)

	party2First := party2.pdlFirstMessage(t)
	thirdMsg, decommit, alpha, err := KeygenThird(party2First, priv)
	require.NoError(t, err)
	assert.NotEmpty(t, thirdMsg.Commitment)

	fourthMsg, err := KeygenFourth(party2First, party2.pdlSecondMessage(), priv, decommit, alpha)
	require.NoError(t, err)

	// The PDL claim: alpha*G must equal party 1's public share.
	assert.True(t, ScalarBaseMul(fourthMsg.Alpha).Equal(keypair.PublicShare))
}

func TestKeygenFourthRejectsTamperedChallenge(t *testing.T) {
	party2 := newParty2Double(t)

	_, witness, keypair, err := KeygenFirst()
	require.NoError(t, err)

	_, _, priv, err := KeygenSecond(witness, keypair, party2.dlogProof(t))
	require.NoError(t, err)

	party2First := party2.pdlFirstMessage(t)
	_, decommit, alpha, err := KeygenThird(party2First, priv)
	require.NoError(t, err)

	tampered := &Party2PDLSecondMessage{Challenge: []byte("not-the-committed-value"), Blind: party2.blind}
	_, err = KeygenFourth(party2First, tampered, priv, decommit, alpha)
	assert.ErrorIs(t, err, ErrVerification)
}
