package ecdsaproto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaydenbeard/gotham-ecdsa/internal/mpc"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

// runRotation drives R1-R4 to completion for an already-keygen'd session.
func runRotation(t *testing.T, orch *Orchestrator, customerID, sessionID string, party2 *party2Sim) {
	t.Helper()
	ctx := context.Background()

	_, err := orch.RotateFirst(ctx, customerID, sessionID)
	require.NoError(t, err)

	party2Random, err := mpc.RandomScalar()
	require.NoError(t, err)

	_, err = orch.RotateSecond(ctx, customerID, sessionID, &Party2CoinFlipFirst{Random: party2Random})
	require.NoError(t, err)

	party2First := party2.pdlFirstMessage()
	_, err = orch.RotateThird(ctx, customerID, sessionID, party2First)
	require.NoError(t, err)

	_, err = orch.RotateFourth(ctx, customerID, sessionID, party2.pdlSecondMessage())
	require.NoError(t, err)
}

func TestRotateRoundTripChangesShareButSignsSamePublicKey(t *testing.T) {
	store := storage.NewLocal()
	orch := New(store, false)
	ctx := context.Background()

	sessionID, party2 := runKeygen(t, orch, "alice")

	var before mpc.MasterKey
	found, err := store.Get(ctx, "alice", sessionID, storage.KindMasterKey, &before)
	require.NoError(t, err)
	require.True(t, found)

	runRotation(t, orch, "alice", sessionID, party2)

	var after mpc.MasterKey
	found, err = store.Get(ctx, "alice", sessionID, storage.KindMasterKey, &after)
	require.NoError(t, err)
	require.True(t, found)

	assert.False(t, after.Party1.SecretShare.Equal(before.Party1.SecretShare))
	assert.True(t, after.JointPublic.Equal(before.JointPublic))

	sig := runSign(t, orch, "alice", sessionID, party2, 0, 0)
	assert.NotNil(t, sig.R)
}

func TestRotateFourthFailureLeavesOldMasterKeyIntact(t *testing.T) {
	store := storage.NewLocal()
	orch := New(store, false)
	ctx := context.Background()

	sessionID, party2 := runKeygen(t, orch, "alice")

	var before mpc.MasterKey
	found, err := store.Get(ctx, "alice", sessionID, storage.KindMasterKey, &before)
	require.NoError(t, err)
	require.True(t, found)

	_, err = orch.RotateFirst(ctx, "alice", sessionID)
	require.NoError(t, err)

	party2Random, err := mpc.RandomScalar()
	require.NoError(t, err)
	_, err = orch.RotateSecond(ctx, "alice", sessionID, &Party2CoinFlipFirst{Random: party2Random})
	require.NoError(t, err)

	party2First := party2.pdlFirstMessage()
	_, err = orch.RotateThird(ctx, "alice", sessionID, party2First)
	require.NoError(t, err)

	tampered := &mpc.Party2PDLSecondMessage{Challenge: []byte("not-the-committed-value"), Blind: party2.pdlBlind}
	_, err = orch.RotateFourth(ctx, "alice", sessionID, tampered)
	var cryptoErr *CryptoError
	assert.ErrorAs(t, err, &cryptoErr)

	var after mpc.MasterKey
	found, err = store.Get(ctx, "alice", sessionID, storage.KindMasterKey, &after)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, after.Party1.SecretShare.Equal(before.Party1.SecretShare))

	// The old key still signs correctly after a failed rotation attempt.
	sig := runSign(t, orch, "alice", sessionID, party2, 0, 0)
	assert.NotNil(t, sig.R)
}
