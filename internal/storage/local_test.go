package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name string `json:"name"`
}

func TestLocalInsertGetRoundTrip(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "alice", "sess-1", KindMasterKey, widget{Name: "first"}))

	var out widget
	found, err := store.Get(ctx, "alice", "sess-1", KindMasterKey, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", out.Name)
}

func TestLocalGetMissingReportsNotFound(t *testing.T) {
	store := NewLocal()
	var out widget
	found, err := store.Get(context.Background(), "alice", "sess-1", KindMasterKey, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalInsertOverwritesPriorValue(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "alice", "sess-1", KindAlpha, widget{Name: "old"}))
	require.NoError(t, store.Insert(ctx, "alice", "sess-1", KindAlpha, widget{Name: "new"}))

	var out widget
	found, err := store.Get(ctx, "alice", "sess-1", KindAlpha, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", out.Name)
}

func TestLocalHasActiveShareAlwaysFalse(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, "alice", "sess-1", KindMasterKey, widget{Name: "x"}))

	active, err := store.HasActiveShare(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestLocalMarkDeletedFlipsFlag(t *testing.T) {
	store := NewLocal()
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, "alice", "sess-1", KindMasterKey, widget{Name: "x"}))

	require.NoError(t, store.MarkDeleted(ctx, "alice", "sess-1", KindMasterKey))

	raw, ok := store.data[localKey("alice", "sess-1", KindMasterKey)]
	require.True(t, ok)

	var rec record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.True(t, rec.IsDeleted)
}

func TestLocalMarkDeletedMissingReturnsErrNotFound(t *testing.T) {
	store := NewLocal()
	err := store.MarkDeleted(context.Background(), "alice", "sess-1", KindMasterKey)
	assert.ErrorIs(t, err, ErrNotFound)
}
