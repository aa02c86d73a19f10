package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/backend/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := models.NewConversationState("s1")
	state.Turn = 2
	state.Pool = []string{"c1", "c2"}
	require.NoError(t, store.Put(ctx, state))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Turn)
	assert.Equal(t, []string{"c1", "c2"}, got.Pool)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesOnReadAndWrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := models.NewConversationState("s1")
	state.Pool = []string{"c1"}
	require.NoError(t, store.Put(ctx, state))

	// Mutating the caller's copy must not leak into the store.
	state.Pool[0] = "mutated"

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, got.Pool)

	// Neither must mutating a returned copy.
	got.Pool[0] = "mutated"
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, again.Pool)
}

func TestMemoryStoreSessionsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := models.NewConversationState("a")
	a.Pool = []string{"c1"}
	b := models.NewConversationState("b")
	b.Pool = []string{"c2"}

	require.NoError(t, store.Put(ctx, a))
	require.NoError(t, store.Put(ctx, b))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, got.Pool)
}
