package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/cloneai/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetMissing(t *testing.T) {
	store := NewKVStore(NewTestDB(t))

	_, err := store.Get(context.Background(), "cloneai_projects")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKVStore_SetOverwrites(t *testing.T) {
	store := NewKVStore(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", `[{"id":"a"}]`))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"a"}]`, value)

	require.NoError(t, store.Set(ctx, "k", `[]`))
	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `[]`, value)

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestKVStore_KeysAreIndependent(t *testing.T) {
	store := NewKVStore(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "1", a)
	require.Equal(t, "2", b)
}
