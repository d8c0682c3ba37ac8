package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/cloneai/internal/domain/project"
	"github.com/rpggio/cloneai/internal/persistence"
	"github.com/rpggio/cloneai/internal/repository"
	"github.com/rpggio/cloneai/internal/repository/mocks"
	"github.com/rpggio/cloneai/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func newAdapter(t *testing.T) *persistence.Adapter {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return persistence.NewAdapter(sqlite.NewKVStore(db))
}

func TestAdapter_LoadMissing(t *testing.T) {
	projects, err := newAdapter(t).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, projects)
	require.Empty(t, projects)
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := newAdapter(t)

	cases := [][]project.Project{
		{},
		{{ID: "a", Name: "New Clone", Code: "<div/>", Timestamp: 1}},
		{
			{ID: "b", Name: "https://apple.com", URL: "https://apple.com", Description: "", Code: "const A = () => <p>\"q\" & 'a'</p>;", Analysis: "## Palette", Timestamp: 1730000000123},
			{ID: "a", Name: "日本語", Description: "日本語", ImageURL: "data:image/png;base64,iVBORw0KGgo=", Code: "x", Timestamp: 1730000000000},
		},
	}

	for _, want := range cases {
		require.NoError(t, adapter.Save(ctx, want))
		got, err := adapter.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestAdapter_RoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	adapter := newAdapter(t)
	store := project.NewStore(adapter, nil)

	require.NoError(t, store.Insert(ctx, project.Project{ID: "a", Code: "1", Timestamp: 1}))
	require.NoError(t, store.Insert(ctx, project.Project{ID: "b", Code: "2", Timestamp: 2}))
	require.NoError(t, store.Insert(ctx, project.Project{ID: "c", Code: "3", Timestamp: 3}))
	_, err := store.Remove(ctx, "b")
	require.NoError(t, err)

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, store.List(), loaded)
}

func TestAdapter_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.KVStore{}
	kv.On("Get", ctx, persistence.ProjectsKey).Return("{not json", nil)

	_, err := persistence.NewAdapter(kv).Load(ctx)
	require.ErrorIs(t, err, persistence.ErrCorrupt)
}

func TestAdapter_LoadEmptyValue(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.KVStore{}
	kv.On("Get", ctx, persistence.ProjectsKey).Return("   ", nil)

	projects, err := persistence.NewAdapter(kv).Load(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestAdapter_LoadStoreFailure(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.KVStore{}
	kv.On("Get", ctx, persistence.ProjectsKey).Return("", errors.New("disk gone"))

	_, err := persistence.NewAdapter(kv).Load(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, persistence.ErrCorrupt)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestAdapter_SaveWritesFixedKey(t *testing.T) {
	ctx := context.Background()
	kv := &mocks.KVStore{}
	kv.On("Set", ctx, persistence.ProjectsKey, `[{"id":"a","name":"n","description":"","code":"c","timestamp":5}]`).Return(nil)

	err := persistence.NewAdapter(kv).Save(ctx, []project.Project{{ID: "a", Name: "n", Code: "c", Timestamp: 5}})
	require.NoError(t, err)
	kv.AssertExpectations(t)
}
