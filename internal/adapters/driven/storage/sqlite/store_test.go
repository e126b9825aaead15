package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "lasso.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.RecentStore().Touch(context.Background(), domain.RecentDocument{Path: "a.pdf"}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)

	_, err = second.RecentStore().Get(context.Background(), "a.pdf")
	assert.NoError(t, err)
}

func TestRecentStore_TouchAndGet(t *testing.T) {
	ctx := context.Background()
	recent := setupTestStore(t).RecentStore()
	opened := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, recent.Touch(ctx, domain.RecentDocument{
		Path: "/docs/report.pdf", PageCount: 12, LastPage: 3, Zoom: 1.44, OpenedAt: opened,
	}))

	got, err := recent.Get(ctx, "/docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, 12, got.PageCount)
	assert.Equal(t, 3, got.LastPage)
	assert.InDelta(t, 1.44, got.Zoom, 1e-9)
	assert.True(t, opened.Equal(got.OpenedAt))
}

func TestRecentStore_TouchUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	recent := setupTestStore(t).RecentStore()

	require.NoError(t, recent.Touch(ctx, domain.RecentDocument{Path: "a.pdf", LastPage: 0, Zoom: 1}))
	require.NoError(t, recent.Touch(ctx, domain.RecentDocument{Path: "a.pdf", LastPage: 5, Zoom: 2}))

	got, err := recent.Get(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, 5, got.LastPage)
	assert.InDelta(t, 2.0, got.Zoom, 1e-9)

	docs, err := recent.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestRecentStore_Get_NotFound(t *testing.T) {
	_, err := setupTestStore(t).RecentStore().Get(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecentStore_Touch_EmptyPath(t *testing.T) {
	err := setupTestStore(t).RecentStore().Touch(context.Background(), domain.RecentDocument{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecentStore_List_OrderAndLimit(t *testing.T) {
	ctx := context.Background()
	recent := setupTestStore(t).RecentStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, path := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		require.NoError(t, recent.Touch(ctx, domain.RecentDocument{
			Path: path, OpenedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	docs, err := recent.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "third.pdf", docs[0].Path)
	assert.Equal(t, "second.pdf", docs[1].Path)
	assert.Equal(t, "first.pdf", docs[2].Path)

	docs, err = recent.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "third.pdf", docs[0].Path)
}

func TestRecentStore_Clear(t *testing.T) {
	ctx := context.Background()
	recent := setupTestStore(t).RecentStore()
	require.NoError(t, recent.Touch(ctx, domain.RecentDocument{Path: "a.pdf"}))

	require.NoError(t, recent.Clear(ctx))

	docs, err := recent.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
