package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

func TestRecentStore_TouchAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewRecentStore()

	doc := domain.RecentDocument{Path: "/tmp/a.pdf", PageCount: 3, LastPage: 1, Zoom: 1.5, OpenedAt: time.Now()}
	require.NoError(t, store.Touch(ctx, doc))

	got, err := store.Get(ctx, "/tmp/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, got.LastPage)
	assert.Equal(t, 1.5, got.Zoom)

	doc.LastPage = 2
	require.NoError(t, store.Touch(ctx, doc))
	got, err = store.Get(ctx, "/tmp/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, got.LastPage)
}

func TestRecentStore_Get_NotFound(t *testing.T) {
	_, err := NewRecentStore().Get(context.Background(), "/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecentStore_Touch_EmptyPath(t *testing.T) {
	err := NewRecentStore().Touch(context.Background(), domain.RecentDocument{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecentStore_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRecentStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Touch(ctx, domain.RecentDocument{Path: "old.pdf", OpenedAt: base}))
	require.NoError(t, store.Touch(ctx, domain.RecentDocument{Path: "new.pdf", OpenedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Touch(ctx, domain.RecentDocument{Path: "mid.pdf", OpenedAt: base.Add(time.Minute)}))

	docs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "new.pdf", docs[0].Path)
	assert.Equal(t, "mid.pdf", docs[1].Path)
	assert.Equal(t, "old.pdf", docs[2].Path)

	docs, err = store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRecentStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewRecentStore()
	require.NoError(t, store.Touch(ctx, domain.RecentDocument{Path: "a.pdf"}))

	require.NoError(t, store.Clear(ctx))

	docs, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
