package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

func TestRecentCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("recent")

	require.NoError(t, err)
	assert.Contains(t, out, "No recent documents.")
}

func TestRecentCmd_Lists(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	opened := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, env.recent.Touch(t.Context(), domain.RecentDocument{
		Path: testPath, PageCount: 2, LastPage: 1, Zoom: 1.5, OpenedAt: opened,
	}))

	out, err := execute("recent")

	require.NoError(t, err)
	assert.Contains(t, out, " 1. "+testPath)
	assert.Contains(t, out, "page 2/2 at 150%")
	assert.Contains(t, out, "2026-03-01 09:30:00")
}

func TestRecentCmd_Limit(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	now := time.Now()
	for i, path := range []string{"/a.pdf", "/b.pdf", "/c.pdf"} {
		require.NoError(t, env.recent.Touch(t.Context(), domain.RecentDocument{
			Path: path, PageCount: 1, Zoom: 1, OpenedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := execute("recent", "-n", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "/c.pdf")
	assert.Contains(t, out, "/b.pdf")
	assert.NotContains(t, out, "/a.pdf")
}

func TestRecentCmd_Clear(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, env.recent.Touch(t.Context(), domain.RecentDocument{
		Path: testPath, PageCount: 2, Zoom: 1, OpenedAt: time.Now(),
	}))

	out, err := execute("recent", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent documents cleared.")

	docs, err := env.recent.List(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
