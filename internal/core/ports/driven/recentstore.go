package driven

import (
	"context"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// RecentStore persists the recently opened documents list.
type RecentStore interface {
	// Touch inserts or updates the entry for doc.Path.
	Touch(ctx context.Context, doc domain.RecentDocument) error

	// Get returns the entry for path, or domain.ErrNotFound.
	Get(ctx context.Context, path string) (*domain.RecentDocument, error)

	// List returns at most limit entries, most recently opened first.
	// A limit <= 0 returns all entries.
	List(ctx context.Context, limit int) ([]domain.RecentDocument, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
