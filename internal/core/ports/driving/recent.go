package driving

import (
	"context"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// RecentService tracks recently opened documents.
type RecentService interface {
	// Record remembers that a document was viewed at page and zoom.
	Record(ctx context.Context, info domain.DocumentInfo, page int, zoom float64) error

	// Last returns the entry for path, or domain.ErrNotFound.
	Last(ctx context.Context, path string) (*domain.RecentDocument, error)

	// List returns recently opened documents, newest first.
	List(ctx context.Context, limit int) ([]domain.RecentDocument, error)

	// Clear forgets all recent documents.
	Clear(ctx context.Context) error
}
