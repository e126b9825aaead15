package driven

import (
	"context"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// DocumentRenderer is the document-rendering collaborator.
// It turns a file path into an open Document.
type DocumentRenderer interface {
	// Open opens the document at path.
	// Failures are returned as *domain.OpenError.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is one open document.
// Page indices are zero-based.
type Document interface {
	// PageCount returns the number of pages (>= 0).
	PageCount() int

	// PageSize returns the page size in document units.
	PageSize(ctx context.Context, page int) (domain.PageSize, error)

	// Render rasterises a page. Pixel (x, y) of the result corresponds to
	// document point (x/scale, y/scale).
	// Failures are returned as *domain.RenderError.
	Render(ctx context.Context, page int, scale float64) (*domain.RasterImage, error)

	// WordBoxes returns the page's words in reading order
	// (rows top-to-bottom, words left-to-right), in document space.
	WordBoxes(ctx context.Context, page int) ([]domain.WordBox, error)

	// Close releases resources held by the document.
	Close() error
}
