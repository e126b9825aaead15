package driving

import (
	"context"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

// ViewerService is the interface the UI layer drives.
// It is not safe for concurrent use; callers serialise access on their
// event loop and only run Render and PrefetchWords off it.
type ViewerService interface {
	// Open opens a document, replacing any open one.
	// The word index is invalidated and the selection reset.
	Open(ctx context.Context, path string) (*domain.DocumentInfo, error)

	// Reload reopens the current document from disk, keeping page and zoom
	// where possible.
	Reload(ctx context.Context) (*domain.DocumentInfo, error)

	// Close closes the open document.
	Close() error

	// Document returns the open document, or nil.
	Document() *domain.DocumentInfo

	// State returns the current viewer state.
	State() domain.ViewerState

	// PageSize returns the size of the displayed page.
	PageSize(ctx context.Context) (domain.PageSize, error)

	// PageChange displays page index and resets the selection.
	PageChange(index int) error

	// NextPage and PrevPage move one page; they report false at the bounds.
	NextPage() bool
	PrevPage() bool

	// ZoomChange sets the zoom factor and resets the selection.
	ZoomChange(factor float64) error

	// ZoomIn and ZoomOut multiply or divide the factor by the zoom step.
	ZoomIn() error
	ZoomOut() error

	// Scroll moves the document origin by (dx, dy) viewport pixels.
	Scroll(dx, dy float64)

	// SetScroll places the document origin at p in viewport pixels.
	SetScroll(p domain.Point)

	// PointerDown, PointerMove and PointerUp drive the selection session
	// with viewport coordinates.
	PointerDown(p domain.Point)
	PointerMove(p domain.Point)
	PointerUp(p domain.Point)

	// SelectRect commits a selection over rect without a drag. Document
	// space rects are used exactly as given.
	SelectRect(rect domain.Rect)

	// Selection returns a snapshot of the selection session.
	Selection() domain.Selection

	// CurrentHighlightRegions returns highlighted word boxes in viewport space.
	CurrentHighlightRegions() []domain.Rect

	// CurrentExtractedText returns the committed selection text.
	CurrentExtractedText() string

	// CopySelection publishes the committed text to the clipboard again.
	CopySelection() error

	// EnsureWords loads the displayed page's words into the word index.
	EnsureWords(ctx context.Context) error

	// PageWords returns the displayed page's words, loading them if needed.
	PageWords(ctx context.Context) ([]domain.WordBox, error)

	// PrefetchWords loads the words of page id into the word index,
	// extracting each page at most once. It may run off the event loop.
	PrefetchWords(ctx context.Context, id domain.PageID) ([]domain.WordBox, error)

	// StoreWords caches prefetched words unless the page already has an
	// entry. It reports false when the page belongs to a document that is
	// no longer open.
	StoreWords(id domain.PageID, words []domain.WordBox) bool

	// BeginRender captures a render request for the displayed page and
	// cancels the previous in-flight render.
	BeginRender(ctx context.Context) (context.Context, domain.RenderRequest, error)

	// Render rasterises the page of req. It may run off the event loop.
	Render(ctx context.Context, req domain.RenderRequest) (*domain.RasterImage, error)

	// CommitRender applies img if req is still current and reports whether
	// it was applied.
	CommitRender(req domain.RenderRequest, img *domain.RasterImage) bool

	// CurrentRaster returns the last applied raster, or nil.
	CurrentRaster() *domain.RasterImage
}
