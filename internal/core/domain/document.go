package domain

import (
	"image"
	"time"
)

// DocumentInfo describes an open document.
type DocumentInfo struct {
	// ID identifies this open instance. Reopening the same file yields a new ID.
	ID string

	// Path is the file the document was opened from.
	Path string

	// PageCount is the number of pages (>= 0).
	PageCount int
}

// PageID identifies one page of one open document.
// It is the key of the word index cache.
type PageID struct {
	DocumentID string
	Index      int
}

// RasterImage is a page rendered at a given scale.
// Image pixel (x, y) corresponds to document point (x/Scale, y/Scale).
type RasterImage struct {
	Page  int
	Scale float64
	Image image.Image
}

// Width returns the image width in pixels.
func (r *RasterImage) Width() int {
	if r == nil || r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (r *RasterImage) Height() int {
	if r == nil || r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dy()
}

// RecentDocument is an entry of the recently opened documents list.
type RecentDocument struct {
	// Path is the absolute file path.
	Path string

	// PageCount is the page count at the last open.
	PageCount int

	// LastPage is the page shown when the document was last viewed.
	LastPage int

	// Zoom is the zoom factor when the document was last viewed.
	Zoom float64

	// OpenedAt is when the document was last opened.
	OpenedAt time.Time
}

// ViewerState is the explicit viewer state owned by ViewerService:
// the open document, the displayed page and the zoom.
type ViewerState struct {
	// Document is nil when nothing is open.
	Document *DocumentInfo

	// Page is the zero-based index of the displayed page.
	Page int

	// Zoom is the current zoom factor and scroll offset.
	Zoom ZoomState
}

// PageID returns the word index key of the displayed page.
func (s ViewerState) PageID() PageID {
	if s.Document == nil {
		return PageID{Index: s.Page}
	}
	return PageID{DocumentID: s.Document.ID, Index: s.Page}
}

// RenderRequest captures the state a render was requested for.
// A rendered image is only applied if the request is still current.
type RenderRequest struct {
	// Generation increases with every request; the newest one wins.
	Generation uint64

	DocumentID string
	Page       int
	Zoom       ZoomState
}
