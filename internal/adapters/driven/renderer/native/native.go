// Package native extracts word boxes in pure Go with github.com/ledongthuc/pdf.
// It has no rasteriser of its own; rendering is delegated to another
// driven.DocumentRenderer, usually the poppler one.
package native

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/logger"
)

// Ensure Renderer implements the interface.
var (
	_ driven.DocumentRenderer = (*Renderer)(nil)
	_ driven.Document         = (*Document)(nil)
)

// Renderer opens documents with the pure Go PDF reader.
type Renderer struct {
	raster driven.DocumentRenderer
	layout Layout
}

// New creates a renderer. raster is used for Render and may be nil,
// in which case rendering fails with domain.ErrRenderUnsupported.
func New(raster driven.DocumentRenderer) *Renderer {
	return &Renderer{raster: raster, layout: DefaultLayout()}
}

// Open parses the document at path.
func (r *Renderer) Open(_ context.Context, path string) (driven.Document, error) {
	f, reader, err := openPDF(path)
	if err != nil {
		return nil, &domain.OpenError{Path: path, Err: err}
	}

	boxes, err := pageBoxes(reader)
	if err != nil {
		f.Close()
		return nil, &domain.OpenError{Path: path, Err: err}
	}
	logger.Debug("native: %s has %d pages", path, len(boxes))

	return &Document{
		path:   path,
		file:   f,
		reader: reader,
		boxes:  boxes,
		layout: r.layout,
		raster: r.raster,
	}, nil
}

// openPDF opens path, turning parser panics on malformed files into errors.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.Open(path)
}

// Document is a document opened with the pure Go reader.
type Document struct {
	path   string
	layout Layout
	boxes  []pageBox

	// mu serialises access to the reader, which is not safe for
	// concurrent use, and guards the raster document.
	mu     sync.Mutex
	file   *os.File
	reader *pdf.Reader
	closed bool

	raster    driven.DocumentRenderer
	rasterDoc driven.Document
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.boxes)
}

// PageSize returns the size of page in points.
func (d *Document) PageSize(_ context.Context, page int) (domain.PageSize, error) {
	if err := d.checkPage(page); err != nil {
		return domain.PageSize{}, err
	}
	return d.boxes[page].size(), nil
}

// Render delegates to the raster renderer.
func (d *Document) Render(ctx context.Context, page int, scale float64) (*domain.RasterImage, error) {
	if err := d.checkPage(page); err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}
	if d.raster == nil {
		return nil, &domain.RenderError{Page: page, Err: domain.ErrRenderUnsupported}
	}

	raster, err := d.rasterDocument(ctx)
	if err != nil {
		return nil, &domain.RenderError{Page: page, Err: err}
	}
	return raster.Render(ctx, page, scale)
}

// rasterDocument opens the raster document on first use. The open outlives
// the render that triggers it, so it ignores ctx cancellation. Failures are
// not remembered and the next render tries again.
func (d *Document) rasterDocument(ctx context.Context) (driven.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, os.ErrClosed
	}
	if d.rasterDoc != nil {
		return d.rasterDoc, nil
	}
	doc, err := d.raster.Open(context.WithoutCancel(ctx), d.path)
	if err != nil {
		return nil, err
	}
	d.rasterDoc = doc
	return doc, nil
}

// WordBoxes extracts the words of page from its content stream.
func (d *Document) WordBoxes(ctx context.Context, page int) ([]domain.WordBox, error) {
	if err := d.checkPage(page); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts, err := d.glyphs(page)
	if err != nil {
		return nil, fmt.Errorf("extract words: page %d: %w", page+1, err)
	}
	return d.layout.Words(texts, d.boxes[page]), nil
}

// Close closes the file and any raster document.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	var err error
	if d.rasterDoc != nil {
		err = d.rasterDoc.Close()
		d.rasterDoc = nil
	}
	if d.file != nil {
		if cerr := d.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		d.file = nil
	}
	return err
}

// glyphs reads the positioned glyphs of page. The reader panics on some
// malformed content streams; those become errors.
func (d *Document) glyphs(page int) (texts []pdf.Text, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed content stream: %v", p)
		}
	}()
	return d.reader.Page(page + 1).Content().Text, nil
}

func (d *Document) checkPage(page int) error {
	if page < 0 || page >= len(d.boxes) {
		return fmt.Errorf("page %d of %d: %w", page+1, len(d.boxes), domain.ErrPageOutOfRange)
	}
	return nil
}
