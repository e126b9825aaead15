package mcp

import (
	"context"
	"errors"
	"image"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/services"
)

// --- Mock implementations ---

// mockDocument implements driven.Document with a fixed layout.
type mockDocument struct {
	pages    [][]domain.WordBox
	wordsErr error
}

func (m *mockDocument) PageCount() int { return len(m.pages) }

func (m *mockDocument) PageSize(_ context.Context, _ int) (domain.PageSize, error) {
	return domain.PageSize{Width: 612, Height: 792}, nil
}

func (m *mockDocument) Render(_ context.Context, page int, scale float64) (*domain.RasterImage, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(612*scale), int(792*scale)))
	return &domain.RasterImage{Page: page, Scale: scale, Image: img}, nil
}

func (m *mockDocument) WordBoxes(_ context.Context, page int) ([]domain.WordBox, error) {
	if m.wordsErr != nil {
		return nil, m.wordsErr
	}
	return m.pages[page], nil
}

func (m *mockDocument) Close() error { return nil }

// mockRenderer implements driven.DocumentRenderer over a set of paths.
type mockRenderer struct {
	docs map[string]*mockDocument
}

func (m *mockRenderer) Open(_ context.Context, path string) (driven.Document, error) {
	doc, ok := m.docs[path]
	if !ok {
		return nil, &domain.OpenError{Path: path, Err: errors.New("no such file")}
	}
	return doc, nil
}

func testWord(text string, x0, y0, x1, y1 float64) domain.WordBox {
	return domain.WordBox{
		Rect: domain.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, Space: domain.SpaceDocument},
		Text: text,
	}
}

// newTestServer returns a server whose viewer knows "/docs/report.pdf",
// a two page document with "Hello World" on page 1 and "Second" on page 2.
func newTestServer() (*Server, *mockDocument) {
	doc := &mockDocument{pages: [][]domain.WordBox{
		{testWord("Hello", 10, 10, 40, 20), testWord("World", 50, 10, 80, 20)},
		{testWord("Second", 10, 10, 60, 20)},
	}}
	renderer := &mockRenderer{docs: map[string]*mockDocument{"/docs/report.pdf": doc}}

	settings := domain.DefaultViewerSettings()
	settings.Selection.CopyOnRelease = false
	viewer := services.NewViewerService(renderer, settings)

	server, err := NewServer(&Ports{Viewer: viewer})
	if err != nil {
		panic(err)
	}
	return server, doc
}
