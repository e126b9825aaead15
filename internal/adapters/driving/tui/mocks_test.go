package tui

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDocument implements driven.Document with a fixed layout.
type mockDocument struct {
	pages [][]domain.WordBox
}

func (m *mockDocument) PageCount() int { return len(m.pages) }

func (m *mockDocument) PageSize(_ context.Context, _ int) (domain.PageSize, error) {
	return domain.PageSize{Width: 612, Height: 792}, nil
}

func (m *mockDocument) Render(_ context.Context, page int, scale float64) (*domain.RasterImage, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(612*scale), int(792*scale)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return &domain.RasterImage{Page: page, Scale: scale, Image: img}, nil
}

func (m *mockDocument) WordBoxes(_ context.Context, page int) ([]domain.WordBox, error) {
	return m.pages[page], nil
}

func (m *mockDocument) Close() error { return nil }

// mockRenderer implements driven.DocumentRenderer and always opens doc.
type mockRenderer struct {
	doc   *mockDocument
	opens int
}

func (m *mockRenderer) Open(_ context.Context, _ string) (driven.Document, error) {
	m.opens++
	return m.doc, nil
}

// mockWatcher implements driven.FileWatcher with a manual channel.
type mockWatcher struct {
	changes chan struct{}
	path    string
}

func (m *mockWatcher) Watch(_ context.Context, path string) (<-chan struct{}, error) {
	m.path = path
	return m.changes, nil
}

func (m *mockWatcher) Close() error {
	close(m.changes)
	return nil
}

// mockClipboard implements driven.Clipboard.
type mockClipboard struct {
	writes []string
}

func (m *mockClipboard) WriteText(text string) error {
	m.writes = append(m.writes, text)
	return nil
}

func testWord(text string, x0, y0, x1, y1 float64) domain.WordBox {
	return domain.WordBox{
		Rect: domain.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, Space: domain.SpaceDocument},
		Text: text,
	}
}
