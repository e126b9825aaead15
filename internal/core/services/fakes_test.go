package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDocument implements driven.Document for testing.
type mockDocument struct {
	mu         sync.Mutex
	pages      [][]domain.WordBox
	wordCalls  map[int]int
	wordsErr   error
	renderErr  error
	closed     bool
	renderHook func(ctx context.Context)

	// wordsStarted is signalled and wordsGate awaited by WordBoxes when set.
	wordsStarted chan struct{}
	wordsGate    chan struct{}
}

func newMockDocument(pages ...[]domain.WordBox) *mockDocument {
	return &mockDocument{pages: pages, wordCalls: make(map[int]int)}
}

func (m *mockDocument) PageCount() int {
	return len(m.pages)
}

func (m *mockDocument) PageSize(_ context.Context, page int) (domain.PageSize, error) {
	if page < 0 || page >= len(m.pages) {
		return domain.PageSize{}, domain.ErrPageOutOfRange
	}
	return domain.PageSize{Width: 612, Height: 792}, nil
}

func (m *mockDocument) Render(ctx context.Context, page int, scale float64) (*domain.RasterImage, error) {
	if m.renderHook != nil {
		m.renderHook(ctx)
	}
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	w, h := int(612*scale), int(792*scale)
	return &domain.RasterImage{Page: page, Scale: scale, Image: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

func (m *mockDocument) WordBoxes(ctx context.Context, page int) ([]domain.WordBox, error) {
	if m.wordsStarted != nil {
		m.wordsStarted <- struct{}{}
	}
	if m.wordsGate != nil {
		select {
		case <-m.wordsGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wordCalls[page]++
	if m.wordsErr != nil {
		return nil, m.wordsErr
	}
	return m.pages[page], nil
}

func (m *mockDocument) Close() error {
	m.closed = true
	return nil
}

func (m *mockDocument) calls(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wordCalls[page]
}

// mockRenderer implements driven.DocumentRenderer for testing.
type mockRenderer struct {
	docs    map[string]*mockDocument
	openErr error
	opens   int
}

func (m *mockRenderer) Open(_ context.Context, path string) (driven.Document, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, &domain.OpenError{Path: path, Err: errors.New("no such file")}
	}
	return doc, nil
}

// mockClipboard implements driven.Clipboard for testing.
type mockClipboard struct {
	writes []string
	err    error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, text)
	return nil
}

// word builds a word box in document space.
func word(text string, x0, y0, x1, y1 float64) domain.WordBox {
	return domain.WordBox{
		Rect: domain.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, Space: domain.SpaceDocument},
		Text: text,
	}
}

func docRect(x0, y0, x1, y1 float64) domain.Rect {
	return domain.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, Space: domain.SpaceDocument}
}

// sequentialIDs returns a generator of predictable document IDs.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("doc-%d", n)
	}
}
