package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

func sessionWords() []domain.WordBox {
	return []domain.WordBox{
		word("Hello", 10, 10, 40, 20),
		word("World", 50, 10, 80, 20),
		word("below", 10, 40, 40, 50),
	}
}

func TestSelectionSession_Transitions(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.DefaultZoom()
	words := sessionWords()

	assert.Equal(t, domain.SelectionIdle, s.State())

	s.PointerDown(domain.Point{X: 5, Y: 5}, zoom)
	assert.Equal(t, domain.SelectionDragging, s.State())
	assert.Empty(t, s.Highlighted())

	s.PointerMove(domain.Point{X: 45, Y: 25}, zoom, words)
	assert.Equal(t, domain.SelectionDragging, s.State())
	assert.Equal(t, []domain.WordBox{words[0]}, s.Highlighted())
	assert.Empty(t, s.Text())

	text, ok := s.PointerUp(domain.Point{X: 85, Y: 25}, zoom, words)
	assert.True(t, ok)
	assert.Equal(t, "Hello World", text)
	assert.Equal(t, domain.SelectionCommitted, s.State())
	assert.Equal(t, "Hello World", s.Text())

	s.PointerDown(domain.Point{X: 0, Y: 0}, zoom)
	assert.Equal(t, domain.SelectionDragging, s.State())
	assert.Empty(t, s.Highlighted())
	assert.Empty(t, s.Text())
}

func TestSelectionSession_IgnoresEventsOutsideDrag(t *testing.T) {
	words := sessionWords()
	zoom := domain.DefaultZoom()

	tests := []struct {
		name  string
		setup func(s *SelectionSession)
		want  domain.SelectionState
	}{
		{"idle", func(_ *SelectionSession) {}, domain.SelectionIdle},
		{"committed", func(s *SelectionSession) {
			s.PointerDown(domain.Point{X: 5, Y: 5}, zoom)
			s.PointerUp(domain.Point{X: 45, Y: 25}, zoom, words)
		}, domain.SelectionCommitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelectionSession()
			tt.setup(s)
			before := s.Snapshot()

			s.PointerMove(domain.Point{X: 100, Y: 100}, zoom, words)
			text, ok := s.PointerUp(domain.Point{X: 100, Y: 100}, zoom, words)

			assert.False(t, ok)
			assert.Empty(t, text)
			assert.Equal(t, tt.want, s.State())
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestSelectionSession_ZeroAreaClick(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.DefaultZoom()
	p := domain.Point{X: 20, Y: 15}

	s.PointerDown(p, zoom)
	text, ok := s.PointerUp(p, zoom, sessionWords())

	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Empty(t, s.Highlighted())
	assert.Equal(t, domain.SelectionCommitted, s.State())
}

func TestSelectionSession_ReverseDrag(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.DefaultZoom()

	s.PointerDown(domain.Point{X: 85, Y: 25}, zoom)
	text, ok := s.PointerUp(domain.Point{X: 5, Y: 5}, zoom, sessionWords())

	assert.True(t, ok)
	assert.Equal(t, "Hello World", text)
	assert.Equal(t, docRect(5, 5, 85, 25), s.Snapshot().Rect)
}

func TestSelectionSession_ConvertsViewportPoints(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.ZoomState{Factor: 2, Scroll: domain.Point{X: 100, Y: -50}}

	// (110, -40) and (190, 0) are (5, 5) and (45, 25) in document space.
	s.PointerDown(domain.Point{X: 110, Y: -40}, zoom)
	text, ok := s.PointerUp(domain.Point{X: 190, Y: 0}, zoom, sessionWords())

	assert.True(t, ok)
	assert.Equal(t, "Hello", text)
	snap := s.Snapshot()
	assert.Equal(t, domain.Point{X: 5, Y: 5}, snap.Anchor)
	assert.Equal(t, domain.Point{X: 45, Y: 25}, snap.Current)
}

func TestSelectionSession_Reset(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.DefaultZoom()
	s.PointerDown(domain.Point{X: 5, Y: 5}, zoom)
	s.PointerMove(domain.Point{X: 45, Y: 25}, zoom, sessionWords())

	s.Reset()

	assert.Equal(t, domain.SelectionIdle, s.State())
	assert.Empty(t, s.Highlighted())
	assert.Empty(t, s.Text())
}

func TestSelectionSession_SnapshotIsCopy(t *testing.T) {
	s := NewSelectionSession()
	zoom := domain.DefaultZoom()
	s.PointerDown(domain.Point{X: 5, Y: 5}, zoom)
	s.PointerMove(domain.Point{X: 45, Y: 25}, zoom, sessionWords())

	snap := s.Snapshot()
	snap.Highlighted[0].Text = "changed"

	assert.Equal(t, "Hello", s.Highlighted()[0].Text)
}

func TestSelectionSession_SelectRect(t *testing.T) {
	s := NewSelectionSession()
	words := sessionWords()

	s.PointerDown(domain.Point{X: 0, Y: 0}, domain.DefaultZoom())
	text, ok := s.SelectRect(docRect(85, 25, 40, 5), words)

	assert.True(t, ok)
	assert.Equal(t, "World", text)
	assert.Equal(t, domain.SelectionCommitted, s.State())
	assert.Equal(t, docRect(40, 5, 85, 25), s.Snapshot().Rect)
	assert.Equal(t, domain.Point{X: 40, Y: 5}, s.Snapshot().Anchor)

	text, ok = s.SelectRect(docRect(100, 100, 200, 200), words)
	assert.False(t, ok)
	assert.Empty(t, text)
	assert.Empty(t, s.Highlighted())
	assert.Equal(t, domain.SelectionCommitted, s.State())
}
