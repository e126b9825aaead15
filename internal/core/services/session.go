package services

import (
	"github.com/custodia-labs/lasso/internal/core/domain"
)

// SelectionSession is the drag-to-select state machine.
//
//	Idle ──down──▶ Dragging ──up──▶ Committed
//	                  ▲  │move            │
//	                  └──┘◀─────down──────┘
//
// Points are given in viewport space and converted with the zoom state
// passed alongside them. Everything the session keeps is in document space.
type SelectionSession struct {
	state       domain.SelectionState
	anchor      domain.Point
	current     domain.Point
	rect        domain.Rect
	highlighted []domain.WordBox
	text        string
}

// NewSelectionSession creates an idle session.
func NewSelectionSession() *SelectionSession {
	return &SelectionSession{}
}

// State returns the current state.
func (s *SelectionSession) State() domain.SelectionState {
	return s.state
}

// PointerDown starts a new drag at p, discarding any previous selection.
func (s *SelectionSession) PointerDown(p domain.Point, zoom domain.ZoomState) {
	d := domain.ToDocumentSpace(p, zoom)

	s.state = domain.SelectionDragging
	s.anchor = d
	s.current = d
	s.rect = domain.NormalizeRect(d, d, domain.SpaceDocument)
	s.highlighted = nil
	s.text = ""
}

// PointerMove extends the drag to p and recomputes the highlighted words.
// It does nothing unless a drag is in progress.
func (s *SelectionSession) PointerMove(p domain.Point, zoom domain.ZoomState, words []domain.WordBox) {
	if s.state != domain.SelectionDragging {
		return
	}
	s.update(p, zoom, words)
}

// PointerUp ends the drag at p and extracts the selected text.
// It returns the text and whether there is any to publish.
// It does nothing unless a drag is in progress.
func (s *SelectionSession) PointerUp(p domain.Point, zoom domain.ZoomState, words []domain.WordBox) (string, bool) {
	if s.state != domain.SelectionDragging {
		return "", false
	}
	s.update(p, zoom, words)
	return s.commit()
}

// SelectRect replaces any selection with a committed one over rect, which
// is in document space. It returns the text and whether there is any.
func (s *SelectionSession) SelectRect(rect domain.Rect, words []domain.WordBox) (string, bool) {
	rect = domain.NormalizeRect(rect.Min(), rect.Max(), domain.SpaceDocument)
	s.anchor = rect.Min()
	s.current = rect.Max()
	s.rect = rect
	s.highlighted = SelectIn(rect, words)
	return s.commit()
}

// Reset returns the session to Idle with no highlights and no text.
func (s *SelectionSession) Reset() {
	*s = SelectionSession{}
}

// Highlighted returns the highlighted words in reading order.
func (s *SelectionSession) Highlighted() []domain.WordBox {
	return s.highlighted
}

// Text returns the extracted text of a committed selection.
func (s *SelectionSession) Text() string {
	return s.text
}

// Snapshot returns a copy of the session.
func (s *SelectionSession) Snapshot() domain.Selection {
	var highlighted []domain.WordBox
	if len(s.highlighted) > 0 {
		highlighted = make([]domain.WordBox, len(s.highlighted))
		copy(highlighted, s.highlighted)
	}
	return domain.Selection{
		State:       s.state,
		Anchor:      s.anchor,
		Current:     s.current,
		Rect:        s.rect,
		Highlighted: highlighted,
		Text:        s.text,
	}
}

func (s *SelectionSession) commit() (string, bool) {
	s.text = JoinText(s.highlighted)
	s.state = domain.SelectionCommitted
	return s.text, s.text != ""
}

// update replaces the highlight set for the rectangle spanned by the
// anchor and p.
func (s *SelectionSession) update(p domain.Point, zoom domain.ZoomState, words []domain.WordBox) {
	s.current = domain.ToDocumentSpace(p, zoom)
	s.rect = domain.NormalizeRect(s.anchor, s.current, domain.SpaceDocument)
	s.highlighted = SelectIn(s.rect, words)
}
