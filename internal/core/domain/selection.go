package domain

// SelectionState is the state of the drag-to-select state machine.
type SelectionState int

const (
	// SelectionIdle means no drag is in progress and nothing is selected.
	SelectionIdle SelectionState = iota

	// SelectionDragging means the pointer is down and the rectangle is live.
	SelectionDragging

	// SelectionCommitted means the pointer was released and text was extracted.
	SelectionCommitted
)

// String returns the string representation of the state.
func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionDragging:
		return "dragging"
	case SelectionCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Selection is a snapshot of the selection session.
type Selection struct {
	State SelectionState

	// Anchor is the document-space point where the drag started.
	Anchor Point

	// Current is the latest document-space pointer position.
	Current Point

	// Rect is the normalised selection rectangle in document space.
	Rect Rect

	// Highlighted holds the intersecting words in reading order.
	Highlighted []WordBox

	// Text is the extracted text, set once the selection is committed.
	Text string
}
