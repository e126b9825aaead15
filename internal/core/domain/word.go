package domain

// WordBox is one word of a page layout and its bounding box in document
// space. Word boxes are immutable once produced for a page.
type WordBox struct {
	Rect Rect
	Text string
}

// PageSize is the size of a page in document units (points).
type PageSize struct {
	Width  float64
	Height float64
}

// Bounds returns the page as a document-space rectangle.
func (s PageSize) Bounds() Rect {
	return Rect{X1: s.Width, Y1: s.Height, Space: SpaceDocument}
}
