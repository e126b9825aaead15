package domain

import "math"

// CoordSpace names the coordinate system a Rect is expressed in.
type CoordSpace int

const (
	// SpaceDocument is page-native units (points), origin top-left, y down.
	// It does not depend on zoom or scroll.
	SpaceDocument CoordSpace = iota

	// SpaceViewport is on-screen pixels as delivered by pointer events.
	SpaceViewport
)

// String returns the string representation of the space.
func (s CoordSpace) String() string {
	switch s {
	case SpaceDocument:
		return "document"
	case SpaceViewport:
		return "viewport"
	default:
		return "unknown"
	}
}

// ParseCoordSpace parses "document" or "viewport".
func ParseCoordSpace(s string) (CoordSpace, bool) {
	switch s {
	case "document", "doc":
		return SpaceDocument, true
	case "viewport", "view":
		return SpaceViewport, true
	default:
		return 0, false
	}
}

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with X0 <= X1 and Y0 <= Y1.
// Zero-area rectangles are valid and represent a click.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64

	// Space is the coordinate system the corners are expressed in.
	Space CoordSpace
}

// NormalizeRect builds the rectangle spanned by two corners,
// reordering them so that X0 <= X1 and Y0 <= Y1.
func NormalizeRect(a, b Point, space CoordSpace) Rect {
	return Rect{
		X0:    math.Min(a.X, b.X),
		Y0:    math.Min(a.Y, b.Y),
		X1:    math.Max(a.X, b.X),
		Y1:    math.Max(a.Y, b.Y),
		Space: space,
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X0, Y: r.Y0}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X1, Y: r.Y1}
}

// Intersects reports whether the overlap of r and o has strictly positive
// area. Rectangles that only share an edge or a corner do not intersect,
// and a zero-area rectangle intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	w := math.Min(r.X1, o.X1) - math.Max(r.X0, o.X0)
	h := math.Min(r.Y1, o.Y1) - math.Max(r.Y0, o.Y0)
	return w > 0 && h > 0
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0:    math.Min(r.X0, o.X0),
		Y0:    math.Min(r.Y0, o.Y0),
		X1:    math.Max(r.X1, o.X1),
		Y1:    math.Max(r.Y1, o.Y1),
		Space: r.Space,
	}
}
