package domain

import "math"

// ZoomState is the viewer's zoom factor and scroll offset.
//
// Scroll is the viewport position of the document origin, so scrolling the
// page up moves Scroll.Y towards negative values. Factor must stay > 0;
// ViewerService enforces this before any transform runs.
type ZoomState struct {
	Factor float64
	Scroll Point
}

// DefaultZoom returns a 100% zoom with no scroll.
func DefaultZoom() ZoomState {
	return ZoomState{Factor: 1}
}

// ValidZoomFactor reports whether f can be used as a zoom factor.
func ValidZoomFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ToDocumentSpace maps a viewport pixel to document space.
// Behaviour is undefined when zoom.Factor is zero.
func ToDocumentSpace(p Point, zoom ZoomState) Point {
	return Point{
		X: (p.X - zoom.Scroll.X) / zoom.Factor,
		Y: (p.Y - zoom.Scroll.Y) / zoom.Factor,
	}
}

// ToViewportSpace maps a document-space point to viewport pixels.
// It is the exact inverse of ToDocumentSpace.
func ToViewportSpace(p Point, zoom ZoomState) Point {
	return Point{
		X: p.X*zoom.Factor + zoom.Scroll.X,
		Y: p.Y*zoom.Factor + zoom.Scroll.Y,
	}
}

// RectToViewport maps a document-space rectangle to viewport space.
func RectToViewport(r Rect, zoom ZoomState) Rect {
	return NormalizeRect(
		ToViewportSpace(r.Min(), zoom),
		ToViewportSpace(r.Max(), zoom),
		SpaceViewport,
	)
}

// RectToDocument maps a viewport rectangle to document space.
func RectToDocument(r Rect, zoom ZoomState) Rect {
	return NormalizeRect(
		ToDocumentSpace(r.Min(), zoom),
		ToDocumentSpace(r.Max(), zoom),
		SpaceDocument,
	)
}
