// Package domain defines the core entities for lasso.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Point, Rect: geometry in document or viewport space
//   - ZoomState: zoom factor and scroll offset, with the space transforms
//   - WordBox: one word of a page's layout with its bounding box
//   - Selection: snapshot of the drag-to-select state machine
//   - RasterImage: a rendered page
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
