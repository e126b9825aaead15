package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent viewer failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOpen indicates a document could not be opened.
	// Returned errors wrap it through *OpenError.
	ErrOpen = errors.New("cannot open document")

	// ErrRender indicates a page failed to rasterise.
	// Returned errors wrap it through *RenderError.
	ErrRender = errors.New("cannot render page")

	// ErrRenderUnsupported indicates the backend has no rasteriser.
	ErrRenderUnsupported = errors.New("rendering not supported by backend")

	// ErrNoDocument indicates an operation needs an open document.
	ErrNoDocument = errors.New("no document loaded")

	// ErrPageOutOfRange indicates a page index outside [0, pageCount).
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidZoom indicates a zoom factor that is not a positive finite number.
	ErrInvalidZoom = errors.New("zoom factor must be positive")

	// ErrZoomOutOfRange indicates a zoom factor the viewer would clamp.
	ErrZoomOutOfRange = errors.New("zoom factor outside the configured range")

	// ErrStaleRender indicates a render request was superseded.
	ErrStaleRender = errors.New("render request superseded")

	// ErrToolNotFound indicates an external rendering tool is missing.
	ErrToolNotFound = errors.New("rendering tool not found")
)

// OpenError reports a document that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

// Error implements error.
func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// Is reports ErrOpen so callers can match the kind with errors.Is.
func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}

// RenderError reports a page that failed to rasterise.
type RenderError struct {
	Page int
	Err  error
}

// Error implements error.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %d: %v", e.Page+1, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports ErrRender so callers can match the kind with errors.Is.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
