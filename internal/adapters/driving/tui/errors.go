package tui

import "errors"

// ErrMissingViewerService is returned when the viewer service is not provided.
var ErrMissingViewerService = errors.New("tui: viewer service is required")

// ErrNoDocumentOpen is returned when the viewer has no open document.
var ErrNoDocumentOpen = errors.New("tui: a document must be open before starting")
