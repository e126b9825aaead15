// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lasso/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPage is the document page.
	ViewPage ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPage:
		return "page"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RenderCompleted carries a rasterised page back to the model.
// The request is compared against the viewer state before the image is shown.
type RenderCompleted struct {
	Request domain.RenderRequest
	Image   *domain.RasterImage
	Err     error
}

// WordsLoaded carries the words of a page extracted off the event loop.
type WordsLoaded struct {
	Page  domain.PageID
	Words []domain.WordBox
	Err   error
}

// DocumentChanged signals the open file changed on disk.
type DocumentChanged struct {
	Path string
}

// WatchStopped signals the file watcher channel was closed.
type WatchStopped struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
