// Package tui provides an interactive terminal viewer for lasso.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

// Ports aggregates the services required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Viewer owns the open document, the page, the zoom and the selection.
	Viewer driving.ViewerService

	// Watcher reports changes to the open file. Optional; without it the
	// document is only reloaded on request.
	Watcher driven.FileWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(viewer driving.ViewerService, watcher driven.FileWatcher) *Ports {
	return &Ports{
		Viewer:  viewer,
		Watcher: watcher,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Viewer == nil {
		return ErrMissingViewerService
	}
	if p.Viewer.Document() == nil {
		return ErrNoDocumentOpen
	}
	return nil
}
