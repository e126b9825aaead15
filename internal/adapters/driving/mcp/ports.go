package mcp

import (
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Viewer holds the document the tools operate on.
	Viewer driving.ViewerService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Viewer == nil {
		return ErrMissingViewerService
	}
	return nil
}
