// Package mcp provides an MCP (Model Context Protocol) server adapter for lasso.
// It lets AI assistants open a document, read its word layout and select
// text by region.
package mcp

import "errors"

// ErrMissingViewerService is returned when the viewer service is not provided.
var ErrMissingViewerService = errors.New("mcp: viewer service is required")
