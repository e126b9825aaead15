package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
	"github.com/custodia-labs/lasso/internal/logger"
)

// wordJSON is the JSON form of a word box in document space.
type wordJSON struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

func toWordJSON(words []domain.WordBox) []wordJSON {
	out := make([]wordJSON, len(words))
	for i, w := range words {
		out[i] = wordJSON{Text: w.Text, X0: w.Rect.X0, Y0: w.Rect.Y0, X1: w.Rect.X1, Y1: w.Rect.Y1}
	}
	return out
}

// openDocument opens path in a new viewer and displays the 1-based page.
// The returned viewer must be closed by the caller.
func openDocument(
	ctx context.Context,
	path string,
	page int,
	opts ViewerOptions,
) (driving.ViewerService, error) {
	if newViewer == nil {
		return nil, errors.New("viewer service not configured")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	viewer := newViewer(opts)
	if _, err := viewer.Open(ctx, abs); err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	if page > 0 && page-1 != viewer.State().Page {
		if err := viewer.PageChange(page - 1); err != nil {
			closeViewer(viewer)
			return nil, err
		}
	}
	return viewer, nil
}

func closeViewer(viewer driving.ViewerService) {
	if err := viewer.Close(); err != nil {
		logger.Warn("closing document: %v", err)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
