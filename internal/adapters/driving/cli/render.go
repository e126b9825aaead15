package cli

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lasso/internal/core/domain"
)

var (
	renderPage   int
	renderZoom   float64
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a page to PNG",
	Long: `Renders a page at the given zoom and writes it as PNG to a file, or to
standard output when it is not a terminal.

Examples:
  lasso render report.pdf --page 2 --zoom 2 -o page2.png
  lasso render report.pdf | display`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderPage, "page", "p", 1, "page number, starting at 1")
	renderCmd.Flags().Float64VarP(&renderZoom, "zoom", "z", 1, "zoom factor (1 = 72 pixels per inch)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: standard output)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if renderOutput == "" && isTerminal(out) {
		return errors.New("refusing to write PNG to a terminal: use -o or redirect output")
	}

	viewer, err := openDocument(cmd.Context(), args[0], renderPage, ViewerOptions{})
	if err != nil {
		return err
	}
	defer closeViewer(viewer)

	if err := viewer.ZoomChange(renderZoom); err != nil {
		return err
	}

	ctx, req, err := viewer.BeginRender(cmd.Context())
	if err != nil {
		return err
	}
	img, err := viewer.Render(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if renderOutput == "" {
		return writePNG(out, img)
	}

	f, err := os.Create(renderOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", renderOutput, err)
	}
	if err := writePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	cmd.Printf("Wrote %s (%dx%d)\n", renderOutput, img.Width(), img.Height())
	return nil
}

func writePNG(w io.Writer, img *domain.RasterImage) error {
	if err := png.Encode(w, img.Image); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
