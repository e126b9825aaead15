package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lasso/internal/adapters/driving/tui"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/logger"
)

var viewPage int

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a document in the interactive viewer",
	Long: `Opens a PDF document in the terminal viewer.

Drag with the left mouse button to select text; the words under the
rectangle are highlighted and copied to the clipboard on release.

Controls:
  n, p       - Next / previous page
  +, -, w    - Zoom in / out / fit width
  ←↑↓→, hjkl - Scroll
  c          - Copy the selection
  r          - Reload from disk
  ?          - Toggle help
  q          - Quit

A document opened before resumes at the page and zoom it was left at.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().IntVarP(&viewPage, "page", "p", 0, "page to open at, starting at 1 (default: last viewed)")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// Keep log lines off the alternate screen.
	if logger.IsVerbose() && dataDir != "" {
		closer, logErr := logger.ToFile(filepath.Join(dataDir, "lasso.log"))
		if logErr != nil {
			return fmt.Errorf("failed to open log file: %w", logErr)
		}
		defer closer.Close()
	}

	ctx := cmd.Context()
	fitWidth := true
	if recentService != nil {
		if abs, absErr := filepath.Abs(args[0]); absErr == nil {
			if last, _ := recentService.Last(ctx, abs); last != nil {
				fitWidth = false
			}
		}
	}

	viewer, err := openDocument(ctx, args[0], viewPage, ViewerOptions{Interactive: true, Clipboard: true})
	if err != nil {
		return err
	}
	defer closeViewer(viewer)

	var watcher driven.FileWatcher
	if newWatcher != nil {
		watcher = newWatcher()
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				logger.Warn("closing watcher: %v", closeErr)
			}
		}()
	}

	app, err := tui.NewApp(tui.NewPorts(viewer, watcher))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx).WithFitWidth(fitWidth && viewPage == 0)
	if width, height, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil && width > 0 && height > 1 {
		app.SetDimensions(width, height)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
