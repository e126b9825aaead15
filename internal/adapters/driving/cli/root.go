// Package cli provides the cobra command tree for lasso.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
	"github.com/custodia-labs/lasso/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lasso",
	Short: "Select text on PDF pages by drawing a rectangle",
	Long: `lasso views PDF documents in the terminal and extracts the words
under a rectangle drawn with the mouse, in reading order.

Run 'lasso view <file>' for the interactive viewer, or use the words,
select and render commands from scripts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// ViewerOptions configures a viewer built by a ViewerFactory.
type ViewerOptions struct {
	// Interactive viewers copy selections on release when configured to
	// and remember where each document was left.
	Interactive bool

	// Clipboard attaches the system clipboard.
	Clipboard bool
}

// ViewerFactory builds a viewer with no document open.
type ViewerFactory func(opts ViewerOptions) driving.ViewerService

// Services holds the services the commands run against.
type Services struct {
	Viewer   ViewerFactory
	Settings driving.SettingsService
	Recent   driving.RecentService

	// Watcher builds a file watcher for the interactive viewer.
	// Nil disables reload on change.
	Watcher func() driven.FileWatcher

	// DataDir receives the log file of the interactive viewer.
	DataDir string
}

var (
	newViewer       ViewerFactory
	settingsService driving.SettingsService
	recentService   driving.RecentService
	newWatcher      func() driven.FileWatcher
	dataDir         string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	newViewer = s.Viewer
	settingsService = s.Settings
	recentService = s.Recent
	newWatcher = s.Watcher
	dataDir = s.DataDir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
