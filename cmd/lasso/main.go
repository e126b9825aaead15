// Command lasso views PDF documents in the terminal and extracts the text
// under a rectangle selected with the mouse.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/lasso/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/lasso/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lasso/internal/adapters/driven/renderer/native"
	"github.com/custodia-labs/lasso/internal/adapters/driven/renderer/poppler"
	"github.com/custodia-labs/lasso/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lasso/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lasso/internal/adapters/driven/watcher"
	"github.com/custodia-labs/lasso/internal/adapters/driving/cli"
	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
	"github.com/custodia-labs/lasso/internal/core/services"
	"github.com/custodia-labs/lasso/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	closeStore := compose()
	defer closeStore()

	if err := cli.Execute(); err != nil {
		if errors.Is(err, domain.ErrToolNotFound) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, poppler.InstallInstructions())
		}
		return 1
	}
	return 0
}

// compose wires the driven adapters into the services and hands them to
// the CLI. The returned function releases the database.
func compose() func() {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config unavailable, using defaults: %v\n", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}

	dataDir := defaultDataDir()
	var recentStore driven.RecentStore
	closeStore := func() {}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recent documents unavailable: %v\n", err)
		recentStore = memory.NewRecentStore()
	} else {
		recentStore = store.RecentStore()
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		}
	}

	renderer := newRenderer(settings.Renderer)

	var clip driven.Clipboard = clipboard.NewMemory()
	if system := clipboard.NewSystem(); system.Available() {
		clip = system
	}

	newViewer := func(opts cli.ViewerOptions) driving.ViewerService {
		viewerSettings := *settings
		if !opts.Interactive {
			viewerSettings.Selection.CopyOnRelease = false
		}
		viewer := services.NewViewerService(renderer, viewerSettings)
		if opts.Clipboard {
			viewer.SetClipboard(clip)
		}
		if opts.Interactive {
			viewer.SetRecentStore(recentStore)
		}
		return viewer
	}

	var newWatcher func() driven.FileWatcher
	if settings.Watch.Enabled {
		interval := time.Duration(settings.Watch.IntervalMs) * time.Millisecond
		newWatcher = func() driven.FileWatcher {
			return watcher.New(interval)
		}
	}

	cli.SetServices(cli.Services{
		Viewer:   newViewer,
		Settings: settingsService,
		Recent:   services.NewRecentService(recentStore),
		Watcher:  newWatcher,
		DataDir:  dataDir,
	})

	return closeStore
}

// newRenderer selects the document renderer. The native backend reads
// words itself and borrows poppler for rasters when it is installed.
func newRenderer(cfg domain.RendererSettings) driven.DocumentRenderer {
	raster := poppler.New(cfg.PopplerPath, cfg.Oversample)
	if cfg.Backend == domain.RendererNative {
		if poppler.CheckAvailable(cfg.PopplerPath) != nil {
			return native.New(nil)
		}
		return native.New(raster)
	}
	return raster
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lasso", "data")
}
