package cli

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/lasso/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/lasso/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
	"github.com/custodia-labs/lasso/internal/core/services"
)

// --- Mock implementations ---

// mockDocument implements driven.Document with a fixed layout.
type mockDocument struct {
	pages     [][]domain.WordBox
	renderErr error
}

func (m *mockDocument) PageCount() int { return len(m.pages) }

func (m *mockDocument) PageSize(_ context.Context, _ int) (domain.PageSize, error) {
	return domain.PageSize{Width: 612, Height: 792}, nil
}

func (m *mockDocument) Render(_ context.Context, page int, scale float64) (*domain.RasterImage, error) {
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	img := image.NewRGBA(image.Rect(0, 0, int(612*scale), int(792*scale)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return &domain.RasterImage{Page: page, Scale: scale, Image: img}, nil
}

func (m *mockDocument) WordBoxes(_ context.Context, page int) ([]domain.WordBox, error) {
	return m.pages[page], nil
}

func (m *mockDocument) Close() error { return nil }

// mockRenderer implements driven.DocumentRenderer over a set of paths.
type mockRenderer struct {
	docs map[string]*mockDocument
}

func (m *mockRenderer) Open(_ context.Context, path string) (driven.Document, error) {
	doc, ok := m.docs[path]
	if !ok {
		return nil, &domain.OpenError{Path: path, Err: errors.New("no such file")}
	}
	return doc, nil
}

func testWord(text string, x0, y0, x1, y1 float64) domain.WordBox {
	return domain.WordBox{
		Rect: domain.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1, Space: domain.SpaceDocument},
		Text: text,
	}
}

const testPath = "/docs/report.pdf"

// testEnv holds the collaborators behind the injected services.
type testEnv struct {
	doc       *mockDocument
	clipboard *clipboard.Memory
	recent    *memory.RecentStore
	config    *memory.ConfigStore
}

// setupTestServices injects services over a two page document at testPath
// with "Hello World" on page 1 and "Second page" on page 2.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		doc: &mockDocument{pages: [][]domain.WordBox{
			{testWord("Hello", 10, 10, 40, 20), testWord("World", 50, 10, 80, 20)},
			{testWord("Second", 10, 10, 60, 20), testWord("page", 70, 10, 100, 20)},
		}},
		clipboard: clipboard.NewMemory(),
		recent:    memory.NewRecentStore(),
		config:    memory.NewConfigStore(),
	}
	renderer := &mockRenderer{docs: map[string]*mockDocument{testPath: env.doc}}
	settings := services.NewSettingsService(env.config)

	factory := func(opts ViewerOptions) driving.ViewerService {
		s, _ := settings.Get()
		if !opts.Interactive {
			s.Selection.CopyOnRelease = false
		}
		viewer := services.NewViewerService(renderer, *s)
		if opts.Clipboard {
			viewer.SetClipboard(env.clipboard)
		}
		if opts.Interactive {
			viewer.SetRecentStore(env.recent)
		}
		return viewer
	}

	SetServices(Services{
		Viewer:   factory,
		Settings: settings,
		Recent:   services.NewRecentService(env.recent),
	})

	return env, func() { SetServices(Services{}) }
}

// execute runs the root command with args and returns its output.
// Flags are reset afterwards so tests do not leak into each other.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
