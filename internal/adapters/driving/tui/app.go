package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/views/page"
	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/logger"
)

// scrollStep is how far one arrow key press scrolls, in viewport pixels.
const scrollStep = 8

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// All viewer state changes happen in Update. Rendering and word extraction
// run in commands and report back with messages.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusBar *status.Bar
	pageView  *page.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// changes delivers file change notifications from the watcher.
	changes <-chan struct{}

	// dragging is true between a left press and its release.
	dragging bool

	// fitWidth zooms to the terminal width on the first layout.
	fitWidth bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The viewer must already have a document open.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		statusBar:   status.NewBar(s, km),
		pageView:    page.NewView(s, ports.Viewer),
		currentView: messages.ViewPage,
	}
	app.updatePageSize()
	app.syncStatus()
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithFitWidth makes the first layout zoom the page to the terminal width.
func (a *App) WithFitWidth(fit bool) *App {
	a.fitWidth = fit
	return a
}

// Init implements tea.Model.
// It starts the first render, the word prefetch and the file watch.
func (a *App) Init() tea.Cmd {
	doc := a.ports.Viewer.Document()

	return tea.Batch(
		tea.SetWindowTitle("lasso - "+filepath.Base(doc.Path)),
		a.render(),
		a.loadWords(),
		a.watch(doc.Path),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			return a, a.updateHelp(msg)
		}
		return a, a.updatePage(msg)

	case tea.MouseMsg:
		if a.currentView != messages.ViewPage {
			return a, nil
		}
		return a, a.updateMouse(msg)

	case messages.RenderCompleted:
		a.renderCompleted(msg)
		return a, nil

	case messages.WordsLoaded:
		a.wordsLoaded(msg)
		return a, nil

	case messages.DocumentChanged:
		logger.Debug("%s changed on disk", msg.Path)
		return a, tea.Batch(a.reload(), a.waitForChange())

	case messages.WatchStopped:
		a.changes = nil
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.currentView == messages.ViewHelp {
		return a.viewHelp()
	}
	return a.pageView.View() + "\n" + a.statusBar.View()
}

func (a *App) resize(width, height int) tea.Cmd {
	first := !a.ready
	a.width = width
	a.height = height
	a.ready = true
	a.pageView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)

	if first && a.fitWidth {
		return a.zoom(a.ports.Viewer.ZoomChange(a.pageView.FitWidth()))
	}
	a.clampScroll()
	a.syncStatus()
	return nil
}

func (a *App) updateHelp(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); {
	case keymap.Matches(k, a.keymap.Quit):
		return tea.Quit
	case keymap.Matches(k, a.keymap.Back), keymap.Matches(k, a.keymap.Help):
		a.currentView = messages.ViewPage
	}
	return nil
}

//nolint:gocyclo // one case per key binding
func (a *App) updatePage(msg tea.KeyMsg) tea.Cmd {
	viewer := a.ports.Viewer
	k := msg.String()
	a.statusBar.Clear()

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.currentView = messages.ViewHelp
	case keymap.Matches(k, a.keymap.NextPage):
		if viewer.NextPage() {
			return a.pageChanged()
		}
	case keymap.Matches(k, a.keymap.PrevPage):
		if viewer.PrevPage() {
			return a.pageChanged()
		}
	case keymap.Matches(k, a.keymap.ZoomIn):
		return a.zoom(viewer.ZoomIn())
	case keymap.Matches(k, a.keymap.ZoomOut):
		return a.zoom(viewer.ZoomOut())
	case keymap.Matches(k, a.keymap.FitWidth):
		return a.zoom(viewer.ZoomChange(a.pageView.FitWidth()))
	case keymap.Matches(k, a.keymap.Up):
		a.scroll(0, scrollStep)
	case keymap.Matches(k, a.keymap.Down):
		a.scroll(0, -scrollStep)
	case keymap.Matches(k, a.keymap.Left):
		a.scroll(scrollStep, 0)
	case keymap.Matches(k, a.keymap.Right):
		a.scroll(-scrollStep, 0)
	case keymap.Matches(k, a.keymap.Copy):
		a.copySelection()
	case keymap.Matches(k, a.keymap.Reload):
		return a.reload()
	}
	a.syncStatus()
	return nil
}

func (a *App) updateMouse(msg tea.MouseMsg) tea.Cmd {
	viewer := a.ports.Viewer

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll(0, scrollStep)
		return nil
	case tea.MouseButtonWheelDown:
		a.scroll(0, -scrollStep)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !a.pageView.Contains(msg.X, msg.Y) {
			return nil
		}
		a.dragging = true
		a.statusBar.Clear()
		viewer.PointerDown(page.CellToViewport(msg.X, msg.Y))
	case tea.MouseActionMotion:
		if !a.dragging {
			return nil
		}
		viewer.PointerMove(a.clampedPoint(msg.X, msg.Y))
	case tea.MouseActionRelease:
		if !a.dragging {
			return nil
		}
		a.dragging = false
		viewer.PointerUp(a.clampedPoint(msg.X, msg.Y))
	}
	a.syncStatus()
	return nil
}

// clampedPoint maps a cell to the viewport, keeping drags that leave the
// page area on its edge.
func (a *App) clampedPoint(col, row int) domain.Point {
	w, h := a.pageView.Dimensions()
	col = min(max(col, 0), max(w-1, 0))
	row = min(max(row, 0), max(h-1, 0))
	return page.CellToViewport(col, row)
}

func (a *App) scroll(dx, dy float64) {
	a.ports.Viewer.Scroll(dx, dy)
	a.clampScroll()
	a.syncStatus()
}

func (a *App) clampScroll() {
	state := a.ports.Viewer.State()
	a.ports.Viewer.SetScroll(a.pageView.ClampScroll(state.Zoom.Scroll, state.Zoom.Factor))
}

func (a *App) zoom(err error) tea.Cmd {
	if err != nil {
		a.setError(err)
		return nil
	}
	a.clampScroll()
	a.syncStatus()
	return a.render()
}

func (a *App) pageChanged() tea.Cmd {
	a.updatePageSize()
	a.ports.Viewer.SetScroll(domain.Point{})
	a.clampScroll()
	a.syncStatus()
	return tea.Batch(a.render(), a.loadWords())
}

func (a *App) updatePageSize() {
	size, err := a.ports.Viewer.PageSize(a.ctx)
	if err != nil {
		a.setError(err)
		return
	}
	a.pageView.SetPageSize(size)
}

func (a *App) reload() tea.Cmd {
	info, err := a.ports.Viewer.Reload(a.ctx)
	if err != nil {
		a.setError(err)
		return nil
	}
	cmd := a.pageChanged()
	a.statusBar.SetInfo(fmt.Sprintf("reloaded %s", filepath.Base(info.Path)))
	return cmd
}

func (a *App) copySelection() {
	if err := a.ports.Viewer.CopySelection(); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.statusBar.SetInfo("nothing to copy")
			return
		}
		a.setError(err)
		return
	}
	text := a.ports.Viewer.CurrentExtractedText()
	a.statusBar.SetInfo(fmt.Sprintf("copied %d characters", len([]rune(text))))
}

// render requests a raster of the displayed page.
func (a *App) render() tea.Cmd {
	viewer := a.ports.Viewer
	ctx, req, err := viewer.BeginRender(a.ctx)
	if err != nil {
		return nil
	}
	a.statusBar.SetState(status.StateRendering)

	return func() tea.Msg {
		img, err := viewer.Render(ctx, req)
		return messages.RenderCompleted{Request: req, Image: img, Err: err}
	}
}

func (a *App) renderCompleted(msg messages.RenderCompleted) {
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) || errors.Is(msg.Err, domain.ErrStaleRender) {
			return
		}
		a.setError(msg.Err)
		return
	}
	if a.ports.Viewer.CommitRender(msg.Request, msg.Image) && a.statusBar.State() == status.StateRendering {
		a.statusBar.Clear()
	}
}

// loadWords extracts the words of the displayed page and the next one.
func (a *App) loadWords() tea.Cmd {
	state := a.ports.Viewer.State()
	if state.Document == nil {
		return nil
	}

	cmds := []tea.Cmd{a.prefetch(state.PageID())}
	if next := state.Page + 1; next < state.Document.PageCount {
		cmds = append(cmds, a.prefetch(domain.PageID{DocumentID: state.Document.ID, Index: next}))
	}
	return tea.Batch(cmds...)
}

func (a *App) prefetch(id domain.PageID) tea.Cmd {
	viewer := a.ports.Viewer
	ctx := a.ctx
	return func() tea.Msg {
		words, err := viewer.PrefetchWords(ctx, id)
		return messages.WordsLoaded{Page: id, Words: words, Err: err}
	}
}

func (a *App) wordsLoaded(msg messages.WordsLoaded) {
	if msg.Err != nil {
		if msg.Page == a.ports.Viewer.State().PageID() {
			a.setError(msg.Err)
		}
		return
	}
	a.ports.Viewer.StoreWords(msg.Page, msg.Words)
}

func (a *App) watch(path string) tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	changes, err := a.ports.Watcher.Watch(a.ctx, path)
	if err != nil {
		logger.Warn("watching %s: %v", path, err)
		return nil
	}
	a.changes = changes
	return a.waitForChange()
}

func (a *App) waitForChange() tea.Cmd {
	changes := a.changes
	if changes == nil {
		return nil
	}
	path := a.ports.Viewer.Document().Path
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return messages.WatchStopped{}
		}
		return messages.DocumentChanged{Path: path}
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetError(err)
	logger.Debug("tui error: %v", err)
}

func (a *App) syncStatus() {
	viewer := a.ports.Viewer
	a.statusBar.SetViewer(viewer.State())
	sel := viewer.Selection()
	a.statusBar.SetSelection(sel.State, len(sel.Highlighted))
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("lasso") + `

Pages:
  n, space    Next page
  p, b        Previous page
  r           Reload from disk

Zoom:
  +, -        Zoom in / out
  w           Fit width

Scrolling:
  ↑/k, ↓/j    Scroll up / down
  ←/h, →/l    Scroll left / right
  wheel       Scroll up / down

Selection:
  drag        Select words
  c           Copy selection

  ?, esc      Back to page
  q           Quit

` + a.styles.Help.Render("[esc] back to page")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar (for testing).
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions lays the app out for a terminal of the given size, ahead
// of the first window size message.
func (a *App) SetDimensions(width, height int) {
	a.resize(width, height)
}
