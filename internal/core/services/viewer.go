package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
	"github.com/custodia-labs/lasso/internal/logger"
)

// Ensure ViewerService implements the interface.
var _ driving.ViewerService = (*ViewerService)(nil)

// ViewerService owns the viewer state of one open document: the page and
// zoom being displayed, the word index and the selection session.
type ViewerService struct {
	renderer driven.DocumentRenderer
	settings domain.ViewerSettings

	clipboard   driven.Clipboard
	recentStore driven.RecentStore

	// mu guards doc and info so Render can run off the event loop.
	mu   sync.RWMutex
	doc  driven.Document
	info *domain.DocumentInfo

	page    int
	zoom    domain.ZoomState
	words   *WordIndex
	session *SelectionSession

	generation   uint64
	cancelRender context.CancelFunc
	raster       *domain.RasterImage

	newID func() string
}

// NewViewerService creates a viewer backed by renderer.
func NewViewerService(renderer driven.DocumentRenderer, settings domain.ViewerSettings) *ViewerService {
	return &ViewerService{
		renderer: renderer,
		settings: settings,
		zoom:     domain.ZoomState{Factor: settings.Zoom.Clamp(settings.Zoom.Initial)},
		words:    NewWordIndex(),
		session:  NewSelectionSession(),
		newID:    uuid.NewString,
	}
}

// SetClipboard sets where committed selections are published.
// Without a clipboard, selections are only kept in the session.
func (v *ViewerService) SetClipboard(clipboard driven.Clipboard) {
	v.clipboard = clipboard
}

// SetRecentStore enables recording of opened documents.
func (v *ViewerService) SetRecentStore(store driven.RecentStore) {
	v.recentStore = store
}

// Words returns the word index of the open document.
func (v *ViewerService) Words() *WordIndex {
	return v.words
}

// Open opens the document at path. On failure the previous document
// stays open and the error wraps domain.ErrOpen.
func (v *ViewerService) Open(ctx context.Context, path string) (*domain.DocumentInfo, error) {
	if path == "" {
		return nil, &domain.OpenError{Path: path, Err: domain.ErrInvalidInput}
	}

	logger.Section("Open")
	logger.Debug("opening %s", path)

	doc, err := v.openDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	page := 0
	factor := v.settings.Zoom.Clamp(v.settings.Zoom.Initial)
	if recent := v.lastVisit(ctx, path); recent != nil {
		if recent.LastPage >= 0 && recent.LastPage < doc.PageCount() {
			page = recent.LastPage
		}
		if domain.ValidZoomFactor(recent.Zoom) {
			factor = v.settings.Zoom.Clamp(recent.Zoom)
		}
	}

	info := v.replaceDocument(doc, path, page, domain.ZoomState{Factor: factor})
	v.record(ctx)
	logger.Info("opened %s (%d pages)", path, info.PageCount)
	return info, nil
}

// Reload reopens the current document from disk. The displayed page is
// kept when it still exists and the zoom is unchanged.
func (v *ViewerService) Reload(ctx context.Context) (*domain.DocumentInfo, error) {
	if v.info == nil {
		return nil, domain.ErrNoDocument
	}
	path := v.info.Path
	logger.Debug("reloading %s", path)

	doc, err := v.openDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	page := v.page
	if page >= doc.PageCount() {
		page = max(doc.PageCount()-1, 0)
	}
	return v.replaceDocument(doc, path, page, v.zoom), nil
}

// Close closes the open document and records where the user left it.
func (v *ViewerService) Close() error {
	if v.info == nil {
		return nil
	}
	v.record(context.Background())

	v.mu.Lock()
	doc := v.doc
	v.doc = nil
	v.info = nil
	v.mu.Unlock()

	v.invalidate()
	v.words.Reset("", nil)
	v.page = 0

	if err := doc.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	return nil
}

// Document returns the open document, or nil.
func (v *ViewerService) Document() *domain.DocumentInfo {
	if v.info == nil {
		return nil
	}
	info := *v.info
	return &info
}

// State returns the current viewer state.
func (v *ViewerService) State() domain.ViewerState {
	return domain.ViewerState{
		Document: v.Document(),
		Page:     v.page,
		Zoom:     v.zoom,
	}
}

// PageSize returns the size of the displayed page.
func (v *ViewerService) PageSize(ctx context.Context) (domain.PageSize, error) {
	if v.info == nil {
		return domain.PageSize{}, domain.ErrNoDocument
	}
	return v.doc.PageSize(ctx, v.page)
}

// PageChange displays page index and resets the selection.
func (v *ViewerService) PageChange(index int) error {
	if v.info == nil {
		return domain.ErrNoDocument
	}
	if index < 0 || index >= v.info.PageCount {
		return fmt.Errorf("page %d of %d: %w", index+1, v.info.PageCount, domain.ErrPageOutOfRange)
	}
	v.page = index
	v.session.Reset()
	logger.Debug("page changed to %d", index+1)
	return nil
}

// NextPage moves to the following page. It reports false on the last page.
func (v *ViewerService) NextPage() bool {
	if v.info == nil || v.page+1 >= v.info.PageCount {
		return false
	}
	return v.PageChange(v.page+1) == nil
}

// PrevPage moves to the preceding page. It reports false on the first page.
func (v *ViewerService) PrevPage() bool {
	if v.info == nil || v.page == 0 {
		return false
	}
	return v.PageChange(v.page-1) == nil
}

// ZoomChange sets the zoom factor, clamped to the configured range, and
// resets the selection.
func (v *ViewerService) ZoomChange(factor float64) error {
	if !domain.ValidZoomFactor(factor) {
		return fmt.Errorf("zoom %v: %w", factor, domain.ErrInvalidZoom)
	}
	v.zoom.Factor = v.settings.Zoom.Clamp(factor)
	v.session.Reset()
	logger.Debug("zoom changed to %.2f", v.zoom.Factor)
	return nil
}

// ZoomIn multiplies the zoom factor by the zoom step.
func (v *ViewerService) ZoomIn() error {
	return v.ZoomChange(v.zoom.Factor * v.settings.Zoom.Step)
}

// ZoomOut divides the zoom factor by the zoom step.
func (v *ViewerService) ZoomOut() error {
	return v.ZoomChange(v.zoom.Factor / v.settings.Zoom.Step)
}

// Scroll moves the document origin by (dx, dy) viewport pixels.
// Selections are kept in document space, so they follow the page.
func (v *ViewerService) Scroll(dx, dy float64) {
	v.zoom.Scroll.X += dx
	v.zoom.Scroll.Y += dy
}

// SetScroll places the document origin at p.
func (v *ViewerService) SetScroll(p domain.Point) {
	v.zoom.Scroll = p
}

// PointerDown starts a selection at viewport point p.
func (v *ViewerService) PointerDown(p domain.Point) {
	if _, ok := v.currentWords(); !ok {
		return
	}
	v.session.PointerDown(p, v.zoom)
}

// PointerMove extends the selection to viewport point p.
func (v *ViewerService) PointerMove(p domain.Point) {
	words, ok := v.currentWords()
	if !ok {
		return
	}
	v.session.PointerMove(p, v.zoom, words)
}

// PointerUp commits the selection at viewport point p and publishes
// non-empty text to the clipboard.
func (v *ViewerService) PointerUp(p domain.Point) {
	words, ok := v.currentWords()
	if !ok {
		return
	}
	v.committed(v.session.PointerUp(p, v.zoom, words))
}

// SelectRect commits a selection over rect in one step. A document-space
// rect is used as given; a viewport rect is mapped with the current zoom.
// Like PointerUp it publishes non-empty text to the clipboard.
func (v *ViewerService) SelectRect(rect domain.Rect) {
	words, ok := v.currentWords()
	if !ok {
		return
	}
	if rect.Space == domain.SpaceViewport {
		rect = domain.RectToDocument(rect, v.zoom)
	}
	v.committed(v.session.SelectRect(rect, words))
}

func (v *ViewerService) committed(text string, ok bool) {
	if !ok {
		logger.Debug("empty selection")
		return
	}
	logger.Debug("selected %d words", len(v.session.Highlighted()))
	if v.settings.Selection.CopyOnRelease {
		if err := v.publish(text); err != nil {
			logger.Warn("clipboard: %v", err)
		}
	}
}

// Selection returns a snapshot of the selection session.
func (v *ViewerService) Selection() domain.Selection {
	return v.session.Snapshot()
}

// CurrentHighlightRegions returns the highlighted word boxes in viewport space.
func (v *ViewerService) CurrentHighlightRegions() []domain.Rect {
	highlighted := v.session.Highlighted()
	regions := make([]domain.Rect, len(highlighted))
	for i, w := range highlighted {
		regions[i] = domain.RectToViewport(w.Rect, v.zoom)
	}
	return regions
}

// CurrentExtractedText returns the text of the committed selection.
func (v *ViewerService) CurrentExtractedText() string {
	return v.session.Text()
}

// CopySelection publishes the committed selection text to the clipboard.
func (v *ViewerService) CopySelection() error {
	text := v.session.Text()
	if v.session.State() != domain.SelectionCommitted || text == "" {
		return fmt.Errorf("selection text: %w", domain.ErrNotFound)
	}
	return v.publish(text)
}

// EnsureWords loads the displayed page's words into the word index.
func (v *ViewerService) EnsureWords(ctx context.Context) error {
	_, err := v.PageWords(ctx)
	return err
}

// PageWords returns the displayed page's words in reading order.
func (v *ViewerService) PageWords(ctx context.Context) ([]domain.WordBox, error) {
	if v.info == nil {
		return nil, domain.ErrNoDocument
	}
	return v.words.WordsFor(ctx, v.State().PageID())
}

// PrefetchWords loads the words of page id into the word index.
// Concurrent prefetches of one page share a single extraction.
func (v *ViewerService) PrefetchWords(ctx context.Context, id domain.PageID) ([]domain.WordBox, error) {
	return v.words.WordsFor(ctx, id)
}

// StoreWords caches prefetched words unless their document was replaced.
func (v *ViewerService) StoreWords(id domain.PageID, words []domain.WordBox) bool {
	return v.words.Store(id, words)
}

// BeginRender captures a render request for the displayed page and zoom.
// The context of the previous request is cancelled.
func (v *ViewerService) BeginRender(ctx context.Context) (context.Context, domain.RenderRequest, error) {
	if v.info == nil {
		return ctx, domain.RenderRequest{}, domain.ErrNoDocument
	}
	if v.cancelRender != nil {
		v.cancelRender()
	}
	v.generation++

	renderCtx, cancel := context.WithCancel(ctx)
	v.cancelRender = cancel

	req := domain.RenderRequest{
		Generation: v.generation,
		DocumentID: v.info.ID,
		Page:       v.page,
		Zoom:       v.zoom,
	}
	return renderCtx, req, nil
}

// Render rasterises the page of req at its zoom factor.
// It is safe to call off the event loop.
func (v *ViewerService) Render(ctx context.Context, req domain.RenderRequest) (*domain.RasterImage, error) {
	v.mu.RLock()
	doc := v.doc
	current := v.info != nil && v.info.ID == req.DocumentID
	v.mu.RUnlock()

	if !current {
		return nil, &domain.RenderError{Page: req.Page, Err: domain.ErrStaleRender}
	}

	start := time.Now()
	img, err := doc.Render(ctx, req.Page, req.Zoom.Factor)
	if err != nil {
		if errors.Is(err, domain.ErrRender) {
			return nil, err
		}
		return nil, &domain.RenderError{Page: req.Page, Err: err}
	}
	logger.Debug("rendered page %d at %.2f in %v", req.Page+1, req.Zoom.Factor, time.Since(start))
	return img, nil
}

// CommitRender applies img if req is still the newest request and the
// document, page and zoom factor have not changed since. It reports
// whether the image was applied.
func (v *ViewerService) CommitRender(req domain.RenderRequest, img *domain.RasterImage) bool {
	if img == nil || !v.isCurrent(req) {
		logger.Debug("dropping stale render of page %d (generation %d)", req.Page+1, req.Generation)
		return false
	}
	v.raster = img
	if v.cancelRender != nil {
		v.cancelRender()
		v.cancelRender = nil
	}
	return true
}

// CurrentRaster returns the last applied raster, or nil.
func (v *ViewerService) CurrentRaster() *domain.RasterImage {
	return v.raster
}

func (v *ViewerService) isCurrent(req domain.RenderRequest) bool {
	return v.info != nil &&
		req.Generation == v.generation &&
		req.DocumentID == v.info.ID &&
		req.Page == v.page &&
		req.Zoom.Factor == v.zoom.Factor
}

// openDocument opens path, wrapping failures in *domain.OpenError.
func (v *ViewerService) openDocument(ctx context.Context, path string) (driven.Document, error) {
	doc, err := v.renderer.Open(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrOpen) {
			return nil, err
		}
		return nil, &domain.OpenError{Path: path, Err: err}
	}
	return doc, nil
}

// replaceDocument swaps in doc under a fresh document ID. The word index,
// the selection and any in-flight render are discarded.
func (v *ViewerService) replaceDocument(
	doc driven.Document, path string, page int, zoom domain.ZoomState,
) *domain.DocumentInfo {
	info := &domain.DocumentInfo{
		ID:        v.newID(),
		Path:      path,
		PageCount: doc.PageCount(),
	}

	v.mu.Lock()
	old := v.doc
	v.doc = doc
	v.info = info
	v.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			logger.Warn("closing previous document: %v", err)
		}
	}

	v.words.Reset(info.ID, doc)
	v.invalidate()
	v.page = page
	v.zoom = zoom

	return v.Document()
}

// invalidate resets the selection and drops the current raster and any
// in-flight render.
func (v *ViewerService) invalidate() {
	v.session.Reset()
	if v.cancelRender != nil {
		v.cancelRender()
		v.cancelRender = nil
	}
	v.generation++
	v.raster = nil
}

// currentWords returns the cached words of the displayed page.
func (v *ViewerService) currentWords() ([]domain.WordBox, bool) {
	if v.info == nil {
		return nil, false
	}
	return v.words.Lookup(v.State().PageID())
}

func (v *ViewerService) publish(text string) error {
	if v.clipboard == nil {
		return errors.New("no clipboard configured")
	}
	if err := v.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	logger.Debug("copied %d bytes to clipboard", len(text))
	return nil
}

func (v *ViewerService) lastVisit(ctx context.Context, path string) *domain.RecentDocument {
	if v.recentStore == nil {
		return nil
	}
	recent, err := v.recentStore.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("recent documents: %v", err)
		}
		return nil
	}
	return recent
}

// record remembers the open document in the recent store.
func (v *ViewerService) record(ctx context.Context) {
	if v.recentStore == nil || v.info == nil {
		return
	}
	entry := domain.RecentDocument{
		Path:      v.info.Path,
		PageCount: v.info.PageCount,
		LastPage:  v.page,
		Zoom:      v.zoom.Factor,
		OpenedAt:  time.Now(),
	}
	if err := v.recentStore.Touch(ctx, entry); err != nil {
		logger.Warn("recent documents: %v", err)
	}
}
