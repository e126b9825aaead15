package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/logger"
)

// WordIndex caches the word boxes of each page of the open document.
// Words are extracted from the document once per page and kept until the
// next Reset. Concurrent requests for a page share one extraction.
// Failed extractions are never cached.
//
// WordIndex is safe for concurrent use so prefetches can complete
// off the event loop.
type WordIndex struct {
	mu         sync.Mutex
	documentID string
	doc        driven.Document
	pages      map[int][]domain.WordBox
	inflight   map[int]*wordCall
	misses     int
}

// wordCall is an extraction in progress. words and err are set before
// done is closed.
type wordCall struct {
	done  chan struct{}
	words []domain.WordBox
	err   error
}

// NewWordIndex creates an empty word index with no document.
func NewWordIndex() *WordIndex {
	return &WordIndex{
		pages:    make(map[int][]domain.WordBox),
		inflight: make(map[int]*wordCall),
	}
}

// Reset discards the whole cache and binds the index to a new document.
// Passing a nil document leaves the index unbound. Extractions still
// running for the previous document complete but are not cached.
func (w *WordIndex) Reset(documentID string, doc driven.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.documentID = documentID
	w.doc = doc
	w.pages = make(map[int][]domain.WordBox)
	w.inflight = make(map[int]*wordCall)
	w.misses = 0
}

// WordsFor returns the words of page id, extracting and caching them on
// first use. A caller arriving while the page is being extracted waits
// for that extraction instead of starting another.
func (w *WordIndex) WordsFor(ctx context.Context, id domain.PageID) ([]domain.WordBox, error) {
	for {
		w.mu.Lock()
		if w.doc == nil {
			w.mu.Unlock()
			return nil, domain.ErrNoDocument
		}
		if id.DocumentID != w.documentID {
			w.mu.Unlock()
			return nil, fmt.Errorf("words for page %d: %w", id.Index+1, domain.ErrNoDocument)
		}
		if words, ok := w.pages[id.Index]; ok {
			w.mu.Unlock()
			return words, nil
		}
		if id.Index < 0 || id.Index >= w.doc.PageCount() {
			w.mu.Unlock()
			return nil, fmt.Errorf("words for page %d: %w", id.Index+1, domain.ErrPageOutOfRange)
		}

		call, ok := w.inflight[id.Index]
		if !ok {
			call = &wordCall{done: make(chan struct{})}
			w.inflight[id.Index] = call
			w.misses++
			doc := w.doc
			w.mu.Unlock()
			return w.extract(ctx, doc, id, call)
		}
		w.mu.Unlock()

		select {
		case <-call.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		// The extraction we joined was cancelled by its own caller.
		if isContextErr(call.err) && ctx.Err() == nil {
			continue
		}
		return call.words, call.err
	}
}

// extract runs call and caches its result while id still belongs to the
// bound document.
func (w *WordIndex) extract(
	ctx context.Context, doc driven.Document, id domain.PageID, call *wordCall,
) ([]domain.WordBox, error) {
	logger.Debug("extracting words for page %d", id.Index+1)
	words, err := doc.WordBoxes(ctx, id.Index)
	if err != nil {
		words, err = nil, fmt.Errorf("words for page %d: %w", id.Index+1, err)
	} else {
		if words == nil {
			words = []domain.WordBox{}
		}
		logger.Debug("page %d has %d words", id.Index+1, len(words))
	}
	call.words, call.err = words, err

	w.mu.Lock()
	if id.DocumentID == w.documentID && w.inflight[id.Index] == call {
		delete(w.inflight, id.Index)
		if err == nil {
			w.pages[id.Index] = words
		}
	}
	w.mu.Unlock()
	close(call.done)

	return words, err
}

// Lookup returns the cached words of page id without extracting them.
func (w *WordIndex) Lookup(id domain.PageID) ([]domain.WordBox, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id.DocumentID != w.documentID {
		return nil, false
	}
	words, ok := w.pages[id.Index]
	return words, ok
}

// Store caches words for page id. It reports false and drops the words
// when id belongs to a document other than the bound one.
// An existing entry is kept so readers always see one sequence per page.
func (w *WordIndex) Store(id domain.PageID, words []domain.WordBox) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id.DocumentID != w.documentID || w.doc == nil {
		logger.Debug("dropping words for superseded document %s", id.DocumentID)
		return false
	}
	if _, ok := w.pages[id.Index]; !ok {
		w.pages[id.Index] = words
	}
	return true
}

// Misses returns how many times the document was asked for words since
// the last Reset.
func (w *WordIndex) Misses() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.misses
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
