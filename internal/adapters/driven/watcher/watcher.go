// Package watcher reports changes to open documents using fsnotify.
//
// The parent directory is watched rather than the file itself, because
// many writers replace a file by renaming a temporary one over it.
// Bursts of events are coalesced with a token bucket limiter so a
// document rewritten in several steps triggers one reload per interval.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// settleDelay lets a writer finish before the change is reported.
const settleDelay = 50 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// Watcher watches individual files for changes.
type Watcher struct {
	interval time.Duration

	mu       sync.Mutex
	closed   bool
	done     chan struct{}
	watchers []*fsnotify.Watcher
	wg       sync.WaitGroup
}

// New creates a watcher that reports at most one change per interval.
func New(interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Watch starts watching path.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.watchers = append(w.watchers, fw)

	changes := make(chan struct{}, 1)
	limiter := rate.NewLimiter(rate.Every(w.interval), 1)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx, fw, abs, limiter, changes)
	}()

	logger.Debug("watching %s", abs)
	return changes, nil
}

// Close stops all watches and closes their channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	watchers := w.watchers
	w.watchers = nil
	w.mu.Unlock()

	var errs []error
	for _, fw := range watchers {
		if err := fw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.wg.Wait()
	return errors.Join(errs...)
}

func (w *Watcher) loop(
	ctx context.Context, fw *fsnotify.Watcher, target string, limiter *rate.Limiter, changes chan<- struct{},
) {
	defer close(changes)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !handleFsEvent(event, target) || pending != nil {
				continue
			}
			delay := limiter.Reserve().Delay()
			pending = time.After(max(delay, settleDelay))
		case <-pending:
			pending = nil
			select {
			case changes <- struct{}{}:
			default:
				// A change is already queued.
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", target, err)
		}
	}
}

// handleFsEvent reports whether event changes the contents at target.
func handleFsEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
