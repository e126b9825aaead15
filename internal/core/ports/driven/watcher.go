package driven

import "context"

// FileWatcher reports changes to a watched file.
type FileWatcher interface {
	// Watch starts watching path. A value is sent on the returned channel
	// each time the file changes, coalesced by the implementation.
	// The channel is closed when ctx is cancelled or Close is called.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)

	// Close stops all watches.
	Close() error
}
