// Package clipboard provides driven.Clipboard implementations.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Clipboard = (*System)(nil)
	_ driven.Clipboard = (*Memory)(nil)
)

// System writes to the operating system clipboard.
// On Linux it needs xclip, xsel or wl-clipboard.
type System struct{}

// NewSystem creates a system clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents with text.
func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("system clipboard unsupported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory records written text. It is used in tests and when no system
// clipboard is available.
type Memory struct {
	mu     sync.Mutex
	writes []string
	err    error
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText records text, or returns the error set with FailWith.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, text)
	return nil
}

// FailWith makes subsequent writes return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return ""
	}
	return m.writes[len(m.writes)-1]
}

// Writes returns how many times text was written.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}
