// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lasso/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lasso/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateRendering State = "rendering"
	StateError     State = "error"
	StateInfo      State = "info"
)

// Bar displays the page position, zoom, selection and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	page      int
	pageCount int
	zoom      float64
	selection domain.SelectionState
	wordCount int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		zoom:   1,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the position, zoom and state.
func (s *Bar) renderLeft() string {
	position := s.styles.Normal.Render(fmt.Sprintf("page %d/%d  %d%%", s.page+1, s.pageCount, s.ZoomPercent()))

	var detail string
	switch s.state {
	case StateRendering:
		detail = s.styles.Muted.Render("rendering...")
	case StateError:
		if s.message != "" {
			detail = s.styles.Error.Render("error: " + s.message)
		} else {
			detail = s.styles.Error.Render("error")
		}
	case StateInfo:
		detail = s.styles.Success.Render(s.message)
	case StateReady:
		detail = s.renderSelection()
	}

	if detail == "" {
		return position
	}
	return position + "  " + detail
}

func (s *Bar) renderSelection() string {
	switch s.selection {
	case domain.SelectionDragging:
		return s.styles.Selected.Render(fmt.Sprintf("selecting %d words", s.wordCount))
	case domain.SelectionCommitted:
		if s.wordCount == 0 {
			return s.styles.Muted.Render("nothing selected")
		}
		return s.styles.Selected.Render(fmt.Sprintf("%d words selected", s.wordCount))
	case domain.SelectionIdle:
	}
	return ""
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.selection == domain.SelectionCommitted && s.wordCount > 0 {
		bindings = s.keymap.SelectionHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetError shows err until the next Clear.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.message = err.Error()
}

// SetInfo shows a transient message until the next Clear.
func (s *Bar) SetInfo(message string) {
	s.state = StateInfo
	s.message = message
}

// SetViewer copies the displayed position from the viewer state.
func (s *Bar) SetViewer(state domain.ViewerState) {
	s.page = state.Page
	s.pageCount = 0
	if state.Document != nil {
		s.pageCount = state.Document.PageCount
	}
	s.zoom = state.Zoom.Factor
}

// SetSelection sets the selection state and the highlighted word count.
func (s *Bar) SetSelection(state domain.SelectionState, words int) {
	s.selection = state
	s.wordCount = words
}

// Page returns the zero-based page shown.
func (s *Bar) Page() int {
	return s.page
}

// ZoomPercent returns the zoom factor as a rounded percentage.
func (s *Bar) ZoomPercent() int {
	return int(s.zoom*100 + 0.5)
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
