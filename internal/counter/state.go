// Package counter is a small demo application for the loop: a saturating
// counter driven by the keyboard.
package counter

import tea "github.com/charmbracelet/bubbletea"

const (
	MinCount = 0
	MaxCount = 255
)

// State is the counter application state.
type State struct {
	Count int

	// Width and Height hold the last reported terminal size, zero until the
	// first resize.
	Width  int
	Height int

	// Mouse is the most recent pointer event; HasMouse is false until one
	// arrives.
	Mouse    tea.MouseEvent
	HasMouse bool

	quit bool
}

func New() *State {
	return &State{}
}

func (s *State) ShouldQuit() bool { return s.quit }

// Quit asks the loop to stop after the next draw.
func (s *State) Quit() { s.quit = true }

// Increment adds one, stopping at MaxCount.
func (s *State) Increment() {
	if s.Count < MaxCount {
		s.Count++
	}
}

// Decrement subtracts one, stopping at MinCount.
func (s *State) Decrement() {
	if s.Count > MinCount {
		s.Count--
	}
}

func (s *State) Reset() { s.Count = 0 }
