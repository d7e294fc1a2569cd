package counter

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/termloop/internal/app"
)

// Update applies a key press to s. Unbound keys are ignored.
func Update(s *State, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Quit):
		s.Quit()
	case key.Matches(msg, keys.Increment):
		s.Increment()
	case key.Matches(msg, keys.Decrement):
		s.Decrement()
	case key.Matches(msg, keys.Reset):
		s.Reset()
	}
}

func onMouse(s *State, m tea.MouseEvent) {
	s.Mouse = m
	s.HasMouse = true
}

func onResize(s *State, width, height int) {
	s.Width, s.Height = width, height
}

// Handlers wires the counter into the loop. Ticks only trigger a redraw.
func Handlers() app.Handlers[*State] {
	return app.Handlers[*State]{
		Key:    Update,
		Mouse:  onMouse,
		Resize: onResize,
	}
}
