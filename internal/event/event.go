// Package event merges terminal input and a periodic tick into one ordered
// stream of Events.
package event

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Type tags the variant carried by an Event.
type Type uint8

const (
	Tick Type = iota
	Key
	Mouse
	Resize
)

func (t Type) String() string {
	switch t {
	case Tick:
		return "tick"
	case Key:
		return "key"
	case Mouse:
		return "mouse"
	case Resize:
		return "resize"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Event is one item of the stream. Only the field matching Type is set.
type Event struct {
	Type   Type
	Key    tea.KeyMsg
	Mouse  tea.MouseEvent
	Width  int
	Height int
	Time   time.Time
}

func (e Event) String() string {
	switch e.Type {
	case Key:
		return "key(" + e.Key.String() + ")"
	case Mouse:
		return fmt.Sprintf("mouse(%s@%d,%d)", e.Mouse.String(), e.Mouse.X, e.Mouse.Y)
	case Resize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	default:
		return e.Type.String()
	}
}
