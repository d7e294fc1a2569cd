// Package app runs the draw, wait, dispatch loop over a terminal session and
// an event source.
package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/termloop/internal/event"
	"github.com/atomicstack/termloop/internal/logging/events"
	"github.com/atomicstack/termloop/internal/terminal"
)

// State is the application state owned by the loop.
type State interface {
	ShouldQuit() bool
}

// Screen is the part of a terminal session the loop drives.
type Screen interface {
	Draw(render func(*terminal.Frame)) error
	Exit() error
}

// Events yields the next event, blocking until one is available.
type Events interface {
	Next(ctx context.Context) (event.Event, error)
}

// Handlers are the dispatch points for each event kind. Key is required; the
// rest are skipped when nil.
type Handlers[S State] struct {
	Key    func(S, tea.KeyMsg)
	Mouse  func(S, tea.MouseEvent)
	Resize func(S, int, int)
	Tick   func(S, time.Time)
}

// RenderFunc draws state into a frame. It must not modify state.
type RenderFunc[S State] func(S, *terminal.Frame)

// ErrNoKeyHandler is returned by Run when Handlers.Key is nil.
var ErrNoKeyHandler = errors.New("app: key handler is required")

// Driver owns the loop for one session.
type Driver[S State] struct {
	screen   Screen
	source   Events
	state    S
	handlers Handlers[S]
	render   RenderFunc[S]
}

func NewDriver[S State](screen Screen, source Events, state S, handlers Handlers[S], render RenderFunc[S]) *Driver[S] {
	return &Driver[S]{
		screen:   screen,
		source:   source,
		state:    state,
		handlers: handlers,
		render:   render,
	}
}

// Run loops until the state asks to quit, the source fails, a draw fails or
// ctx is done. The screen is exited exactly once on every return path; a
// panic resets the terminal instead and propagates.
func (d *Driver[S]) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			terminal.ResetAndRepanic(r)
		}
	}()

	if d.handlers.Key == nil {
		return errors.Join(ErrNoKeyHandler, d.screen.Exit())
	}
	loopErr := d.loop(ctx)
	return errors.Join(loopErr, d.screen.Exit())
}

func (d *Driver[S]) loop(ctx context.Context) error {
	draw := func(f *terminal.Frame) { d.render(d.state, f) }
	for iteration := 1; ; iteration++ {
		if err := d.screen.Draw(draw); err != nil {
			events.Loop.Error(iteration, err)
			return err
		}
		if d.state.ShouldQuit() {
			events.Loop.Quit(iteration)
			return nil
		}

		ev, err := d.source.Next(ctx)
		if err != nil {
			events.Loop.Error(iteration, err)
			return err
		}
		d.dispatch(ev)
	}
}

func (d *Driver[S]) dispatch(ev event.Event) {
	switch ev.Type {
	case event.Key:
		d.handlers.Key(d.state, ev.Key)
	case event.Mouse:
		if d.handlers.Mouse != nil {
			d.handlers.Mouse(d.state, ev.Mouse)
		}
	case event.Resize:
		if d.handlers.Resize != nil {
			d.handlers.Resize(d.state, ev.Width, ev.Height)
		}
	case event.Tick:
		if d.handlers.Tick != nil {
			d.handlers.Tick(d.state, ev.Time)
		}
	}
}
