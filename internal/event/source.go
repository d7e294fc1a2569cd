package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/termloop/internal/logging/events"
)

const (
	// DefaultTickRate is the tick interval when none is configured.
	DefaultTickRate = 250 * time.Millisecond

	// escapeTimeout is how long a lone ESC waits for the rest of a sequence.
	escapeTimeout = 50 * time.Millisecond
)

var (
	// ErrSourceDisconnected is returned by Next once the producers have
	// stopped and every queued event has been delivered. It wraps the cause.
	ErrSourceDisconnected = errors.New("event source disconnected")
	// ErrStopped is the cause reported after Stop or context cancellation.
	ErrStopped = errors.New("event source stopped")
)

// Input is a pollable byte source such as a raw-mode terminal. Poll returns
// (nil, nil) when timeout elapses without input and io.EOF when the input is
// gone.
type Input interface {
	Poll(timeout time.Duration) ([]byte, error)
}

// ResizeFunc blocks until ctx is done, calling notify on every size change.
type ResizeFunc func(ctx context.Context, notify func(width, height int)) error

// State describes whether a Source still produces events.
type State uint32

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Option configures a Source.
type Option func(*Source)

// WithTickRate sets the idle interval after which a Tick is emitted.
// Non-positive values keep the default.
func WithTickRate(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.tickRate = d
		}
	}
}

// WithResize adds a producer that reports terminal size changes.
func WithResize(fn ResizeFunc) Option {
	return func(s *Source) { s.resize = fn }
}

// WithPanicHandler runs fn with the value of any panic raised inside a
// producer goroutine. The panic is re-raised afterwards if fn returns.
func WithPanicHandler(fn func(any)) Option {
	return func(s *Source) { s.onPanic = fn }
}

// Source merges input and ticks into a single ordered stream. Events are
// queued in the order they are produced, without bound, and delivered
// exactly once to a single consumer through Next.
type Source struct {
	in       Input
	tickRate time.Duration
	resize   ResizeFunc
	onPanic  func(any)
	now      func() time.Time

	queue  *queue
	cancel context.CancelFunc
	state  atomic.Uint32
	done   chan struct{}
}

// NewSource starts the producers immediately. They run until ctx is done,
// Stop is called, or the input fails.
func NewSource(ctx context.Context, in Input, opts ...Option) *Source {
	s := &Source{
		in:       in,
		tickRate: DefaultTickRate,
		now:      time.Now,
		queue:    newQueue(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx, s.cancel = context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(gctx) })
	if s.resize != nil {
		g.Go(func() error { return s.resizeLoop(gctx) })
	}

	events.Source.Start(s.tickRate, s.resize != nil)
	go s.finish(g)
	return s
}

func (s *Source) finish(g *errgroup.Group) {
	cause := g.Wait()
	if cause == nil || errors.Is(cause, context.Canceled) {
		cause = ErrStopped
	}
	s.state.Store(uint32(Stopped))
	s.queue.close(fmt.Errorf("%w: %w", ErrSourceDisconnected, cause))
	events.Source.Stop(cause)
	close(s.done)
}

// Next blocks until an event is available or ctx is done. After the source
// stops it keeps returning queued events, then ErrSourceDisconnected.
func (s *Source) Next(ctx context.Context) (Event, error) {
	return s.queue.pop(ctx)
}

// Stop asks the producers to exit. It does not wait; see Wait.
func (s *Source) Stop() {
	s.cancel()
}

// Wait blocks until every producer has exited.
func (s *Source) Wait() {
	<-s.done
}

// State reports whether producers are still running.
func (s *Source) State() State {
	return State(s.state.Load())
}

// Pending reports how many events are queued but not yet consumed.
func (s *Source) Pending() int {
	return s.queue.len()
}

func (s *Source) readLoop(ctx context.Context) error {
	defer s.recoverPanic()

	var dec decoder
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		timeout := s.tickRate
		if dec.pending() {
			timeout = escapeTimeout
		}
		data, err := s.in.Poll(timeout)
		if err != nil {
			dec.flush(s.push)
			return fmt.Errorf("poll input: %w", err)
		}

		switch {
		case len(data) > 0:
			dec.feed(data, s.push)
		case dec.pending():
			dec.flush(s.push)
		default:
			s.push(Event{Type: Tick})
		}
	}
}

func (s *Source) resizeLoop(ctx context.Context) error {
	defer s.recoverPanic()
	return s.resize(ctx, func(width, height int) {
		s.push(Event{Type: Resize, Width: width, Height: height})
	})
}

func (s *Source) push(ev Event) {
	ev.Time = s.now()
	s.queue.push(ev)
}

func (s *Source) recoverPanic() {
	if r := recover(); r != nil {
		if s.onPanic != nil {
			s.onPanic(r)
		}
		panic(r)
	}
}
