package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/termloop/internal/event"
	"github.com/atomicstack/termloop/internal/terminal"
)

// Config describes user-provided application options.
type Config struct {
	TickRate time.Duration
}

// Run takes over the controlling terminal, reading from stdin and drawing to
// stderr, and drives state until it quits. SIGTERM and SIGHUP end the loop
// through the same teardown as a normal quit. Panics in handlers or render
// reset the terminal in Driver.Run; panics in the event source go through its
// panic handler.
func Run[S State](ctx context.Context, cfg Config, state S, handlers Handlers[S], render RenderFunc[S]) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	tty := terminal.NewTTY(os.Stdin, os.Stderr)
	return runOn(ctx, cfg, tty, tty, tty.WatchResize, state, handlers, render)
}

func runOn[S State](
	ctx context.Context,
	cfg Config,
	platform terminal.Platform,
	input event.Input,
	resize event.ResizeFunc,
	state S,
	handlers Handlers[S],
	render RenderFunc[S],
) error {
	session := terminal.NewSession(platform)
	if err := session.Enter(); err != nil {
		return fmt.Errorf("enter terminal session: %w", err)
	}

	opts := []event.Option{
		event.WithTickRate(cfg.TickRate),
		event.WithPanicHandler(terminal.ResetAndRepanic),
	}
	if resize != nil {
		opts = append(opts, event.WithResize(resize))
	}
	source := event.NewSource(ctx, input, opts...)
	defer func() {
		source.Stop()
		source.Wait()
	}()

	return NewDriver(session, source, state, handlers, render).Run(ctx)
}
