//go:build unix

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const readBufferSize = 4096

// TTY is the Platform backed by a real terminal device. Input is read from in
// and all output goes to out, which may be a different handle on the same
// terminal (stderr, for instance).
type TTY struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	saved atomic.Pointer[term.State]
	buf   []byte
}

// NewTTY wraps the given handles. Whether they are terminals is checked on
// EnableRawMode.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
		buf:   make([]byte, readBufferSize),
	}
}

// EnableRawMode puts the input into raw mode, keeping the original state for
// DisableRawMode. Repeated calls keep the first saved state.
func (t *TTY) EnableRawMode() error {
	if !term.IsTerminal(t.inFd) {
		return fmt.Errorf("%w: %s", ErrNotTerminal, t.in.Name())
	}
	state, err := term.MakeRaw(t.inFd)
	if err != nil {
		return err
	}
	t.saved.CompareAndSwap(nil, state)
	return nil
}

// DisableRawMode restores the saved state. It does nothing when raw mode is
// not active.
func (t *TTY) DisableRawMode() error {
	state := t.saved.Swap(nil)
	if state == nil {
		return nil
	}
	if err := term.Restore(t.inFd, state); err != nil {
		t.saved.CompareAndSwap(nil, state)
		return err
	}
	return nil
}

// Size reports the output's dimensions in cells.
func (t *TTY) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Poll waits up to timeout for input. It returns (nil, nil) when the timeout
// elapses with nothing to read and io.EOF once the terminal hangs up. Signal
// interruptions do not shorten the wait. The returned slice is only valid
// until the next call.
func (t *TTY) Poll(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
	for {
		wait := time.Until(deadline)
		if wait < 0 {
			wait = 0
		}
		n, err := unix.Poll(fds, int(wait.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			if time.Now().Before(deadline) {
				continue
			}
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("poll input: %w", err)
		}
		if n == 0 {
			return nil, nil
		}
		revents := fds[0].Revents
		if revents&unix.POLLIN == 0 && revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			return nil, io.EOF
		}

		read, err := unix.Read(t.inFd, t.buf)
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if read == 0 {
			return nil, io.EOF
		}
		return t.buf[:read], nil
	}
}

// WatchResize calls notify with the new size after SIGWINCH until ctx is
// done. Bursts of signals are coalesced so notify runs at most once per
// resizeInterval, always with the latest size.
func (t *TTY) WatchResize(ctx context.Context, notify func(width, height int)) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)
	defer signal.Stop(sigs)

	limit := newThrottle(resizeInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigs:
			if !limit.wait(ctx.Done()) {
				return nil
			}
			width, height, err := t.Size()
			if err != nil {
				return err
			}
			notify(width, height)
		}
	}
}
