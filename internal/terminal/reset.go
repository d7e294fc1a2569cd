package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/atomicstack/termloop/internal/logging"
)

type registration struct {
	platform Platform
	// crashed is set by the first panic hook to run for this registration;
	// outer hooks re-raise without touching the terminal again.
	crashed atomic.Bool
}

// active holds the platform of the most recently entered Session. Reset reads
// it without locking so it stays usable while a panicking goroutine still
// owns the Session mutex.
var active atomic.Pointer[registration]

func register(p Platform) {
	active.Store(&registration{platform: p})
}

// unregister drops p if it is still the active platform, so a later Reset
// cannot write to a terminal whose Enter was rolled back.
func unregister(p Platform) {
	if reg := active.Load(); reg != nil && reg.platform == p {
		active.CompareAndSwap(reg, nil)
	}
}

// Reset takes the terminal out of raw mode, leaves the alternate screen and
// disables mouse reporting. It is idempotent and a no-op before any Session
// has entered. Cursor visibility is left to Session.Exit.
func Reset() error {
	reg := active.Load()
	if reg == nil {
		return nil
	}
	var errs []error
	if err := reg.platform.DisableRawMode(); err != nil {
		errs = append(errs, fmt.Errorf("disable raw mode: %w", err))
	}
	if _, err := io.WriteString(reg.platform, leaveScreen); err != nil {
		errs = append(errs, fmt.Errorf("leave alternate screen: %w", err))
	}
	return errors.Join(errs...)
}

// ResetAndRepanic restores the terminal and then re-raises r so the runtime
// still prints the original panic and exits with its usual status. Stacked
// hooks on the same unwinding path reset only once.
func ResetAndRepanic(r any) {
	if reg := active.Load(); reg != nil && reg.crashed.CompareAndSwap(false, true) {
		if err := Reset(); err != nil {
			logging.Errorf("reset terminal after panic: %v", err)
		}
	}
	panic(r)
}

// RestoreOnPanic is meant to be deferred at the top of every goroutine that
// runs while a Session is entered.
func RestoreOnPanic() {
	if r := recover(); r != nil {
		ResetAndRepanic(r)
	}
}
