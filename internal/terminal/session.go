package terminal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atomicstack/termloop/internal/logging"
	"github.com/atomicstack/termloop/internal/logging/events"
)

// Session owns the terminal between Enter and Exit.
type Session struct {
	platform Platform

	mu      sync.Mutex
	mode    Mode
	entered bool
	exited  bool
}

// NewSession wraps p. Nothing is written until Enter.
func NewSession(p Platform) *Session {
	return &Session{platform: p}
}

// Mode returns the modes the session currently holds.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Enter switches to raw mode, the alternate screen and mouse reporting, then
// hides the cursor and clears the screen. On failure every mode already
// switched on is rolled back before the error is returned.
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entered {
		return ErrAlreadyEntered
	}

	register(s.platform)
	if err := s.platform.EnableRawMode(); err != nil {
		return s.abortEnter("enable raw mode", err)
	}
	s.mode.Raw = true

	if _, err := io.WriteString(s.platform, enterScreen); err != nil {
		return s.abortEnter("enter alternate screen", err)
	}
	s.mode.AltScreen = true
	s.mode.Mouse = true

	if _, err := io.WriteString(s.platform, hideCursor+clearScreen); err != nil {
		return s.abortEnter("hide cursor", err)
	}
	s.mode.CursorHidden = true
	s.entered = true

	width, height, _ := s.platform.Size()
	events.Session.Enter(width, height)
	return nil
}

func (s *Session) abortEnter(step string, cause error) error {
	events.Session.EnterFailed(step, cause)
	var err error
	if s.mode.AltScreen {
		err = Reset()
		_, _ = io.WriteString(s.platform, showCursor)
	} else if rerr := s.platform.DisableRawMode(); rerr != nil {
		err = fmt.Errorf("disable raw mode: %w", rerr)
	}
	if err != nil {
		logging.Errorf("roll back terminal after failed %s: %v", step, err)
	}
	unregister(s.platform)
	s.mode = Mode{}
	return fmt.Errorf("%w: %s: %w", ErrModeSwitchFailed, step, cause)
}

// Exit restores every mode Enter switched on and shows the cursor. Calls
// after the first, or before Enter, do nothing.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.entered || s.exited {
		return nil
	}
	s.exited = true

	err := Reset()
	s.mode.Raw, s.mode.AltScreen, s.mode.Mouse = false, false, false
	if _, werr := io.WriteString(s.platform, showCursor); werr != nil {
		err = errors.Join(err, fmt.Errorf("show cursor: %w", werr))
	} else {
		s.mode.CursorHidden = false
	}
	events.Session.Exit(err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrModeSwitchFailed, err)
	}
	return nil
}

// Draw sizes a frame to the terminal, lets render fill it, and writes the
// result in a single synchronized update.
func (s *Session) Draw(render func(*Frame)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.entered || s.exited {
		return ErrNotEntered
	}

	width, height, err := s.platform.Size()
	if err != nil {
		return fmt.Errorf("%w: query size: %w", ErrDrawFailed, err)
	}
	f := acquireFrame(width, height)
	defer releaseFrame(f)

	render(f)
	if _, err := s.platform.Write(f.compose()); err != nil {
		return fmt.Errorf("%w: %w", ErrDrawFailed, err)
	}
	return nil
}
