package terminal

import "errors"

var (
	// ErrModeSwitchFailed wraps any failure to enter or leave a terminal mode.
	ErrModeSwitchFailed = errors.New("terminal mode switch failed")
	// ErrDrawFailed wraps failures to size or write a frame.
	ErrDrawFailed = errors.New("terminal draw failed")
	// ErrNotTerminal is returned when the input is not a terminal device.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrAlreadyEntered is returned by a second Enter on the same Session.
	ErrAlreadyEntered = errors.New("terminal session already entered")
	// ErrNotEntered is returned by Draw outside of Enter and Exit.
	ErrNotEntered = errors.New("terminal session not entered")
	// ErrUnsupportedPlatform is returned on systems without a tty backend.
	ErrUnsupportedPlatform = errors.New("terminal platform not supported")
)
