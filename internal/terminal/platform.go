package terminal

import (
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Platform is the low-level surface a Session drives. Implementations must
// tolerate DisableRawMode being called when raw mode is not active.
type Platform interface {
	io.Writer
	EnableRawMode() error
	DisableRawMode() error
	Size() (width, height int, err error)
}

// Mode records which terminal modes a Session currently holds.
type Mode struct {
	Raw          bool
	AltScreen    bool
	Mouse        bool
	CursorHidden bool
}

// Active reports whether any restorable mode is on.
func (m Mode) Active() bool {
	return m.Raw || m.AltScreen || m.Mouse || m.CursorHidden
}

var (
	enterAltScreen = ansi.SetAltScreenSaveCursorMode
	leaveAltScreen = ansi.ResetAltScreenSaveCursorMode
	enterMouse     = ansi.SetButtonEventMouseMode + ansi.SetSgrExtMouseMode
	leaveMouse     = ansi.ResetButtonEventMouseMode + ansi.ResetSgrExtMouseMode

	enterScreen = enterAltScreen + enterMouse
	leaveScreen = leaveMouse + leaveAltScreen
	clearScreen = ansi.EraseEntireScreen + ansi.CursorHomePosition
	hideCursor  = ansi.ResetTextCursorEnableMode
	showCursor  = ansi.SetTextCursorEnableMode
	beginSync   = ansi.SetSynchronizedOutputMode
	endSync     = ansi.ResetSynchronizedOutputMode
)
