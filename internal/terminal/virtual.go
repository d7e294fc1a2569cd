package terminal

import (
	"strings"
	"sync"
)

// Virtual is an in-memory Platform. It interprets the mode sequences written
// to it so tests can assert on terminal state instead of raw bytes.
type Virtual struct {
	mu sync.Mutex

	width  int
	height int
	out    strings.Builder
	mode   Mode

	rawEnables int
	resets     int

	enableErr error
	writeErr  error
	sizeErr   error
}

// NewVirtual returns a cooked, main-screen terminal of the given size.
func NewVirtual(width, height int) *Virtual {
	return &Virtual{width: width, height: height}
}

func (v *Virtual) EnableRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.enableErr != nil {
		return v.enableErr
	}
	v.rawEnables++
	v.mode.Raw = true
	return nil
}

// DisableRawMode counts as one reset whether or not raw mode was on.
func (v *Virtual) DisableRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
	v.mode.Raw = false
	return nil
}

func (v *Virtual) Size() (int, int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sizeErr != nil {
		return 0, 0, v.sizeErr
	}
	return v.width, v.height, nil
}

func (v *Virtual) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.writeErr != nil {
		return 0, v.writeErr
	}
	s := string(p)
	v.mode.AltScreen = toggled(s, enterAltScreen, leaveAltScreen, v.mode.AltScreen)
	v.mode.Mouse = toggled(s, enterMouse, leaveMouse, v.mode.Mouse)
	v.mode.CursorHidden = toggled(s, hideCursor, showCursor, v.mode.CursorHidden)
	v.out.WriteString(s)
	return len(p), nil
}

// Resize changes what Size reports.
func (v *Virtual) Resize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.mu.Unlock()
}

// FailRawMode makes EnableRawMode return err.
func (v *Virtual) FailRawMode(err error) {
	v.mu.Lock()
	v.enableErr = err
	v.mu.Unlock()
}

// FailWrites makes every Write return err. A nil err clears it.
func (v *Virtual) FailWrites(err error) {
	v.mu.Lock()
	v.writeErr = err
	v.mu.Unlock()
}

// FailSize makes Size return err.
func (v *Virtual) FailSize(err error) {
	v.mu.Lock()
	v.sizeErr = err
	v.mu.Unlock()
}

// State returns the modes implied by everything written so far.
func (v *Virtual) State() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Resets reports how many times DisableRawMode ran.
func (v *Virtual) Resets() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resets
}

// RawEnables reports how many times EnableRawMode succeeded.
func (v *Virtual) RawEnables() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rawEnables
}

// Output returns every byte written.
func (v *Virtual) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.String()
}

// ClearOutput discards recorded output without touching mode state.
func (v *Virtual) ClearOutput() {
	v.mu.Lock()
	v.out.Reset()
	v.mu.Unlock()
}

// toggled applies whichever of on and off appears last in s.
func toggled(s, on, off string, current bool) bool {
	onAt, offAt := strings.LastIndex(s, on), strings.LastIndex(s, off)
	switch {
	case onAt < 0 && offAt < 0:
		return current
	case onAt > offAt:
		return true
	default:
		return false
	}
}
