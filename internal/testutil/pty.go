package testutil

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

// PTY is a pseudo-terminal pair. Tests drive the Controller side and hand the
// Terminal side to code that expects a real tty.
type PTY struct {
	Controller *os.File
	Terminal   *os.File
}

// OpenPTY allocates a pseudo-terminal sized cols x rows, skipping the test
// when the system cannot provide one. Both ends are closed on cleanup.
func OpenPTY(t *testing.T, cols, rows int) *PTY {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("skipping: pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		t.Fatalf("failed to size pty: %v", err)
	}
	return &PTY{Controller: ptmx, Terminal: tty}
}

// Resize changes the pty window size.
func (p *PTY) Resize(t *testing.T, cols, rows int) {
	t.Helper()
	if err := pty.Setsize(p.Controller, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		t.Fatalf("failed to resize pty: %v", err)
	}
}

// Type writes s to the terminal's input.
func (p *PTY) Type(t *testing.T, s string) {
	t.Helper()
	if _, err := p.Controller.WriteString(s); err != nil {
		t.Fatalf("failed to write to pty: %v", err)
	}
}
