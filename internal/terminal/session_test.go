package terminal

import (
	"errors"
	"strings"
	"testing"
)

func enteredSession(t *testing.T) (*Session, *Virtual) {
	t.Helper()
	v := NewVirtual(20, 4)
	s := NewSession(v)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter failed: %v", err)
	}
	return s, v
}

func TestEnterSwitchesAllModes(t *testing.T) {
	s, v := enteredSession(t)
	want := Mode{Raw: true, AltScreen: true, Mouse: true, CursorHidden: true}
	if got := v.State(); got != want {
		t.Fatalf("expected terminal state %+v, got %+v", want, got)
	}
	if got := s.Mode(); got != want {
		t.Fatalf("expected session mode %+v, got %+v", want, got)
	}
	if !strings.HasSuffix(v.Output(), clearScreen) {
		t.Fatalf("expected screen to be cleared after enter, got %q", v.Output())
	}
}

func TestEnterTwiceFails(t *testing.T) {
	s, v := enteredSession(t)
	if err := s.Enter(); !errors.Is(err, ErrAlreadyEntered) {
		t.Fatalf("expected ErrAlreadyEntered, got %v", err)
	}
	if v.RawEnables() != 1 {
		t.Fatalf("expected raw mode enabled once, got %d", v.RawEnables())
	}
}

func TestExitRestoresEverything(t *testing.T) {
	s, v := enteredSession(t)
	if err := s.Exit(); err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if got := v.State(); got.Active() {
		t.Fatalf("expected terminal restored, got %+v", got)
	}
	if got := s.Mode(); got.Active() {
		t.Fatalf("expected session mode cleared, got %+v", got)
	}
	if v.Resets() != 1 {
		t.Fatalf("expected one reset, got %d", v.Resets())
	}
}

func TestExitIsIdempotent(t *testing.T) {
	s, v := enteredSession(t)
	for i := 0; i < 3; i++ {
		if err := s.Exit(); err != nil {
			t.Fatalf("exit %d failed: %v", i, err)
		}
	}
	if v.Resets() != 1 {
		t.Fatalf("expected one reset after repeated exit, got %d", v.Resets())
	}
}

func TestExitBeforeEnterDoesNothing(t *testing.T) {
	v := NewVirtual(10, 2)
	if err := NewSession(v).Exit(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if v.Output() != "" {
		t.Fatalf("expected no output, got %q", v.Output())
	}
}

func TestEnterRollsBackWhenRawModeFails(t *testing.T) {
	v := NewVirtual(10, 2)
	cause := errors.New("not a tty")
	v.FailRawMode(cause)
	s := NewSession(v)

	err := s.Enter()
	if !errors.Is(err, ErrModeSwitchFailed) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrModeSwitchFailed wrapping cause, got %v", err)
	}
	if got := v.State(); got.Active() {
		t.Fatalf("expected no active modes, got %+v", got)
	}
	if s.Mode().Active() {
		t.Fatalf("expected session mode cleared, got %+v", s.Mode())
	}
}

func TestEnterFailureBeforeAltScreenWritesNothing(t *testing.T) {
	v := NewVirtual(10, 2)
	v.FailRawMode(ErrNotTerminal)
	s := NewSession(v)

	if err := s.Enter(); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
	if v.Resets() != 1 {
		t.Fatalf("expected raw mode disabled once during rollback, got %d", v.Resets())
	}
	if out := v.Output(); out != "" {
		t.Fatalf("expected no escape sequences after failed enter, got %q", out)
	}

	if err := Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if out := v.Output(); out != "" {
		t.Fatalf("expected later reset to leave rolled back terminal alone, got %q", out)
	}
}

func TestEnterRollsBackRawModeWhenWriteFails(t *testing.T) {
	v := NewVirtual(10, 2)
	v.FailWrites(errors.New("broken pipe"))
	s := NewSession(v)

	if err := s.Enter(); !errors.Is(err, ErrModeSwitchFailed) {
		t.Fatalf("expected ErrModeSwitchFailed, got %v", err)
	}
	if v.State().Raw {
		t.Fatalf("expected raw mode rolled back")
	}
	if v.Resets() != 1 {
		t.Fatalf("expected one reset during rollback, got %d", v.Resets())
	}
}

func TestExitReportsWriteFailure(t *testing.T) {
	s, v := enteredSession(t)
	v.FailWrites(errors.New("gone"))
	err := s.Exit()
	if !errors.Is(err, ErrModeSwitchFailed) {
		t.Fatalf("expected ErrModeSwitchFailed, got %v", err)
	}
	if v.State().Raw {
		t.Fatalf("expected raw mode disabled despite write failure")
	}
}

func TestDrawWritesSingleFrame(t *testing.T) {
	s, v := enteredSession(t)
	v.ClearOutput()

	err := s.Draw(func(f *Frame) {
		if f.Width() != 20 || f.Height() != 4 {
			t.Errorf("expected 20x4 frame, got %dx%d", f.Width(), f.Height())
		}
		f.SetLine(0, "count: 1")
	})
	if err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	out := v.Output()
	if !strings.HasPrefix(out, beginSync) || !strings.HasSuffix(out, endSync) {
		t.Fatalf("expected synchronized frame, got %q", out)
	}
	if !strings.Contains(out, "count: 1") {
		t.Fatalf("expected frame content, got %q", out)
	}
}

func TestDrawFollowsResize(t *testing.T) {
	s, v := enteredSession(t)
	v.Resize(7, 2)
	var width, height int
	if err := s.Draw(func(f *Frame) { width, height = f.Width(), f.Height() }); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if width != 7 || height != 2 {
		t.Fatalf("expected 7x2 frame, got %dx%d", width, height)
	}
}

func TestDrawErrors(t *testing.T) {
	v := NewVirtual(10, 2)
	s := NewSession(v)
	if err := s.Draw(func(*Frame) {}); !errors.Is(err, ErrNotEntered) {
		t.Fatalf("expected ErrNotEntered before enter, got %v", err)
	}

	s, v = enteredSession(t)
	v.FailSize(errors.New("ioctl"))
	if err := s.Draw(func(*Frame) {}); !errors.Is(err, ErrDrawFailed) {
		t.Fatalf("expected ErrDrawFailed on size error, got %v", err)
	}

	v.FailSize(nil)
	v.FailWrites(errors.New("eio"))
	if err := s.Draw(func(*Frame) {}); !errors.Is(err, ErrDrawFailed) {
		t.Fatalf("expected ErrDrawFailed on write error, got %v", err)
	}
	v.FailWrites(nil)

	if err := s.Exit(); err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if err := s.Draw(func(*Frame) {}); !errors.Is(err, ErrNotEntered) {
		t.Fatalf("expected ErrNotEntered after exit, got %v", err)
	}
}
