package event

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func decodeAll(chunks ...string) []Event {
	var (
		dec decoder
		out []Event
	)
	emit := func(ev Event) { out = append(out, ev) }
	for _, c := range chunks {
		dec.feed([]byte(c), emit)
	}
	return out
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tea.Key
	}{
		{"rune", "a", []tea.Key{{Type: tea.KeyRunes, Runes: []rune{'a'}}}},
		{"two runes", "jk", []tea.Key{{Type: tea.KeyRunes, Runes: []rune{'j'}}, {Type: tea.KeyRunes, Runes: []rune{'k'}}}},
		{"multibyte rune", "é", []tea.Key{{Type: tea.KeyRunes, Runes: []rune{'é'}}}},
		{"space", " ", []tea.Key{{Type: tea.KeySpace, Runes: []rune{' '}}}},
		{"enter", "\r", []tea.Key{{Type: tea.KeyEnter}}},
		{"tab", "\t", []tea.Key{{Type: tea.KeyTab}}},
		{"backspace", "\x7f", []tea.Key{{Type: tea.KeyBackspace}}},
		{"ctrl+c", "\x03", []tea.Key{{Type: tea.KeyCtrlC}}},
		{"up", "\x1b[A", []tea.Key{{Type: tea.KeyUp}}},
		{"ss3 down", "\x1bOB", []tea.Key{{Type: tea.KeyDown}}},
		{"shift+left", "\x1b[1;2D", []tea.Key{{Type: tea.KeyShiftLeft}}},
		{"ctrl+right", "\x1b[1;5C", []tea.Key{{Type: tea.KeyCtrlRight}}},
		{"ctrl+shift+up", "\x1b[1;6A", []tea.Key{{Type: tea.KeyCtrlShiftUp}}},
		{"alt+up", "\x1b[1;3A", []tea.Key{{Type: tea.KeyUp, Alt: true}}},
		{"home", "\x1b[H", []tea.Key{{Type: tea.KeyHome}}},
		{"end tilde", "\x1b[4~", []tea.Key{{Type: tea.KeyEnd}}},
		{"delete", "\x1b[3~", []tea.Key{{Type: tea.KeyDelete}}},
		{"page up", "\x1b[5~", []tea.Key{{Type: tea.KeyPgUp}}},
		{"ctrl+page down", "\x1b[6;5~", []tea.Key{{Type: tea.KeyCtrlPgDown}}},
		{"f1 ss3", "\x1bOP", []tea.Key{{Type: tea.KeyF1}}},
		{"f5", "\x1b[15~", []tea.Key{{Type: tea.KeyF5}}},
		{"f12", "\x1b[24~", []tea.Key{{Type: tea.KeyF12}}},
		{"shift+tab", "\x1b[Z", []tea.Key{{Type: tea.KeyShiftTab}}},
		{"alt+rune", "\x1bx", []tea.Key{{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}}},
		{"alt+ctrl", "\x1b\x01", []tea.Key{{Type: tea.KeyCtrlA, Alt: true}}},
		{"alt+esc", "\x1b\x1b", []tea.Key{{Type: tea.KeyEsc, Alt: true}}},
		{"focus ignored", "\x1b[Iq", []tea.Key{{Type: tea.KeyRunes, Runes: []rune{'q'}}}},
		{"sequence then rune", "\x1b[Bq", []tea.Key{{Type: tea.KeyDown}, {Type: tea.KeyRunes, Runes: []rune{'q'}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d events, got %d: %v", len(tt.want), len(got), got)
			}
			for i, ev := range got {
				if ev.Type != Key {
					t.Fatalf("event %d: expected key, got %s", i, ev.Type)
				}
				if !reflect.DeepEqual(tea.Key(ev.Key), tt.want[i]) {
					t.Fatalf("event %d: expected %+v, got %+v", i, tt.want[i], tea.Key(ev.Key))
				}
			}
		})
	}
}

func TestDecodeMouse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tea.MouseEvent
	}{
		{"left press", "\x1b[<0;10;5M", tea.MouseEvent{X: 9, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}},
		{"left release", "\x1b[<0;10;5m", tea.MouseEvent{X: 9, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}},
		{"right press", "\x1b[<2;1;1M", tea.MouseEvent{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}},
		{"wheel up", "\x1b[<64;3;3M", tea.MouseEvent{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}},
		{"wheel down", "\x1b[<65;3;3M", tea.MouseEvent{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}},
		{"drag", "\x1b[<32;4;2M", tea.MouseEvent{X: 3, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}},
		{"motion", "\x1b[<35;4;2M", tea.MouseEvent{X: 3, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}},
		{"ctrl+shift", "\x1b[<20;1;1M", tea.MouseEvent{Shift: true, Ctrl: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}},
		{"alt middle", "\x1b[<9;1;1M", tea.MouseEvent{Alt: true, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(tt.input)
			if len(got) != 1 || got[0].Type != Mouse {
				t.Fatalf("expected one mouse event, got %v", got)
			}
			if got[0].Mouse != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got[0].Mouse)
			}
		})
	}
}

func TestDecodeMalformedMouseIsDropped(t *testing.T) {
	got := decodeAll("\x1b[<0;0M", "a")
	if len(got) != 1 || got[0].Key.String() != "a" {
		t.Fatalf("expected only the trailing key, got %v", got)
	}
}

func TestDecodeAcrossChunks(t *testing.T) {
	got := decodeAll("\x1b[", "1;5", "A", "\xc3", "\xa9")
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %v", got)
	}
	if got[0].Key.Type != tea.KeyCtrlUp {
		t.Fatalf("expected ctrl+up, got %v", got[0])
	}
	if string(got[1].Key.Runes) != "é" {
		t.Fatalf("expected é, got %v", got[1])
	}
}

func TestDecoderHoldsIncompleteSequence(t *testing.T) {
	var (
		dec decoder
		out []Event
	)
	emit := func(ev Event) { out = append(out, ev) }

	dec.feed([]byte("\x1b"), emit)
	if len(out) != 0 || !dec.pending() {
		t.Fatalf("expected lone escape to be held, got %v", out)
	}
	dec.flush(emit)
	if len(out) != 1 || out[0].Key.Type != tea.KeyEsc || out[0].Key.Alt {
		t.Fatalf("expected plain escape after flush, got %v", out)
	}
	if dec.pending() {
		t.Fatalf("expected nothing pending after flush")
	}
}

func TestDecoderFlushResolvesPartialCSI(t *testing.T) {
	var (
		dec decoder
		out []Event
	)
	emit := func(ev Event) { out = append(out, ev) }

	dec.feed([]byte("\x1b["), emit)
	dec.flush(emit)
	if len(out) != 2 {
		t.Fatalf("expected escape and bracket, got %v", out)
	}
	if out[0].Key.Type != tea.KeyEsc || string(out[1].Key.Runes) != "[" {
		t.Fatalf("unexpected events: %v", out)
	}
}

func TestDecoderDiscardsRunawaySequence(t *testing.T) {
	input := "\x1b["
	for i := 0; i < maxSequence; i++ {
		input += "1"
	}
	got := decodeAll(input + "q")
	if len(got) == 0 || got[len(got)-1].Key.String() != "q" {
		t.Fatalf("expected decoder to recover after runaway sequence, got %v", got)
	}
}
