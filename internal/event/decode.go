package event

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	esc = 0x1b
	del = 0x7f

	// maxSequence bounds an unterminated escape sequence before it is
	// discarded as garbage.
	maxSequence = 64
)

// modified holds the key for each of none, shift, ctrl and ctrl+shift.
type modified [4]tea.KeyType

var csiLetters = map[byte]modified{
	'A': {tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp},
	'B': {tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown},
	'C': {tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight, tea.KeyCtrlShiftRight},
	'D': {tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft, tea.KeyCtrlShiftLeft},
	'H': {tea.KeyHome, tea.KeyShiftHome, tea.KeyCtrlHome, tea.KeyCtrlShiftHome},
	'F': {tea.KeyEnd, tea.KeyShiftEnd, tea.KeyCtrlEnd, tea.KeyCtrlShiftEnd},
	'P': {tea.KeyF1, tea.KeyF1, tea.KeyF1, tea.KeyF1},
	'Q': {tea.KeyF2, tea.KeyF2, tea.KeyF2, tea.KeyF2},
	'R': {tea.KeyF3, tea.KeyF3, tea.KeyF3, tea.KeyF3},
	'S': {tea.KeyF4, tea.KeyF4, tea.KeyF4, tea.KeyF4},
	'Z': {tea.KeyShiftTab, tea.KeyShiftTab, tea.KeyShiftTab, tea.KeyShiftTab},
}

func plain(k tea.KeyType) modified { return modified{k, k, k, k} }

var csiTilde = map[int]modified{
	1:  csiLetters['H'],
	2:  plain(tea.KeyInsert),
	3:  plain(tea.KeyDelete),
	4:  csiLetters['F'],
	5:  {tea.KeyPgUp, tea.KeyPgUp, tea.KeyCtrlPgUp, tea.KeyCtrlPgUp},
	6:  {tea.KeyPgDown, tea.KeyPgDown, tea.KeyCtrlPgDown, tea.KeyCtrlPgDown},
	7:  csiLetters['H'],
	8:  csiLetters['F'],
	11: plain(tea.KeyF1),
	12: plain(tea.KeyF2),
	13: plain(tea.KeyF3),
	14: plain(tea.KeyF4),
	15: plain(tea.KeyF5),
	17: plain(tea.KeyF6),
	18: plain(tea.KeyF7),
	19: plain(tea.KeyF8),
	20: plain(tea.KeyF9),
	21: plain(tea.KeyF10),
	23: plain(tea.KeyF11),
	24: plain(tea.KeyF12),
}

// decoder turns raw terminal bytes into events. Bytes that may start a longer
// sequence are held until more input arrives or flush is called.
type decoder struct {
	buf []byte
}

func (d *decoder) pending() bool {
	return len(d.buf) > 0
}

func (d *decoder) feed(data []byte, emit func(Event)) {
	d.buf = append(d.buf, data...)
	i := 0
	for i < len(d.buf) {
		n, ev, ok := parse(d.buf[i:])
		if n == 0 {
			break
		}
		i += n
		if ok {
			emit(ev)
		}
	}
	d.buf = d.buf[:copy(d.buf, d.buf[i:])]
}

// flush resolves held bytes once no continuation arrived in time. A held
// ESC becomes the Escape key.
func (d *decoder) flush(emit func(Event)) {
	for d.pending() {
		if d.buf[0] == esc {
			emit(keyEvent(tea.Key{Type: tea.KeyEsc}))
		}
		d.buf = d.buf[:copy(d.buf, d.buf[1:])]
		d.feed(nil, emit)
	}
}

// parse decodes one event from the front of b. It returns the number of bytes
// consumed, zero when b holds an incomplete sequence, and whether an event
// was produced.
func parse(b []byte) (int, Event, bool) {
	switch {
	case b[0] == esc:
		return parseEscape(b)
	case b[0] < 0x20:
		return 1, keyEvent(tea.Key{Type: tea.KeyType(b[0])}), true
	case b[0] == del:
		return 1, keyEvent(tea.Key{Type: tea.KeyBackspace}), true
	}
	return parseRune(b, false)
}

func parseRune(b []byte, alt bool) (int, Event, bool) {
	if !utf8.FullRune(b) {
		return 0, Event{}, false
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size == 1 {
		return 1, Event{}, false
	}
	k := tea.Key{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}
	if r == ' ' {
		k.Type = tea.KeySpace
	}
	return size, keyEvent(k), true
}

func parseEscape(b []byte) (int, Event, bool) {
	if len(b) < 2 {
		return 0, Event{}, false
	}
	switch c := b[1]; {
	case c == '[':
		return parseCSI(b)
	case c == 'O':
		if len(b) < 3 {
			return 0, Event{}, false
		}
		if m, ok := csiLetters[b[2]]; ok {
			return 3, keyEvent(tea.Key{Type: m[0]}), true
		}
		return 3, Event{}, false
	case c == esc:
		return 2, keyEvent(tea.Key{Type: tea.KeyEsc, Alt: true}), true
	case c < 0x20:
		return 2, keyEvent(tea.Key{Type: tea.KeyType(c), Alt: true}), true
	case c == del:
		return 2, keyEvent(tea.Key{Type: tea.KeyBackspace, Alt: true}), true
	}
	n, ev, ok := parseRune(b[1:], true)
	if n == 0 {
		return 0, Event{}, false
	}
	return n + 1, ev, ok
}

// parseCSI handles ESC [ sequences, including SGR mouse reports.
func parseCSI(b []byte) (int, Event, bool) {
	end := -1
	for i := 2; i < len(b) && i < maxSequence; i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		if len(b) >= maxSequence {
			return maxSequence, Event{}, false
		}
		return 0, Event{}, false
	}

	params, final := string(b[2:end]), b[end]
	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		ev, ok := parseSGRMouse(params[1:], final == 'm')
		return end + 1, ev, ok
	}
	k, ok := csiKey(params, final)
	return end + 1, keyEvent(k), ok
}

func csiKey(params string, final byte) (tea.Key, bool) {
	fields := splitParams(params)
	param := func(i, def int) int {
		if i < len(fields) && fields[i] > 0 {
			return fields[i]
		}
		return def
	}

	var (
		m   modified
		mod int
		ok  bool
	)
	if final == '~' {
		m, ok = csiTilde[param(0, 0)]
		mod = param(1, 1)
	} else {
		m, ok = csiLetters[final]
		mod = param(1, 1)
	}
	if !ok {
		return tea.Key{}, false
	}

	// xterm encodes modifiers as 1 + (shift | alt<<1 | ctrl<<2).
	bits := mod - 1
	idx := 0
	if bits&1 != 0 {
		idx |= 1
	}
	if bits&4 != 0 {
		idx |= 2
	}
	return tea.Key{Type: m[idx], Alt: bits&2 != 0}, true
}

// parseSGRMouse decodes the "Btn;X;Y" body of an SGR mouse report.
func parseSGRMouse(params string, release bool) (Event, bool) {
	fields := splitParams(params)
	if len(fields) != 3 || fields[0] < 0 || fields[1] < 1 || fields[2] < 1 {
		return Event{}, false
	}
	btn := fields[0]
	m := tea.MouseEvent{
		X:     fields[1] - 1,
		Y:     fields[2] - 1,
		Shift: btn&4 != 0,
		Alt:   btn&8 != 0,
		Ctrl:  btn&16 != 0,
	}

	switch {
	case btn&64 != 0:
		m.Button = [...]tea.MouseButton{
			tea.MouseButtonWheelUp,
			tea.MouseButtonWheelDown,
			tea.MouseButtonWheelLeft,
			tea.MouseButtonWheelRight,
		}[btn&3]
	case btn&128 != 0:
		m.Button = [...]tea.MouseButton{
			tea.MouseButtonBackward,
			tea.MouseButtonForward,
			tea.MouseButtonNone,
			tea.MouseButtonNone,
		}[btn&3]
	default:
		m.Button = [...]tea.MouseButton{
			tea.MouseButtonLeft,
			tea.MouseButtonMiddle,
			tea.MouseButtonRight,
			tea.MouseButtonNone,
		}[btn&3]
	}

	switch {
	case release:
		m.Action = tea.MouseActionRelease
	case btn&32 != 0:
		m.Action = tea.MouseActionMotion
	default:
		m.Action = tea.MouseActionPress
	}
	return Event{Type: Mouse, Mouse: m}, true
}

// splitParams parses semicolon separated numbers. Empty or invalid fields
// become zero.
func splitParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			out[i] = n
		}
	}
	return out
}

func keyEvent(k tea.Key) Event {
	return Event{Type: Key, Key: tea.KeyMsg(k)}
}
