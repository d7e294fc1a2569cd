package terminal

import (
	"bytes"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Frame is the off-screen buffer handed to a render callback. Rows are plain
// strings that may carry SGR styling; anything wider than the frame is cut.
type Frame struct {
	width  int
	height int
	lines  []string
	buf    bytes.Buffer
}

var framePool = sync.Pool{
	New: func() any { return new(Frame) },
}

func acquireFrame(width, height int) *Frame {
	f := framePool.Get().(*Frame)
	f.reset(width, height)
	return f
}

func releaseFrame(f *Frame) {
	framePool.Put(f)
}

// NewFrame returns an empty frame outside of any session.
func NewFrame(width, height int) *Frame {
	f := new(Frame)
	f.reset(width, height)
	return f
}

func (f *Frame) reset(width, height int) {
	f.width = max(width, 0)
	f.height = max(height, 0)
	if cap(f.lines) < f.height {
		f.lines = make([]string, f.height)
	}
	f.lines = f.lines[:f.height]
	for i := range f.lines {
		f.lines[i] = ""
	}
	f.buf.Reset()
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// SetLine replaces row y. Rows outside the frame are ignored.
func (f *Frame) SetLine(y int, s string) {
	if y < 0 || y >= f.height {
		return
	}
	f.lines[y] = ansi.Truncate(s, f.width, "")
}

// SetText writes a multi-line block starting at row y.
func (f *Frame) SetText(y int, text string) {
	for i, line := range strings.Split(text, "\n") {
		f.SetLine(y+i, line)
	}
}

// Line returns row y as stored.
func (f *Frame) Line(y int) string {
	if y < 0 || y >= f.height {
		return ""
	}
	return f.lines[y]
}

// String joins the rows with newlines, without padding or escape sequences.
func (f *Frame) String() string {
	return strings.Join(f.lines, "\n")
}

// compose renders the frame as one synchronized update. Rows are padded to
// the full width and joined with CRLF; the last row gets no line break so the
// screen never scrolls.
func (f *Frame) compose() []byte {
	f.buf.Reset()
	f.buf.WriteString(beginSync)
	f.buf.WriteString(ansi.CursorHomePosition)
	for y, line := range f.lines {
		f.buf.WriteString(line)
		if pad := f.width - ansi.StringWidth(line); pad > 0 {
			f.buf.WriteString(strings.Repeat(" ", pad))
		}
		if y < len(f.lines)-1 {
			f.buf.WriteString("\r\n")
		}
	}
	f.buf.WriteString(endSync)
	return f.buf.Bytes()
}
