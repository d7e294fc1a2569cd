package counter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/termloop/internal/format/table"
	"github.com/atomicstack/termloop/internal/terminal"
	"github.com/atomicstack/termloop/internal/theme"
)

const title = "termloop counter"

// Render draws s into f: a centred panel with the count, a status line and a
// key help footer. It reads s and nothing else.
func Render(s *State, f *terminal.Frame) {
	styles := theme.Default()
	width, height := f.Width(), f.Height()
	if width <= 0 || height <= 0 {
		return
	}

	value := styles.Value
	if s.Count == MinCount || s.Count == MaxCount {
		value = styles.ValueLimit
	}
	rows := table.Format([][]string{
		{styles.Label.Render("count"), value.Render(strconv.Itoa(s.Count))},
		{styles.Label.Render("range"), styles.Label.Render(fmt.Sprintf("%d-%d", MinCount, MaxCount))},
	}, []table.Alignment{table.AlignLeft, table.AlignRight})
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(title),
		"",
		strings.Join(rows, "\n"),
	)
	panel := styles.Panel.Render(body)

	f.SetText(0, lipgloss.Place(width, max(height-2, 0), lipgloss.Center, lipgloss.Center, panel))
	if height >= 2 {
		f.SetLine(height-2, styles.Status.Render(truncate.String(statusLine(s, width, height), uint(width))))
	}
	f.SetLine(height-1, styles.Footer.Render(helpLine(width)))
}

func statusLine(s *State, width, height int) string {
	if s.Width > 0 && s.Height > 0 {
		width, height = s.Width, s.Height
	}
	status := fmt.Sprintf("%dx%d", width, height)
	if s.HasMouse {
		status += fmt.Sprintf(" | mouse %s at %d,%d", s.Mouse.String(), s.Mouse.X, s.Mouse.Y)
	}
	return status
}

func helpLine(width int) string {
	h := help.New()
	h.Width = width
	return h.View(keys)
}
