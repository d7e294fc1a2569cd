package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDefaultStylesAreSet(t *testing.T) {
	s := Default()
	for name, style := range map[string]*lipgloss.Style{
		"Panel": s.Panel, "Title": s.Title, "Label": s.Label, "Value": s.Value,
		"ValueLimit": s.ValueLimit, "Status": s.Status, "Footer": s.Footer, "Error": s.Error,
	} {
		if style == nil {
			t.Fatalf("expected %s style to be set", name)
		}
	}
	if Default() != s {
		t.Fatalf("expected Default to return the shared style set")
	}
}

func TestPanelHasBorder(t *testing.T) {
	out := Default().Panel.Render("x")
	if out == "x" {
		t.Fatalf("expected panel decoration, got %q", out)
	}
}
