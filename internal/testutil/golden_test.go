package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestQuoteLinesEscapesSequences(t *testing.T) {
	got := QuoteLines("\x1b[Hab\r\ncd")
	want := "\\x1b[Hab\ncd\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRepoRootFindsModule(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod under %s: %v", root, err)
	}
}
