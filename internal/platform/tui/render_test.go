package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/mathrun/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorBrown)
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("expected 2 rows, got %d newlines", n)
	}
	for _, part := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(out, part) {
			t.Errorf("output %q is missing %q", out, part)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range core.Colors() {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
