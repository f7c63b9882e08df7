package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-minesweeper/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(2, 0, '1', core.ColorBrightBlue)
	s.SetColor(3, 0, '#', core.ColorCursor)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	if got := ansi.Strip(lines[0]); got != "ab1#  " {
		t.Errorf("line 0 = %q, want %q", got, "ab1#  ")
	}
	if got := ansi.Strip(lines[1]); got != "xyz   " {
		t.Errorf("line 1 = %q, want %q", got, "xyz   ")
	}
}

func TestRowRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.SetColor(1, 0, '1', core.ColorBrightBlue)
	s.SetColor(2, 0, '1', core.ColorBrightBlue)
	s.SetColor(3, 0, 'F', core.ColorBrightYellow)

	want := []run{
		{core.ColorDefault, " "},
		{core.ColorBrightBlue, "11"},
		{core.ColorBrightYellow, "F"},
		{core.ColorDefault, "  "},
	}
	got := rowRuns(s, 0)
	if len(got) != len(want) {
		t.Fatalf("rowRuns() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if runs := rowRuns(core.NewScreen(0, 1), 0); len(runs) != 0 {
		t.Errorf("empty row gave %d runs", len(runs))
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range core.Colors() {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
		if c != core.ColorDefault && c != core.ColorCursor && ansiCodes[c] == "" {
			t.Errorf("no terminal colour for %d", c)
		}
	}
}
