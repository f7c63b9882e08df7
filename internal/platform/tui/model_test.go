package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minesweeper/internal/core"
	"github.com/vovakirdan/tui-minesweeper/internal/storage"
)

// fakeGame records the calls made by the platform.
type fakeGame struct {
	state   core.GameState
	resets  []core.RuntimeConfig
	frames  []core.InputFrame
	resizes [][2]int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Resize(w, h int)         { g.resizes = append(g.resizes, [2]int{w, h}) }
func (g *fakeGame) Controls() string        { return "Q: Quit" }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelReservesHintRow(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	if len(g.resets) != 1 || g.resets[0].ScreenH != 23 || g.resets[0].ScreenW != 80 {
		t.Fatalf("Reset configs = %+v, want one 80x23", g.resets)
	}

	view := m.View()
	if !strings.Contains(view, "fake") || !strings.Contains(view, "Q: Quit") {
		t.Errorf("View() missing game or hint:\n%s", view)
	}
}

func TestModelRecordsResultOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, testConfig())
	m.Init()

	g.state = core.GameState{Score: 12, GameOver: true, Won: true}
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	times, err := store.BestTimes("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 1 || times[0].Seconds != 12 {
		t.Fatalf("results after one game = %+v", times)
	}

	// A new game re-arms recording
	g.state = core.GameState{}
	m = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 8, GameOver: true, Won: true}
	update(t, m, TickMsg{})

	times, _ = store.BestTimes("fake", 10)
	if len(times) != 2 || times[0].Seconds != 8 {
		t.Errorf("results after two games = %+v", times)
	}
}

func TestModelRecordsLosses(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{}
	m := NewModel(g, store, testConfig())
	m.Init()

	g.state = core.GameState{Score: 0, GameOver: true}
	update(t, m, TickMsg{})

	stats, err := store.LevelStats("fake")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Played != 1 || stats.Won != 0 {
		t.Errorf("stats = %+v, want one loss", stats)
	}
}

func TestModelRestartUsesNewSeed(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	update(t, m, TickMsg{})

	if len(g.resets) != 2 {
		t.Fatalf("resets = %d, want 2", len(g.resets))
	}
	if g.resets[1].Seed == g.resets[0].Seed {
		t.Error("restart reused the seed")
	}
	if len(g.frames) != 0 {
		t.Error("restart tick should not step the game")
	}
}

func TestModelForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = update(t, m, TickMsg{})

	if len(g.frames) != 1 {
		t.Fatalf("steps = %d, want 1", len(g.frames))
	}
	in := g.frames[0]
	if !in.Has(core.ActionFlag) {
		t.Error("flag action not forwarded")
	}
	if len(in.Clicks) != 1 || in.Clicks[0] != (core.Click{X: 5, Y: 6, Button: core.ButtonRight}) {
		t.Errorf("clicks = %v", in.Clicks)
	}

	// Input is cleared between ticks
	update(t, m, TickMsg{})
	if g.frames[1].Has(core.ActionFlag) || len(g.frames[1].Clicks) != 0 {
		t.Error("input leaked into the next tick")
	}
}

func TestModelResize(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if len(g.resizes) != 1 || g.resizes[0] != [2]int{100, 39} {
		t.Errorf("resizes = %v, want [[100 39]]", g.resizes)
	}
	if len(g.resets) != 1 {
		t.Error("resize restarted a game that supports relayout")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestSessionModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := newSessionModel(g, nil, testConfig(), "session-1", nil)
	m.Init()

	esc := tea.KeyMsg{Type: tea.KeyEsc}

	// Back is passed to a running game
	m = update(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("Back left a running game")
	}
	m = update(t, m, TickMsg{})

	g.state = core.GameState{GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, esc)
	if !m.BackToMenu() {
		t.Error("Back did not leave a finished game")
	}

	// Standalone play ignores Back
	local := NewModel(&fakeGame{state: core.GameState{GameOver: true}}, nil, testConfig())
	local = update(t, local, TickMsg{})
	local = update(t, local, esc)
	if local.BackToMenu() {
		t.Error("standalone model left on Back")
	}
}
