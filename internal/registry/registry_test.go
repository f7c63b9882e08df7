package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-minesweeper/internal/core"
)

type stubGame struct {
	id, title string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func stub(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterListCreate(t *testing.T) {
	Register("test-b", stub("test-b", "B"))
	Register("test-a", stub("test-a", "A"))
	defer Unregister("test-a")
	defer Unregister("test-b")

	var ids []string
	for _, info := range List() {
		if info.ID == "test-a" || info.ID == "test-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test-b" || ids[1] != "test-a" {
		t.Errorf("List order = %v, want registration order [test-b test-a]", ids)
	}

	g, err := Create("test-a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "A" {
		t.Errorf("Title() = %q, want A", g.Title())
	}
	if !Exists("test-a") {
		t.Error("Exists(test-a) = false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", stub("test-dup", "Dup"))
	defer Unregister("test-dup")

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("test-dup", stub("test-dup", "Dup"))
}

func TestUnregister(t *testing.T) {
	Register("test-gone", stub("test-gone", "Gone"))
	Unregister("test-gone")

	if Exists("test-gone") {
		t.Error("game still registered after Unregister")
	}
	for _, info := range List() {
		if info.ID == "test-gone" {
			t.Error("game still listed after Unregister")
		}
	}

	// Unknown ids are ignored, and the id can be reused.
	Unregister("test-gone")
	Register("test-gone", stub("test-gone", "Again"))
	Unregister("test-gone")
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(unknown) = %v, want ErrUnknownGame", err)
	}
}
