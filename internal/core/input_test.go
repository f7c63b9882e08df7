package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionReveal) {
		t.Error("New frame should have no actions")
	}

	f.Set(ActionReveal)
	f.Set(ActionFlag)

	if !f.Has(ActionReveal) || !f.Has(ActionFlag) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionChord) {
		t.Error("Unset action should not be reported")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("Zero frame should have no actions")
	}
	zero.Set(ActionUp)
	if !zero.Has(ActionUp) {
		t.Error("Set on zero frame should allocate the map")
	}
}

func TestInputFrameClicks(t *testing.T) {
	f := NewInputFrame()
	f.Click(3, 4, ButtonLeft)
	f.Click(5, 6, ButtonRight)

	if len(f.Clicks) != 2 {
		t.Fatalf("Expected 2 clicks, got %d", len(f.Clicks))
	}
	if f.Clicks[1] != (Click{X: 5, Y: 6, Button: ButtonRight}) {
		t.Errorf("Second click = %+v", f.Clicks[1])
	}

	clone := f.Clone()
	f.Clear()

	if len(f.Clicks) != 0 {
		t.Error("Clear should drop clicks")
	}
	if len(clone.Clicks) != 2 {
		t.Error("Clone should keep its own clicks")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionPause) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionPause) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionReveal, "Reveal"},
		{ActionFlag, "Flag"},
		{ActionChord, "Chord"},
		{ActionMenu, "Menu"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
