package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config: %v", err)
	}
	def := DefaultConfig()
	if len(cfg.Levels) != len(def.Levels) {
		t.Fatalf("embedded has %d levels, want %d", len(cfg.Levels), len(def.Levels))
	}
	for i := range def.Levels {
		if cfg.Levels[i] != def.Levels[i] {
			t.Errorf("level %d: got %+v, want %+v", i, cfg.Levels[i], def.Levels[i])
		}
	}
	if cfg.Symbols != def.Symbols {
		t.Errorf("symbols: got %+v, want %+v", cfg.Symbols, def.Symbols)
	}
	if cfg.Timer != def.Timer {
		t.Errorf("timer: got %+v, want %+v", cfg.Timer, def.Timer)
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		wantErr bool
	}{
		{"ok", Level{ID: "a", Rows: 8, Columns: 8, Mines: 10}, false},
		{"no mines", Level{ID: "a", Rows: 1, Columns: 1, Mines: 0}, false},
		{"densest expert", Level{ID: "a", Rows: 16, Columns: 32, Mines: 503}, false},
		{"neighbourhood blocked", Level{ID: "a", Rows: 16, Columns: 32, Mines: 504}, true},
		{"3x3 with a mine", Level{ID: "a", Rows: 3, Columns: 3, Mines: 1}, true},
		{"row strip", Level{ID: "a", Rows: 1, Columns: 5, Mines: 2}, false},
		{"almost full", Level{ID: "a", Rows: 2, Columns: 2, Mines: 3}, true},
		{"missing id", Level{Rows: 8, Columns: 8, Mines: 10}, true},
		{"zero rows", Level{ID: "a", Rows: 0, Columns: 8, Mines: 1}, true},
		{"negative cols", Level{ID: "a", Rows: 8, Columns: -1, Mines: 1}, true},
		{"full", Level{ID: "a", Rows: 2, Columns: 2, Mines: 4}, true},
		{"negative mines", Level{ID: "a", Rows: 2, Columns: 2, Mines: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
		})
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = append(cfg.Levels, cfg.Levels[0])
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Validate() = %v, want ErrInvalidLevel", err)
	}
}

func TestValidateSymbols(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Symbols.Flag = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty flag symbol should be rejected")
	}

	cfg = DefaultConfig()
	cfg.Symbols.Mine = "**"
	if err := cfg.Validate(); err == nil {
		t.Error("two-character mine symbol should be rejected")
	}

	cfg = DefaultConfig()
	cfg.Symbols.Mine = "☼"
	if err := cfg.Validate(); err != nil {
		t.Errorf("single multibyte symbol rejected: %v", err)
	}
}

func TestFindLevel(t *testing.T) {
	cfg := DefaultConfig()

	l, ok := cfg.FindLevel("expert")
	if !ok {
		t.Fatal("expert not found")
	}
	if l.Rows != 16 || l.Columns != 32 || l.Mines != 99 {
		t.Errorf("expert = %+v", l)
	}

	if _, ok := cfg.FindLevel("nope"); ok {
		t.Error("unknown level should not be found")
	}
}

func TestLevelTitle(t *testing.T) {
	l := Level{ID: "easy", Name: "Beginner", Rows: 8, Columns: 8, Mines: 10}
	if got, want := l.Title(), "Beginner (8x8, 10 mines)"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("symbols:\n  flag: \"!\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Symbols.Flag != "!" {
		t.Errorf("flag = %q, want !", cfg.Symbols.Flag)
	}
	if cfg.Symbols.Mine != "*" {
		t.Errorf("mine = %q, want default *", cfg.Symbols.Mine)
	}
	if len(cfg.Levels) != 3 {
		t.Errorf("levels = %d, want defaults", len(cfg.Levels))
	}
}

func TestParseReplacesLevels(t *testing.T) {
	data := []byte(`
levels:
  - id: tiny
    name: Tiny
    rows: 4
    columns: 4
    mines: 2
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].ID != "tiny" {
		t.Errorf("levels = %+v", cfg.Levels)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":    "levels: [",
		"bad level": "levels:\n  - id: x\n    rows: 2\n    columns: 2\n    mines: 9\n",
		"timer":     "timer:\n  max_seconds: 0\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "levels:\n  - id: mine\n    name: Mine\n    rows: 5\n    columns: 6\n    mines: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l, ok := cfg.FindLevel("mine")
	if !ok || l.Rows != 5 || l.Columns != 6 || l.Mines != 7 {
		t.Errorf("level = %+v, ok %v", l, ok)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("levels: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestLoadFallsBack(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config invalid: %v", err)
	}
}

func TestRune(t *testing.T) {
	if got := Rune("F", '?'); got != 'F' {
		t.Errorf("Rune(F) = %q", got)
	}
	if got := Rune("", '?'); got != '?' {
		t.Errorf("Rune(empty) = %q", got)
	}
	if got := Rune("☼", '?'); got != '☼' {
		t.Errorf("Rune(☼) = %q", got)
	}
}
