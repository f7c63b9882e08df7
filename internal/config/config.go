// Package config provides YAML-based configuration loading for levels,
// board symbols and the game timer.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper/board"
)

// ErrInvalidLevel is returned for a level whose dimensions or mine count
// cannot form a board.
var ErrInvalidLevel = errors.New("invalid level")

// Config contains all configuration for the game.
type Config struct {
	Levels  []Level     `yaml:"levels"`
	Symbols Symbols     `yaml:"symbols"`
	Timer   TimerConfig `yaml:"timer"`
}

// Level is a board preset selectable from the menus.
type Level struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
	Mines   int    `yaml:"mines"`
}

// Symbols defines the characters used to draw the board.
// Each value must be a single character.
type Symbols struct {
	Closed    string `yaml:"closed"`
	Empty     string `yaml:"empty"`
	Flag      string `yaml:"flag"`
	Mine      string `yaml:"mine"`
	Exploded  string `yaml:"exploded"`
	WrongFlag string `yaml:"wrong_flag"`
}

// TimerConfig defines the elapsed-time display.
type TimerConfig struct {
	MaxSeconds int `yaml:"max_seconds"` // Display cap, the classic counter stops at 999
}

// Title returns a menu label such as "Beginner (8x8, 10 mines)".
func (l Level) Title() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", l.Name, l.Rows, l.Columns, l.Mines)
}

// Validate checks that the level describes a playable board.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if l.Rows <= 0 || l.Columns <= 0 {
		return fmt.Errorf("%w %q: size %dx%d", ErrInvalidLevel, l.ID, l.Rows, l.Columns)
	}
	// The first reveal and its neighbours must stay clear wherever it lands
	if maxMines := board.MaxMines(l.Rows, l.Columns); l.Mines < 0 || l.Mines > maxMines {
		return fmt.Errorf("%w %q: %d mines on %dx%d, allowed 0 to %d", ErrInvalidLevel, l.ID, l.Mines, l.Rows, l.Columns, maxMines)
	}
	return nil
}

// Validate checks levels and symbols.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("config: %w: no levels defined", ErrInvalidLevel)
	}

	seen := make(map[string]bool, len(c.Levels))
	for _, l := range c.Levels {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if seen[l.ID] {
			return fmt.Errorf("config: %w: duplicate id %q", ErrInvalidLevel, l.ID)
		}
		seen[l.ID] = true
	}

	symbols := map[string]string{
		"closed":     c.Symbols.Closed,
		"empty":      c.Symbols.Empty,
		"flag":       c.Symbols.Flag,
		"mine":       c.Symbols.Mine,
		"exploded":   c.Symbols.Exploded,
		"wrong_flag": c.Symbols.WrongFlag,
	}
	for name, s := range symbols {
		if utf8.RuneCountInString(s) != 1 {
			return fmt.Errorf("config: symbol %s must be a single character, got %q", name, s)
		}
	}

	if c.Timer.MaxSeconds <= 0 {
		return fmt.Errorf("config: timer max_seconds must be positive, got %d", c.Timer.MaxSeconds)
	}
	return nil
}

// FindLevel returns the level with the given id.
func (c Config) FindLevel(id string) (Level, bool) {
	for _, l := range c.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Rune returns the first character of a symbol string, or fallback if empty.
func Rune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
