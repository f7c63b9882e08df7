package minesweeper

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-minesweeper/internal/config"
	"github.com/vovakirdan/tui-minesweeper/internal/registry"
)

// CustomLevelID is the id used for boards sized on the command line.
const CustomLevelID = "custom"

// settings shared by every new game.
var (
	settingsMu sync.RWMutex
	levels     []config.Level
	symbols    config.Symbols
	maxSeconds int
	registered []string
)

func init() {
	if err := Configure(config.DefaultConfig()); err != nil {
		panic(err)
	}
}

// Configure replaces the registered levels, board symbols and timer cap.
// Games created earlier keep the settings they were created with.
func Configure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("minesweeper: %w", err)
	}

	settingsMu.Lock()
	old := registered
	levels = append([]config.Level(nil), cfg.Levels...)
	symbols = cfg.Symbols
	maxSeconds = cfg.Timer.MaxSeconds
	registered = nil
	settingsMu.Unlock()

	for _, id := range old {
		registry.Unregister(id)
	}
	for _, l := range cfg.Levels {
		register(l)
	}
	return nil
}

// RegisterCustom registers a user-defined level and adds it to the in-game
// level list. A level with the same id is replaced.
func RegisterCustom(l config.Level) error {
	if l.Name == "" {
		l.Name = "Custom"
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("minesweeper: %w", err)
	}

	settingsMu.Lock()
	replaced := false
	for i := range levels {
		if levels[i].ID == l.ID {
			levels[i] = l
			replaced = true
			break
		}
	}
	if !replaced {
		levels = append(levels, l)
	}
	registered = slices.DeleteFunc(registered, func(id string) bool { return id == l.ID })
	settingsMu.Unlock()

	registry.Unregister(l.ID)
	register(l)
	return nil
}

// Levels returns the configured levels in menu order.
func Levels() []config.Level {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return append([]config.Level(nil), levels...)
}

// FindLevel returns the configured level with the given id.
func FindLevel(id string) (config.Level, bool) {
	for _, l := range Levels() {
		if l.ID == id {
			return l, true
		}
	}
	return config.Level{}, false
}

func register(l config.Level) {
	registry.Register(l.ID, func() registry.Game {
		return New(l)
	})

	settingsMu.Lock()
	registered = append(registered, l.ID)
	settingsMu.Unlock()
}

func currentSettings() ([]config.Level, config.Symbols, int) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return append([]config.Level(nil), levels...), symbols, maxSeconds
}
