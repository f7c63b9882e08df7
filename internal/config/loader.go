package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// UserConfigFile is the path of the user config relative to the XDG config home.
const UserConfigFile = "tui-minesweeper/config.yaml"

// LocalConfigFile is the path of the project-local config.
const LocalConfigFile = "configs/minesweeper.yaml"

// Load loads the game configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tui-minesweeper/config.yaml ->
// ./configs/minesweeper.yaml -> embedded default.
// Only a custom path is required to exist and parse; the other locations are
// skipped when missing or broken.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if path, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
		if cfg, ok := tryFile(path); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(LocalConfigFile); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Sections missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	levels := cfg.Levels
	cfg.Levels = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = levels
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false
	}
	return cfg, true
}
