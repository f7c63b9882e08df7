package config

import (
	_ "embed"
)

//go:embed defaults/minesweeper.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Levels: []Level{
			{ID: "easy", Name: "Beginner", Rows: 8, Columns: 8, Mines: 10},
			{ID: "intermediate", Name: "Intermediate", Rows: 15, Columns: 15, Mines: 40},
			{ID: "expert", Name: "Expert", Rows: 16, Columns: 32, Mines: 99},
		},
		Symbols: Symbols{
			Closed:    "#",
			Empty:     ".",
			Flag:      "F",
			Mine:      "*",
			Exploded:  "X",
			WrongFlag: "x",
		},
		Timer: TimerConfig{
			MaxSeconds: 999,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
