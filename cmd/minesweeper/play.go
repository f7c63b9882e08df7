package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minesweeper/internal/config"
	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-minesweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-minesweeper/internal/registry"
)

var (
	flagRows  int
	flagCols  int
	flagMines int
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level. Without a level a picker is shown.
Passing --rows, --cols and --mines plays a custom board instead.

Controls:
  Arrows/WASD  - Move cursor
  Space        - Reveal (mouse: left click)
  F            - Flag (mouse: right click)
  C            - Chord (mouse: middle click)
  Tab          - Switch level
  P            - Pause
  R            - New game
  Q/Ctrl+C     - Quit

Examples:
  minesweeper play
  minesweeper play easy
  minesweeper play expert --seed 42
  minesweeper play --rows 10 --cols 20 --mines 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Rows of a custom board")
	playCmd.Flags().IntVar(&flagCols, "cols", 0, "Columns of a custom board")
	playCmd.Flags().IntVar(&flagMines, "mines", 0, "Mines on a custom board")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := runtimeConfig()

	var levelID string
	switch {
	case cmd.Flags().Changed("rows") || cmd.Flags().Changed("cols") || cmd.Flags().Changed("mines"):
		level := config.Level{
			ID:      minesweeper.CustomLevelID,
			Rows:    flagRows,
			Columns: flagCols,
			Mines:   flagMines,
		}
		if err := minesweeper.RegisterCustom(level); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		levelID = level.ID

	case len(args) == 1:
		levelID = args[0]

	default:
		selected, err := tui.RunLevelSelector(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if selected == "" {
			return
		}
		levelID = selected
	}

	if !registry.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'minesweeper list' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
