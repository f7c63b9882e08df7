package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows every configured level with its board size and mine count.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := minesweeper.Levels()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "ID", "Size", "Mines", "Name")
	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Rows, l.Columns)
		fmt.Printf("  %-*s  %-7s  %5d  %s\n", maxIDLen, l.ID, size, l.Mines, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'minesweeper play <id>' to play a level.")
}
