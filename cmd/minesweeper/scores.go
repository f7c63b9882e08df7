package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper"
	"github.com/vovakirdan/tui-minesweeper/internal/storage"
)

var (
	flagClear  bool
	flagRecent bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show best times for a level",
	Long: `Display the fastest wins and overall statistics for a level.

Examples:
  minesweeper scores easy
  minesweeper scores expert --limit 20
  minesweeper scores easy --recent
  minesweeper scores easy --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results for the level")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List recent games instead of best times")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := args[0]

	level, ok := minesweeper.FindLevel(levelID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'minesweeper list' to see available levels.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared results for %s\n", level.Title())
		return
	}

	if flagRecent {
		printRecent(store, level.ID, level.Title())
		return
	}

	results, err := store.BestTimes(levelID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best times: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s\n", level.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'minesweeper play %s' to set the first best time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %s\n", "----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-8s  %s\n", i+1, fmt.Sprintf("%ds", r.Seconds), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Won: %d  Win rate: %.0f%%  Average win: %.1fs\n",
			stats.Played, stats.Won, stats.WinRate()*100, stats.AvgWinTime)
	}
}

func printRecent(store *storage.Store, levelID, title string) {
	results, err := store.RecentResults(levelID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recent Games - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-8s  %s\n", "Result", "Time", "Date")
	fmt.Printf("  %-6s  %-8s  %s\n", "------", "----", "----")
	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Printf("  %-6s  %-8s  %s\n", outcome, fmt.Sprintf("%ds", r.Seconds), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
