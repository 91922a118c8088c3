package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathrun/internal/games/platformer"
	"github.com/vovakirdan/mathrun/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [classic|practice]",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs for the given mode (classic if omitted),
ordered by score and then by level reached.

Examples:
  mathrun scores
  mathrun scores practice --limit 20
  mathrun scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if _, err := gameIDForMode(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'mathrun list' to see available modes.")
		os.Exit(1)
	}
	mode := platformer.ParseMode(name).String()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all %s runs.\n", mode)
		return
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mathrun play %s' to set the first score!\n", mode)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-7s  %s\n", "Rank", "Player", "Score", "Level", "Quiz", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %-7s  %s\n", "----", "------", "-----", "-----", "----", "----")

	for i, r := range runs {
		quiz := fmt.Sprintf("%d/%d", r.Correct, r.Correct+r.Wrong)
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-8d  %-5d  %-7s  %s\n", i+1, r.Name, r.Score, r.Level, quiz, dateStr)
	}

	// Show mode summary
	fmt.Println()
	if stats, err := store.GetModeStats(mode); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Furthest level: %d  Quiz accuracy: %.0f%%\n",
			stats.RunsCount, stats.BestScore, stats.MaxLevel, stats.Accuracy()*100)
	}
}
