package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birdrush/birdrush/internal/engine"
	"github.com/birdrush/birdrush/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified game mode.

Examples:
  birdrush scores classic
  birdrush scores survival`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	mode, err := engine.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'birdrush list' to see available modes.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(mode.String(), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'birdrush play %s' to set the first high score!\n", mode)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, entry.PlayerName, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(mode.String()); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if metrics, err := store.MetricsFor(mode.String()); err == nil && metrics.GamesPlayed > 0 {
		fmt.Printf("Games played: %d  Average score: %.1f\n", metrics.GamesPlayed, metrics.AvgScore())
	}
}
