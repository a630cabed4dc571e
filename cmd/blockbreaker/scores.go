package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show local high scores",
	Long: `Display the top 10 local scores for a game mode (default: blockbreaker).

Examples:
  blockbreaker scores
  blockbreaker scores blockbreaker_endless
  blockbreaker scores --round 3f2a9c1e-...
  blockbreaker scores blockbreaker_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var (
	flagRound string
	flagClear bool
)

func init() {
	scoresCmd.Flags().StringVar(&flagRound, "round", "", "Show a single round by its ID")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all local scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "blockbreaker"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockbreaker list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRound != "" {
		showRound(store, flagRound)
		return
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Round", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		roundID := entry.RoundID
		if len(roundID) > 8 {
			roundID = roundID[:8]
		}
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, entry.Score, roundID, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Rounds: %d  Best: %d  Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
}

func showRound(store *storage.Store, roundID string) {
	entry, err := store.ScoreByRound(roundID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving round: %v\n", err)
		return
	}
	if entry == nil {
		fmt.Printf("No round with ID %s.\n", roundID)
		return
	}

	fmt.Printf("Round %s\n", entry.RoundID)
	fmt.Printf("  Mode:  %s\n", entry.GameID)
	fmt.Printf("  Score: %d\n", entry.Score)
	fmt.Printf("  Date:  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
}
