package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows the registered game modes, their IDs and local best scores.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	stats := loadStats()

	fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, "ID", "Title", "Rounds", "Best")
	fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "----")

	for _, g := range games {
		rounds, best := "-", "-"
		if st, ok := stats[g.ID]; ok {
			rounds = fmt.Sprint(st.GamesCount)
			best = fmt.Sprint(st.HighScore)
		}
		fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, g.ID, g.Title, rounds, best)
	}

	fmt.Println()
	fmt.Println("Run 'blockbreaker play' or 'blockbreaker play --endless' to play.")
}

// loadStats reads per-mode stats, returning none when the database is unavailable.
func loadStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}
