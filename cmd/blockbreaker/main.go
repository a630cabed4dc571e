// blockbreaker is a terminal block breaker: keep the ball in play with the
// paddle and hit timed blocks before they fade.
//
// Usage:
//
//	blockbreaker play              - Play a timed round
//	blockbreaker play --endless    - Play without a round timer
//	blockbreaker menu              - Pick a mode interactively
//	blockbreaker list              - List game modes
//	blockbreaker scores [mode]     - Show local high scores
//	blockbreaker serve             - Start SSH server for remote play
//	blockbreaker scoreserver       - Collect reported scores over HTTP
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.blockbreaker/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbreaker",
	Short: "Block Breaker - keep the ball up, break the blocks",
	Long: `Block Breaker is a terminal game. Move the paddle to keep the ball in
play and hit the coloured blocks before they fade away. Red blocks are
worth the most and vanish fastest. Missing the ball costs points.

When the round timer runs out the score is sent to the score server.

Available commands:
  play         - Play a round
  menu         - Interactive mode picker
  list         - Show game modes
  scores       - View local high scores
  serve        - Start SSH server for remote play
  scoreserver  - Run the score collector

Examples:
  blockbreaker play
  blockbreaker play --endless
  blockbreaker play --difficulty easy --no-report
  blockbreaker scoreserver --addr 127.0.0.1:5000
  blockbreaker serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockbreaker/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreServerCmd)
}
