package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/games/blockbreaker"
	"github.com/vovakirdan/block-breaker/internal/platform/tui"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/report"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var (
	flagEndless    bool
	flagConfig     string
	flagDifficulty string
	flagReportURL  string
	flagNoReport   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of Block Breaker.

The round starts paused; press Left or Right to begin. When the round
timer reaches zero the score is posted to the score server and the
program exits.

Controls:
  Left/A/H    - Move paddle left
  Right/D/L   - Move paddle right
  P           - Pause (toggles when released)
  R           - New round (while paused)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Longer round, wider paddle hits, smaller miss penalty
  normal - Default settings
  hard   - Shorter round, narrower paddle hits, faster ball from the start
  fixed  - Ball speed never increases

Examples:
  blockbreaker play
  blockbreaker play --endless
  blockbreaker play --difficulty hard
  blockbreaker play --config ./my-blockbreaker.yaml
  blockbreaker play --report-url http://scores.local:5000/scores`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play without a round timer")
	addRoundFlags(playCmd)
}

// addRoundFlags registers the flags shared by every command that starts rounds.
func addRoundFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagReportURL, "report-url", "", "Score server URL (overrides config)")
	cmd.Flags().BoolVar(&flagNoReport, "no-report", false, "Do not send the final score to the score server")
}

// loadGameConfig applies the config flags and loads the configuration the
// game will use.
func loadGameConfig() (config.BlockBreakerConfig, error) {
	blockbreaker.SetConfigPath(flagConfig)
	blockbreaker.SetDifficultyPreset(flagDifficulty)
	return blockbreaker.LoadConfig()
}

// newReporter builds the score reporter from config and flags.
// Returns nil when reporting is disabled.
func newReporter(cfg config.BlockBreakerConfig, logger *log.Logger) report.Reporter {
	if flagNoReport || !cfg.Report.Enabled {
		return nil
	}
	url := cfg.Report.URL
	if flagReportURL != "" {
		url = flagReportURL
	}
	return report.NewHTTPReporter(url, time.Duration(cfg.Report.TimeoutMS)*time.Millisecond, logger)
}

// roundOptions assembles the TUI options for playing rounds.
func roundOptions(cfg config.BlockBreakerConfig, store tui.ScoreStore, logger *log.Logger) tui.Options {
	return tui.Options{
		Store:         store,
		Reporter:      newReporter(cfg, logger),
		ReportTimeout: time.Duration(cfg.Report.TimeoutMS) * time.Millisecond,
		HoldWindow:    time.Duration(cfg.Input.HoldWindowMS) * time.Millisecond,
		Logger:        logger,
	}
}

// openStore opens the local score database. Failure leaves the game
// playable without score history.
func openStore(logger *log.Logger) (tui.ScoreStore, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil, func() {}
	}
	return store, func() { store.Close() }
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newFileLogger("blockbreaker")
	defer closeLog()

	cfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	gameID := "blockbreaker"
	if flagEndless {
		gameID = "blockbreaker_endless"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, closeStore := openStore(logger)
	runErr := tui.Run(game, terminalConfig(), roundOptions(cfg, store, logger))
	closeStore()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
