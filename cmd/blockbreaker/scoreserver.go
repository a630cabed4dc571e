package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-breaker/internal/scoreserver"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

var (
	flagServerAddr   string
	flagServerDBPath string
)

var scoreServerCmd = &cobra.Command{
	Use:   "scoreserver",
	Short: "Run the score collector",
	Long: `Start the HTTP service that finished rounds report their scores to.

Endpoints:
  GET  /scores       List every received score as [{"id": n, "score": n}]
  POST /scores       Store {"score": n}; replies 201 with {"id": n, "score": n}
  GET  /scores/live  Websocket feed of scores as they arrive

Examples:
  blockbreaker scoreserver
  blockbreaker scoreserver --addr :5000 --db ./server.db`,
	Args: cobra.NoArgs,
	Run:  runScoreServer,
}

func init() {
	scoreServerCmd.Flags().StringVar(&flagServerAddr, "addr", scoreserver.DefaultAddr, "HTTP listen address (host:port)")
	scoreServerCmd.Flags().StringVar(&flagServerDBPath, "db", "~/.blockbreaker/server.db", "Path to the score server database")
}

func runScoreServer(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "scoreserver")

	if err := serveScores(logger); err != nil {
		logger.Error("Server error", "err", err)
		os.Exit(1)
	}
}

func serveScores(logger *log.Logger) error {
	store, err := storage.Open(flagServerDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return scoreserver.New(store, logger).ListenAndServe(ctx, flagServerAddr)
}
