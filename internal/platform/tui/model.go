package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/report"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

// ScoreStore is the local score history used by the TUI screens.
type ScoreStore interface {
	SaveScore(gameID, roundID string, score int) (int64, error)
	HighScore(gameID string) (int, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// Options configures how a round is played and where its result goes.
type Options struct {
	Store         ScoreStore      // Local history, may be nil
	Reporter      report.Reporter // Remote score server, may be nil
	ReportTimeout time.Duration
	HoldWindow    time.Duration
	Logger        *log.Logger
	AllowBack     bool // Esc while paused returns to the menu instead of doing nothing
}

// resizer is implemented by games that can re-layout without a reset.
type resizer interface {
	Resize(w, h int)
}

// endlessGame is implemented by games that may run without a round timer.
type endlessGame interface {
	Endless() bool
}

// reportDoneMsg is delivered once the final score has been handed to the reporter.
type reportDoneMsg struct {
	err error
}

// Model is the Bubble Tea model that runs one round of a game.
// When the round ends the score is saved, reported and the program quits.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keyMapper  *KeyMapper
	held       *HeldKeys
	clock      core.Clock
	gameState  core.GameState
	roundID    string
	finished   bool // Round over, result handed off
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(opts.HoldWindow),
		clock:     cfg.ClockOrSystem(),
		roundID:   uuid.NewString(),
	}
}

// Init starts the round and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("Round started", "game", m.game.ID(), "round", m.roundID, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case reportDoneMsg:
		if msg.err != nil {
			m.logger.Debug("Score report failed", "round", m.roundID, "err", msg.err)
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveAbandoned()
		m.quitting = true
		return m, tea.Quit
	}
	if m.finished {
		return m, nil
	}

	switch {
	case IsHeldAction(action):
		m.held.Press(action, m.clock.Now())

	case action == core.ActionBack && m.opts.AllowBack && m.gameState.Paused:
		m.saveAbandoned()
		m.backToMenu = true

	case action == core.ActionRestart && m.gameState.Paused:
		m.restart()
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs one simulation step with the keys held right now.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished || m.backToMenu {
		return m, nil
	}

	frame := m.held.Frame(m.clock.Now())
	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver {
		return m.finishRound()
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRound stores the final score locally and starts the report.
// The program quits once the report completes.
func (m Model) finishRound() (tea.Model, tea.Cmd) {
	m.finished = true
	score := m.gameState.Score

	m.logger.Info("Round over", "game", m.game.ID(), "round", m.roundID, "score", score)
	m.saveScore(score)

	return m, m.reportCmd(score)
}

// reportCmd submits score off the update goroutine.
func (m Model) reportCmd(score int) tea.Cmd {
	reporter := m.opts.Reporter
	timeout := m.opts.ReportTimeout
	if timeout <= 0 {
		timeout = report.DefaultTimeout
	}

	return func() tea.Msg {
		if reporter == nil {
			return reportDoneMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return reportDoneMsg{err: reporter.Report(ctx, score)}
	}
}

// saveScore records the round in the local history.
func (m Model) saveScore(score int) {
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.roundID, score); err != nil {
		m.logger.Warn("Could not save score", "round", m.roundID, "err", err)
	}
}

// saveAbandoned keeps the score of an endless round the player walks away
// from. Timed rounds only count when the timer runs out.
func (m Model) saveAbandoned() {
	if m.finished {
		return
	}
	eg, ok := m.game.(endlessGame)
	if !ok || !eg.Endless() || m.gameState.Score == 0 {
		return
	}
	m.logger.Info("Endless round left", "round", m.roundID, "score", m.gameState.Score)
	m.saveScore(m.gameState.Score)
}

// restart begins a new round with a fresh seed and round id.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.roundID = uuid.NewString()
	m.held.Reset()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.logger.Info("Round restarted", "game", m.game.ID(), "round", m.roundID, "seed", m.config.Seed)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".blockbreaker", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Could not save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Debug("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// RoundID returns the id of the current round.
func (m Model) RoundID() string {
	return m.roundID
}

// Finished returns true once the round has ended.
func (m Model) Finished() bool {
	return m.finished
}

// IsQuitting returns true if the program is about to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one round of game in the terminal.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
