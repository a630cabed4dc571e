// Package blockbreaker implements the Block Breaker game: a paddle keeps a
// ball in play while timed blocks appear, fade out, and award points when hit.
package blockbreaker

import (
	"math"
	"time"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
	"github.com/vovakirdan/block-breaker/internal/registry"
)

// Game states
const (
	StatePaused  = "paused"  // Waiting for input, timers frozen
	StateRunning = "running" // Ball in play
	StateOver    = "over"    // Round timer ran out
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeTimed   GameMode = iota // Round ends when the timer runs out
	ModeEndless                 // No round timer
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads the configuration the CLI selected, with the preset applied.
func LoadConfig() (config.BlockBreakerConfig, error) {
	cfg, err := config.LoadBlockBreaker(configPath)
	if err != nil {
		return config.DefaultBlockBreakerConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game implements the Block Breaker update loop. It owns all simulation
// state; Render and Snapshot only read it.
type Game struct {
	mode GameMode

	// Game objects
	paddle Paddle
	ball   Ball
	blocks []*Block
	table  *BlockTable

	// Game state
	state     string
	score     int
	tickCount int
	pauseHeld bool // Pause key was down on the previous tick

	// Timers
	clock       core.Clock
	started     time.Time
	pausedAt    time.Time     // Start of the current pause, zero while running
	pausedTotal time.Duration // Completed pauses
	lastSpawn   time.Time

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BlockBreakerConfig
	fixedCfg   *config.BlockBreakerConfig
	difficulty *config.DifficultyManager
	rng        *core.RNG

	// Layout (computed from screen size)
	originX        int
	originY        int
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new timed Block Breaker game.
func New() *Game {
	return &Game{mode: ModeTimed}
}

// NewEndless creates a new Block Breaker game without a round timer.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration from disk.
func NewWithConfig(mode GameMode, cfg config.BlockBreakerConfig) *Game {
	return &Game{mode: mode, fixedCfg: &cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "blockbreaker_endless"
	}
	return "blockbreaker"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Block Breaker (Endless)"
	}
	return "Block Breaker"
}

// Reset initializes or restarts the round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.clock = runtime.ClockOrSystem()

	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = config.DefaultBlockBreakerConfig()
		}
		g.cfg = cfg
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.table = NewBlockTable(g.cfg.Blocks.Types)
	g.rng = core.NewRNG(runtime.Seed)

	g.calculateLayout()

	now := g.clock.Now()
	g.state = StatePaused
	g.score = 0
	g.tickCount = 0
	g.pauseHeld = false
	g.started = now
	g.pausedAt = now // A round starts paused
	g.pausedTotal = 0
	g.lastSpawn = now
	g.blocks = g.blocks[:0]

	g.paddle = Paddle{
		Pos:   core.Pos(float64(g.cfg.Grid.Width)/2, float64(g.cfg.Grid.Height-g.cfg.Paddle.Row)),
		Width: g.cfg.Paddle.Width,
	}
	g.ball = g.initialBall()
}

// Resize adapts the layout to a new screen size without touching the round.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.calculateLayout()
}

// Endless reports whether the round runs without a timer.
func (g *Game) Endless() bool {
	return g.mode == ModeEndless
}

// initialBall returns the ball as placed at round start and after a miss.
func (g *Game) initialBall() Ball {
	return NewBall(
		core.Pos(float64(g.cfg.Grid.Width)/2, float64(g.cfg.Grid.Height-5)),
		core.Vec2{X: g.cfg.Physics.BallSpeedX, Y: g.cfg.Physics.BallSpeedY},
	)
}

// calculateLayout centres the playfield on screen. Each grid cell is two
// terminal columns wide; one extra row below the field holds the HUD.
func (g *Game) calculateLayout() {
	fieldW := g.cfg.Grid.Width*2 + 2
	fieldH := g.cfg.Grid.Height + 2

	g.minScreenW = fieldW
	g.minScreenH = fieldH + 1
	g.screenTooSmall = g.runtime.ScreenW < g.minScreenW || g.runtime.ScreenH < g.minScreenH

	g.originX = (g.runtime.ScreenW - fieldW) / 2
	g.originY = (g.runtime.ScreenH - g.minScreenH) / 2
	if g.originX < 0 {
		g.originX = 0
	}
	if g.originY < 0 {
		g.originY = 0
	}
}

// cellSize returns the sub-cell resolution.
func (g *Game) cellSize() core.Vec2 {
	return core.Vec2{X: g.cfg.Grid.CellWidth, Y: g.cfg.Grid.CellHeight}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == StateOver {
		return core.StepResult{State: g.State()}
	}

	now := g.clock.Now()

	// Round timer
	if g.timed() && g.TimeLeft() <= 0 {
		g.endRound(now)
		return core.StepResult{State: g.State()}
	}

	g.paddle.Dir = DirectionFromInput(in)

	// Pause toggles when the key is released, not while it is held
	if in.Has(core.ActionPause) {
		g.pauseHeld = true
	} else if g.pauseHeld {
		g.pauseHeld = false
		g.setPaused(g.state != StatePaused, now)
	}

	// Any movement resumes play
	if g.state == StatePaused && g.paddle.Dir != DirNone {
		g.setPaused(false, now)
	}

	if g.state == StatePaused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	margin := g.cfg.Paddle.Margin
	g.paddle.Update(g.cfg.Paddle.Step, margin, float64(g.cfg.Grid.Width)-margin)
	g.ball.Update(g.cellSize())
	g.expireBlocks(now)
	g.pruneBlocks()
	g.resolveCollisions(now)
	g.addBlock(now)
	g.checkRestart(now)

	return core.StepResult{State: g.State()}
}

// timed reports whether this round has a timer.
func (g *Game) timed() bool {
	return g.mode == ModeTimed && g.cfg.Round.Seconds > 0
}

// setPaused switches between paused and running, keeping paused time out of
// the round timer and block lifetimes.
func (g *Game) setPaused(paused bool, now time.Time) {
	if paused == (g.state == StatePaused) || g.state == StateOver {
		return
	}

	if paused {
		g.state = StatePaused
		g.pausedAt = now
		for _, b := range g.blocks {
			b.Pause(now)
		}
		return
	}

	g.state = StateRunning
	g.pausedTotal += now.Sub(g.pausedAt)
	g.pausedAt = time.Time{}
	for _, b := range g.blocks {
		b.Resume(now)
	}
}

// endRound stops the round. Pause bookkeeping is frozen at now.
func (g *Game) endRound(now time.Time) {
	if g.state != StatePaused {
		g.pausedAt = now
	}
	g.state = StateOver
}

// activeElapsed returns the round time spent running.
func (g *Game) activeElapsed(now time.Time) time.Duration {
	paused := g.pausedTotal
	if !g.pausedAt.IsZero() {
		paused += now.Sub(g.pausedAt)
	}
	return now.Sub(g.started) - paused
}

// TimeLeft returns the remaining round time. Endless rounds report zero.
func (g *Game) TimeLeft() time.Duration {
	if !g.timed() {
		return 0
	}
	left := time.Duration(g.cfg.Round.Seconds)*time.Second - g.activeElapsed(g.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// secondsLeft rounds the remaining time up to whole seconds for display.
func secondsLeft(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// addBlock spawns a block at most once per spawn interval.
func (g *Game) addBlock(now time.Time) {
	interval := time.Duration(g.cfg.Blocks.SpawnIntervalMS) * time.Millisecond
	if now.Sub(g.lastSpawn) <= interval {
		return
	}

	pos := core.Pos(
		float64(g.rng.Range(1, g.cfg.Grid.Width-2)),
		float64(g.rng.Range(1, g.cfg.Grid.Height-g.cfg.Blocks.BottomGap)),
	)
	typ := g.table.Draw(g.rng)
	if typ == nil {
		return
	}

	g.blocks = append(g.blocks, NewBlock(pos, typ, now))
	g.lastSpawn = now
}

// expireBlocks marks blocks whose lifetime has run out as broken.
func (g *Game) expireBlocks(now time.Time) {
	for _, b := range g.blocks {
		if !b.Broken && b.Expired(now) {
			b.Broken = true
		}
	}
}

// pruneBlocks drops broken blocks from the live collection.
func (g *Game) pruneBlocks() {
	live := g.blocks[:0]
	for _, b := range g.blocks {
		if !b.Broken {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(g.blocks); i++ {
		g.blocks[i] = nil
	}
	g.blocks = live
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateOver,
		Paused:   g.state == StatePaused,
	}
}

// Register the games with the registry
func init() {
	registry.Register("blockbreaker", func() registry.Game {
		return New()
	})
	registry.Register("blockbreaker_endless", func() registry.Game {
		return NewEndless()
	})
}
