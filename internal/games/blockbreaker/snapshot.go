package blockbreaker

import (
	"math"
	"time"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// Snapshot is a read-only copy of the game state at one instant.
// Rendering and determinism checks work from snapshots only.
type Snapshot struct {
	Tick     uint64
	State    string
	Score    int
	TimeLeft time.Duration
	Timed    bool

	PaddleX     float64
	PaddleY     float64
	PaddleWidth int

	BallX, BallY   float64
	BallVX, BallVY float64
	BallOX, BallOY float64

	Blocks []BlockSnapshot

	RNGState uint64
}

// BlockSnapshot is the visible state of one block.
type BlockSnapshot struct {
	X, Y      float64
	Type      string
	Color     core.Color
	Alpha     float64
	Remaining time.Duration
}

// Snapshot returns the current game state. Broken blocks are omitted.
func (g *Game) Snapshot() Snapshot {
	now := g.clock.Now()

	blocks := make([]BlockSnapshot, 0, len(g.blocks))
	for _, b := range g.blocks {
		if b.Broken {
			continue
		}
		blocks = append(blocks, BlockSnapshot{
			X:         b.Pos.X,
			Y:         b.Pos.Y,
			Type:      b.Type.Name,
			Color:     b.Type.Color,
			Alpha:     b.Alpha(now),
			Remaining: b.Remaining(now),
		})
	}

	return Snapshot{
		Tick:     uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State:    g.state,
		Score:    g.score,
		TimeLeft: g.TimeLeft(),
		Timed:    g.timed(),

		PaddleX:     g.paddle.Pos.X,
		PaddleY:     g.paddle.Pos.Y,
		PaddleWidth: g.paddle.Width,

		BallX:  g.ball.Pos.X,
		BallY:  g.ball.Pos.Y,
		BallVX: g.ball.Speed.X,
		BallVY: g.ball.Speed.Y,
		BallOX: g.ball.Offset.X,
		BallOY: g.ball.Offset.Y,

		Blocks:   blocks,
		RNGState: g.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.State))
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallVX)
	h = h*31 + math.Float64bits(snap.BallVY)
	h = h*31 + math.Float64bits(snap.BallOX)
	h = h*31 + math.Float64bits(snap.BallOY)
	h = h*31 + uint64(snap.TimeLeft) //#nosec G115 -- hash computation

	for _, b := range snap.Blocks {
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + uint64(len(b.Type))
		h = h*31 + uint64(b.Remaining) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}
