package blockbreaker

import (
	"math"
	"time"
)

// resolveCollisions bounces the ball off walls, the paddle and blocks.
// Blocks struck this tick are marked broken and scored.
func (g *Game) resolveCollisions(now time.Time) {
	g.bounceWalls()
	g.bouncePaddle()
	g.hitBlocks(now)
}

// bounceWalls reflects the ball at the top and side edges. Threshold checks
// rather than equality keep fast balls from skipping past an edge.
func (g *Game) bounceWalls() {
	b := &g.ball
	if b.Pos.Y <= 0 && b.Speed.Y < 0 {
		b.BounceY()
	}
	if b.Pos.X <= 0 && b.Speed.X < 0 {
		b.BounceX()
	} else if b.Pos.X >= float64(g.cfg.Grid.Width-1) && b.Speed.X > 0 {
		b.BounceX()
	}
}

// bouncePaddle reflects a falling ball that reaches the paddle row within the
// hit width. The outgoing horizontal speed depends on where the paddle was hit.
func (g *Game) bouncePaddle() {
	b := &g.ball
	if b.Speed.Y <= 0 || b.Pos.Y+1 < g.paddle.Pos.Y {
		return
	}

	dx := b.Pos.X - g.paddle.Pos.X
	if math.Abs(dx) >= g.cfg.Physics.PaddleHitWidth {
		return
	}

	speedY := g.difficulty.Speed(math.Abs(g.cfg.Physics.BallSpeedY), g.score, g.tickCount)
	b.Speed.Y = -math.Max(speedY, math.Abs(b.Speed.Y))
	b.Speed.X = PaddleSpin(dx, b.Offset.X, g.cfg.Physics.SpinFactor, g.cfg.Grid.CellWidth)
}

// PaddleSpin returns the horizontal speed after a paddle hit: linear in the
// distance from the paddle centre plus a small term from the sub-cell offset.
func PaddleSpin(dx, offsetX, spinFactor, cellWidth float64) float64 {
	return dx*spinFactor + offsetX/(cellWidth/16)
}

// hitBlocks checks every live block independently. Each hit flips the axis
// with the larger distance; on a tie the axis with the smaller sub-cell
// offset flips.
func (g *Game) hitBlocks(now time.Time) {
	b := &g.ball
	radius := g.cfg.Physics.BlockHitRadius
	grace := time.Duration(g.cfg.Blocks.GraceMS) * time.Millisecond

	for _, block := range g.blocks {
		if block.Broken {
			continue
		}

		dx, dy := b.Pos.Delta(block.Pos)
		if dx >= radius || dy >= radius {
			continue
		}
		if block.Age(now) <= grace {
			continue
		}

		switch ReflectAxis(dx, dy, b.Offset.X, b.Offset.Y) {
		case AxisX:
			b.BounceX()
		case AxisY:
			b.BounceY()
		}

		block.Broken = true
		g.score += block.Type.Value
	}
}

// Axis identifies the velocity component flipped by a block hit.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// ReflectAxis picks the axis to flip for a block hit at distances (dx, dy).
func ReflectAxis(dx, dy, offsetX, offsetY float64) Axis {
	switch {
	case dx > dy:
		return AxisX
	case dx < dy:
		return AxisY
	case offsetX < offsetY:
		return AxisX
	default:
		return AxisY
	}
}

// checkRestart puts the ball back after it falls past the bottom edge,
// charges the miss penalty, and pauses until the player moves again.
func (g *Game) checkRestart(now time.Time) {
	if g.ball.Pos.Y <= float64(g.cfg.Grid.Height) {
		return
	}

	g.ball = g.initialBall()
	g.score -= g.cfg.Scoring.MissPenalty
	g.setPaused(true, now)
}
