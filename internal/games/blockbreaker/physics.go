package blockbreaker

import (
	"math"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// Direction is the paddle's movement direction for the current tick.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}

// DirectionFromInput derives the paddle direction from held keys.
// Only an exclusive Left or Right moves the paddle; both or neither is DirNone.
func DirectionFromInput(in core.InputFrame) Direction {
	left := in.Has(core.ActionLeft)
	right := in.Has(core.ActionRight)

	switch {
	case left && !right:
		return DirLeft
	case right && !left:
		return DirRight
	default:
		return DirNone
	}
}

// Ball is the ball state. Position is cell-granular; motion inside a cell is
// accumulated in Offset, measured in the same units as Speed.
type Ball struct {
	Pos    core.GridPosition
	Speed  core.Vec2 // Sub-cell units per tick
	Offset core.Vec2 // Sub-cell units, |Offset| < cell size on each axis
}

// NewBall creates a ball at pos moving with speed.
func NewBall(pos core.GridPosition, speed core.Vec2) Ball {
	return Ball{Pos: pos, Speed: speed}
}

// Update advances the ball by one tick. Whole cells accumulated in the
// offset are carried into the position.
func (b *Ball) Update(cell core.Vec2) {
	b.Offset.X, b.Pos.X = carry(b.Offset.X+b.Speed.X, b.Pos.X, cell.X)
	b.Offset.Y, b.Pos.Y = carry(b.Offset.Y+b.Speed.Y, b.Pos.Y, cell.Y)
}

// carry folds whole cells of offset into pos and returns the remainder.
func carry(offset, pos, cell float64) (float64, float64) {
	offset = math.Round(offset)
	if cell <= 0 {
		return offset, pos
	}
	for offset >= cell {
		offset -= cell
		pos++
	}
	for offset <= -cell {
		offset += cell
		pos--
	}
	return offset, pos
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.Speed.X = -b.Speed.X
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.Speed.Y = -b.Speed.Y
}

// Paddle is the player's paddle. Pos is the paddle's centre.
type Paddle struct {
	Pos   core.GridPosition
	Dir   Direction
	Width int // Drawn width in cells
}

// Update moves the paddle one step in its direction, clamped to [minX, maxX].
func (p *Paddle) Update(step, minX, maxX float64) {
	switch p.Dir {
	case DirLeft:
		p.Pos.X -= step
	case DirRight:
		p.Pos.X += step
	default:
		return
	}
	p.Pos.X = core.ClampF(p.Pos.X, minX, maxX)
}

// LeftCell returns the leftmost grid column covered by the paddle.
func (p *Paddle) LeftCell() int {
	return int(math.Floor(p.Pos.X)) - p.Width/2
}
