package blockbreaker

import (
	"fmt"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
)

// Block glyphs from fully opaque to almost faded.
var fadeGlyphs = []rune{'█', '▓', '▒', '░'}

// fadeGlyph picks a shade for the given opacity.
func fadeGlyph(alpha float64) rune {
	switch {
	case alpha > 0.75:
		return fadeGlyphs[0]
	case alpha > 0.5:
		return fadeGlyphs[1]
	case alpha > 0.25:
		return fadeGlyphs[2]
	default:
		return fadeGlyphs[3]
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	snap := g.Snapshot()

	g.renderField(dst)
	g.renderBlocks(dst, snap)
	g.renderPaddle(dst, snap)
	g.renderBall(dst, snap)
	g.renderHUD(dst, snap)
	g.renderOverlay(dst, snap)
}

// cellToScreen maps a grid cell to the left of its two screen columns.
func (g *Game) cellToScreen(cx, cy int) (int, int) {
	return g.originX + 1 + cx*2, g.originY + 1 + cy
}

// inField reports whether a grid cell is inside the playfield.
func (g *Game) inField(cx, cy int) bool {
	return cx >= 0 && cx < g.cfg.Grid.Width && cy >= 0 && cy < g.cfg.Grid.Height
}

func (g *Game) renderField(dst *core.Screen) {
	dst.DrawBox(core.NewRect(g.originX, g.originY, g.cfg.Grid.Width*2+2, g.cfg.Grid.Height+2))
}

func (g *Game) renderBlocks(dst *core.Screen, snap Snapshot) {
	for _, b := range snap.Blocks {
		cx, cy := core.Pos(b.X, b.Y).Cell()
		if !g.inField(cx, cy) {
			continue
		}
		sx, sy := g.cellToScreen(cx, cy)
		glyph := fadeGlyph(b.Alpha)
		dst.SetColored(sx, sy, glyph, b.Color)
		dst.SetColored(sx+1, sy, glyph, b.Color)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, snap Snapshot) {
	p := Paddle{Pos: core.Pos(snap.PaddleX, snap.PaddleY), Width: snap.PaddleWidth}
	_, cy := p.Pos.Cell()
	left := p.LeftCell()
	for i := range p.Width {
		cx := left + i
		if !g.inField(cx, cy) {
			continue
		}
		sx, sy := g.cellToScreen(cx, cy)
		dst.SetColored(sx, sy, PaddleChar, core.ColorOrange)
		dst.SetColored(sx+1, sy, PaddleChar, core.ColorOrange)
	}
}

// renderBall draws the ball in the half of its cell its offset points to.
func (g *Game) renderBall(dst *core.Screen, snap Snapshot) {
	cx, cy := core.Pos(snap.BallX, snap.BallY).Cell()
	if !g.inField(cx, cy) {
		return
	}
	sx, sy := g.cellToScreen(cx, cy)
	if snap.BallOX >= g.cfg.Grid.CellWidth/2 {
		sx++
	}
	dst.SetColored(sx, sy, BallChar, core.ColorCyan)
}

// renderHUD draws score and time left below the playfield.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	y := g.originY + g.cfg.Grid.Height + 2
	dst.DrawText(g.originX+1, y, fmt.Sprintf("Score: %d", snap.Score))

	if snap.Timed {
		timeText := fmt.Sprintf("Time left: %d", secondsLeft(snap.TimeLeft))
		right := g.originX + g.cfg.Grid.Width*2 + 1
		dst.DrawText(right-len(timeText), y, timeText)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap Snapshot) {
	switch snap.State {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Left/Right to play  |  P to pause")
	case StateOver:
		g.drawCenteredBox(dst, "TIME UP", fmt.Sprintf("Final score: %d", snap.Score))
	}
}

// drawCenteredBox draws a centered message box over the playfield.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	fieldW := g.cfg.Grid.Width*2 + 2
	fieldH := g.cfg.Grid.Height + 2

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := g.originX + (fieldW-boxW)/2
	boxY := g.originY + (fieldH-boxH)/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
