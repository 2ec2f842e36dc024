package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-ball/internal/core"
)

// Visual characters for rendering
const (
	BallChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	StarChar      = '·'
)

// hudRows is the number of rows above the field (score line).
const hudRows = 1

// viewport maps field pixels to screen cells. The field occupies every row
// between the HUD and the ground line.
type viewport struct {
	top    int
	rows   int
	cols   int
	scaleX float64
	scaleY float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	rows := max(dst.Height()-hudRows-1, 1)
	cols := max(dst.Width(), 1)
	return viewport{
		top:    hudRows,
		rows:   rows,
		cols:   cols,
		scaleX: float64(cols) / g.cfg.Field.Width,
		scaleY: float64(rows) / g.cfg.Field.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.scaleX))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.scaleY))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.viewport(dst)

	g.drawBackdrop(dst, v)

	// Draw ground
	dst.DrawHLine(0, v.top+v.rows, dst.Width(), GroundChar, core.ColorNeonGreen)

	if g.phase == core.PhaseNotStarted {
		g.drawStartScreen(dst)
		return
	}

	for _, p := range g.pipes.pipes {
		g.drawPipe(dst, v, p)
	}
	g.drawBall(dst, v)

	// Draw HUD
	hud := fmt.Sprintf(" Score: %d | Best: %d ", g.score, g.best)
	dst.DrawTextColored(1, 0, hud, core.ColorNeonGreen)

	if g.paused {
		g.drawCenteredMessage(dst, core.ColorNeonBlue, "PAUSED", "Press P to resume")
	}

	if g.phase == core.PhaseOver {
		g.drawCenteredMessage(dst, core.ColorNeonPink,
			"GAME OVER",
			fmt.Sprintf("Score: %d | Best: %d", g.score, g.best),
			"R / Enter to play again  |  Q to quit")
	}
}

// drawBackdrop scatters a fixed pattern of dim stars over the field.
func (g *Game) drawBackdrop(dst *core.Screen, v viewport) {
	for y := 0; y < v.rows; y += 3 {
		for x := (y * 7) % 11; x < v.cols; x += 17 {
			dst.SetColored(x, v.top+y, StarChar, core.ColorGray)
		}
	}
}

// drawPipe renders a single pipe to the screen.
func (g *Game) drawPipe(dst *core.Screen, v viewport, p Pipe) {
	left := v.col(p.X)
	right := int(math.Ceil((p.X+g.cfg.Pipes.Width)*v.scaleX)) - 1
	gapTop := v.row(p.GapTop)
	gapBottom := v.row(p.GapTop + g.cfg.Pipes.GapHeight)
	ground := v.top + v.rows

	for x := left; x <= right; x++ {
		// Top section, capped at its lower end
		for y := v.top; y < gapTop; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorNeonGreen)
		}
		if gapTop > v.top {
			dst.SetColored(x, gapTop-1, PipeCapTop, core.ColorNeonGreen)
		}

		// Bottom section, capped at its upper end
		for y := gapBottom; y < ground; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorNeonGreen)
		}
		if gapBottom < ground {
			dst.SetColored(x, gapBottom, PipeCapBottom, core.ColorNeonGreen)
		}
	}
}

// drawBall renders the bird as a filled block of ball characters.
func (g *Game) drawBall(dst *core.Screen, v viewport) {
	left := v.col(g.cfg.Bird.X)
	right := max(int(math.Ceil((g.cfg.Bird.X+g.cfg.Bird.Size)*v.scaleX))-1, left)
	top := v.row(g.bird.Y)
	bottom := max(int(math.Ceil((g.bird.Y+g.cfg.Bird.Size)*v.scaleY))+v.top-1, top)

	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			dst.SetColored(x, y, BallChar, core.ColorNeonYellow)
		}
	}
}

// drawStartScreen renders the title card shown before the first run.
func (g *Game) drawStartScreen(dst *core.Screen) {
	g.drawCenteredMessage(dst, core.ColorNeonBlue,
		"* FLAPPY BALL *",
		"Space / click to jump",
		fmt.Sprintf("Best: %d", g.best),
		"Enter to play  |  Tab: scores  |  Q: quit")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, c core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := core.Clamp((w-boxW)/2, 0, max(w-boxW, 0))
	boxY := core.Clamp((h-boxH)/2, 0, max(h-boxH, 0))
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	dst.DrawTextCentered(boxY+1, title, c)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorWhite)
	}
}
