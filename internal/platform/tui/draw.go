package tui

import (
	"fmt"
	"time"

	"github.com/birdrush/birdrush/internal/config"
	"github.com/birdrush/birdrush/internal/core"
	"github.com/birdrush/birdrush/internal/engine"
)

// Drawing characters
const (
	groundChar     = '▀'
	pipeChar       = '█'
	pipeCapTop     = '▄'
	pipeCapBottom  = '▀'
	birdChar       = '●'
	birdEyeChar    = '>'
	spikeUpChar    = '▲'
	spikeDownChar  = '▼'
	laserOnChar    = '━'
	laserOffChar   = '·'
	laserEmitChar  = '◆'
	portalChar     = '◯'
	portalDeadChar = '◌'
	meteorChar     = '●'
	barrierChar    = '▒'
)

// powerUpChars maps pickup kinds to their canvas glyphs.
var powerUpChars = map[engine.PowerUpKind]rune{
	engine.PowerShield: '◆',
	engine.PowerSlowMo: '◔',
	engine.PowerDouble: '✦',
}

// powerUpColors maps pickup kinds to their display colors.
var powerUpColors = map[engine.PowerUpKind]core.Color{
	engine.PowerShield: core.ColorBrightCyan,
	engine.PowerSlowMo: core.ColorBrightBlue,
	engine.PowerDouble: core.ColorBrightYellow,
}

// gameRenderer projects the simulation canvas onto a terminal screen. All
// entity positions are in virtual canvas units; the renderer scales them
// to whatever cell grid the terminal currently has.
type gameRenderer struct {
	cfg config.GameConfig
}

// cellX converts a canvas x coordinate to a screen column.
func (r gameRenderer) cellX(dst *core.Screen, x float64) int {
	return int(x / r.cfg.Canvas.Width * float64(dst.Width()))
}

// cellY converts a canvas y coordinate to a screen row.
func (r gameRenderer) cellY(dst *core.Screen, y float64) int {
	return int(y / r.cfg.Canvas.Height * float64(dst.Height()))
}

// Draw renders one frame of the game to the screen buffer.
func (r gameRenderer) Draw(dst *core.Screen, st *engine.State, now time.Time) {
	dst.Clear()

	r.drawGround(dst)

	for i := range st.Pipes {
		r.drawPipe(dst, &st.Pipes[i])
	}
	for _, ob := range st.Obstacles {
		r.drawObstacle(dst, ob)
	}

	r.drawBird(dst, st)
	r.drawHUD(dst, st, now)

	switch st.Phase {
	case engine.PhaseStart:
		r.drawCenteredMessage(dst, st.Mode.Title(), "Press Space to flap")
	case engine.PhaseGameOver:
		r.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  R: restart  B: menu", st.Score, st.HighScore))
	}
}

// drawGround fills the ground strip at the bottom of the playfield.
func (r gameRenderer) drawGround(dst *core.Screen) {
	top := r.cellY(dst, r.cfg.Canvas.GroundY())
	for y := top; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.SetCell(x, y, groundChar, core.ColorGray)
		}
	}
}

// drawPipe renders both segments of a pipe plus its pickup, if any.
func (r gameRenderer) drawPipe(dst *core.Screen, p *engine.Pipe) {
	x0 := r.cellX(dst, p.X)
	x1 := r.cellX(dst, p.X+p.W)
	if x1 <= x0 {
		x1 = x0 + 1
	}

	topEnd := r.cellY(dst, p.TopHeight)
	bottomStart := r.cellY(dst, p.BottomY)
	groundTop := r.cellY(dst, r.cfg.Canvas.GroundY())

	for x := x0; x < x1; x++ {
		for y := 0; y < topEnd-1; y++ {
			dst.SetCell(x, y, pipeChar, core.ColorGreen)
		}
		if topEnd > 0 {
			dst.SetCell(x, topEnd-1, pipeCapTop, core.ColorBrightGreen)
		}

		if bottomStart < groundTop {
			dst.SetCell(x, bottomStart, pipeCapBottom, core.ColorBrightGreen)
		}
		for y := bottomStart + 1; y < groundTop; y++ {
			dst.SetCell(x, y, pipeChar, core.ColorGreen)
		}
	}

	if pu := p.PowerUp; pu != nil && !pu.Collected {
		px := r.cellX(dst, pu.X)
		py := r.cellY(dst, pu.Y)
		dst.SetCell(px, py, powerUpChars[pu.Kind], powerUpColors[pu.Kind])
	}
}

// drawObstacle dispatches per obstacle variant.
func (r gameRenderer) drawObstacle(dst *core.Screen, ob engine.Obstacle) {
	switch o := ob.(type) {
	case *engine.Spike:
		r.drawSpike(dst, o)
	case *engine.Laser:
		r.drawLaser(dst, o)
	case *engine.Portal:
		r.drawPortal(dst, o)
	case *engine.Meteor:
		r.drawMeteor(dst, o)
	case *engine.Barrier:
		r.drawBarrier(dst, o)
	}
}

func (r gameRenderer) drawSpike(dst *core.Screen, o *engine.Spike) {
	b := o.Bounds()
	x0, x1 := r.cellX(dst, b.X), r.cellX(dst, b.X+b.W)
	y0, y1 := r.cellY(dst, b.Y), r.cellY(dst, b.Y+b.H)

	ch := spikeUpChar
	if o.OnCeiling {
		ch = spikeDownChar
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetCell(x, y, ch, core.ColorRed)
		}
	}
}

func (r gameRenderer) drawLaser(dst *core.Screen, o *engine.Laser) {
	b := o.Bounds()
	y := r.cellY(dst, b.Y+b.H/2)
	x0, x1 := r.cellX(dst, b.X), r.cellX(dst, b.X+b.W)

	ch, col := laserOffChar, core.ColorGray
	if o.On {
		ch, col = laserOnChar, core.ColorBrightRed
	}
	for x := x0; x <= x1; x++ {
		dst.SetCell(x, y, ch, col)
	}
	dst.SetCell(x0, y, laserEmitChar, core.ColorRed)
	dst.SetCell(x1, y, laserEmitChar, core.ColorRed)
}

func (r gameRenderer) drawPortal(dst *core.Screen, o *engine.Portal) {
	b := o.Bounds()
	x0, x1 := r.cellX(dst, b.X), r.cellX(dst, b.X+b.W)
	y0, y1 := r.cellY(dst, b.Y), r.cellY(dst, b.Y+b.H)

	ch, col := portalChar, core.ColorBrightMagenta
	if o.Teleported {
		ch, col = portalDeadChar, core.ColorGray
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetCell(x, y, ch, col)
		}
	}
}

func (r gameRenderer) drawMeteor(dst *core.Screen, o *engine.Meteor) {
	cx, cy := o.Center()
	x := r.cellX(dst, cx)
	y := r.cellY(dst, cy)
	dst.SetCell(x, y, meteorChar, core.ColorOrange)
	// Short trail up and to the right, where it came from
	dst.SetCell(x+1, y-1, '·', core.ColorOrange)
	dst.SetCell(x+2, y-2, '·', core.ColorYellow)
}

func (r gameRenderer) drawBarrier(dst *core.Screen, o *engine.Barrier) {
	b := o.Bounds()
	x0, x1 := r.cellX(dst, b.X), r.cellX(dst, b.X+b.W)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	gapTop := r.cellY(dst, o.GapY)
	gapBottom := r.cellY(dst, o.GapY+o.GapH)
	groundTop := r.cellY(dst, r.cfg.Canvas.GroundY())

	for x := x0; x < x1; x++ {
		for y := 0; y < groundTop; y++ {
			if y >= gapTop && y < gapBottom {
				continue
			}
			dst.SetCell(x, y, barrierChar, core.ColorWhite)
		}
	}
}

// drawBird renders the bird, cyan while a shield is held.
func (r gameRenderer) drawBird(dst *core.Screen, st *engine.State) {
	b := st.Bird
	x0, x1 := r.cellX(dst, b.X), r.cellX(dst, b.X+b.W)
	y0, y1 := r.cellY(dst, b.Y), r.cellY(dst, b.Y+b.H)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	col := core.ColorBrightYellow
	if st.HasShield {
		col = core.ColorBrightCyan
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetCell(x, y, birdChar, col)
		}
	}
	// Eye on the leading edge
	dst.SetCell(x1-1, y0, birdEyeChar, col)
}

// drawHUD renders the score line and active power-up timers.
func (r gameRenderer) drawHUD(dst *core.Screen, st *engine.State, now time.Time) {
	hud := fmt.Sprintf(" Score: %d  Best: %d ", st.Score, st.HighScore)
	dst.DrawText(2, 0, hud)

	x := 2 + len(hud) + 1
	if st.HasShield {
		label := "[SHIELD]"
		dst.DrawTextColor(x, 0, label, core.ColorBrightCyan)
		x += len(label) + 1
	}
	for _, ap := range st.ActivePowerUps {
		remaining := ap.ExpiresAt.Sub(now)
		if remaining <= 0 {
			continue
		}
		var label string
		switch ap.Kind {
		case engine.PowerSlowMo:
			label = fmt.Sprintf("[SLOW %.1fs]", remaining.Seconds())
		case engine.PowerDouble:
			label = fmt.Sprintf("[x2 %.1fs]", remaining.Seconds())
		default:
			continue
		}
		dst.DrawTextColor(x, 0, label, powerUpColors[ap.Kind])
		x += len(label) + 1
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (r gameRenderer) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
