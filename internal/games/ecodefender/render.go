package ecodefender

import (
	"fmt"
	"math"

	"github.com/vovakirdan/eco-defender/internal/core"
)

// Minimum terminal size that still shows a readable field.
const (
	minScreenW = 40
	minScreenH = 12
)

// hudRows is the number of rows above the field.
const hudRows = 1

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small")
		return
	}

	v := newViewport(g.world.Bounds(), w, h-hudRows, hudRows)

	for _, t := range g.trash {
		v.fill(dst, t)
	}
	for _, t := range g.world.Trees() {
		v.fill(dst, t)
	}
	for _, wall := range g.world.Walls() {
		v.fill(dst, wall)
	}
	v.fill(dst, g.world.Bin())
	v.fill(dst, g.world.Vendor())
	for _, p := range g.polluters.Polluters() {
		v.fill(dst, p)
	}
	v.fill(dst, g.player)

	g.drawHUD(dst)

	if g.message != "" {
		msg := " " + g.message + " "
		dst.DrawTextColored((w-len([]rune(msg)))/2, h-1, msg, core.ColorYellow)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("XP: %d  |  Press R to restart", g.xp))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hpColor := core.ColorGreen
	if g.health*3 <= g.cfg.Player.MaxHealth {
		hpColor = core.ColorBrightRed
	}
	hp := fmt.Sprintf(" HP %d/%d ", g.health, g.cfg.Player.MaxHealth)
	dst.DrawTextColored(0, 0, hp, hpColor)

	stats := fmt.Sprintf(" $%d  Trash %d/%d  Seeds %d  Trees %d  XP %d ",
		g.money, g.carried, g.cfg.Player.MaxInventory, g.seeds, g.treesPlanted, g.xp)
	dst.DrawText(len(hp), 0, stats)

	if g.difficulty.IsEnabled() {
		level := fmt.Sprintf(" Lvl %.0f%% ", g.difficulty.Level(g.xp, g.tickCount)*100)
		dst.DrawText(dst.Width()-len(level)-1, 0, level)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// viewport projects world coordinates onto a block of terminal cells.
type viewport struct {
	sx, sy float64 // Cells per world unit
	top    int     // First screen row of the field
	cols   int
	rows   int
}

func newViewport(b core.Bounds, cols, rows, top int) viewport {
	return viewport{
		sx:   float64(cols) / b.W,
		sy:   float64(rows) / b.H,
		top:  top,
		cols: cols,
		rows: rows,
	}
}

// cells returns the cell rectangle covered by a world box. Every non-empty
// box covers at least one cell.
func (v viewport) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := core.Max(int(math.Ceil(b.Right()*v.sx)), x0+1)
	y1 := core.Max(int(math.Ceil(b.Bottom()*v.sy)), y0+1)

	x0 = core.Clamp(x0, 0, v.cols-1)
	y0 = core.Clamp(y0, 0, v.rows-1)
	x1 = core.Clamp(x1, x0+1, v.cols)
	y1 = core.Clamp(y1, y0+1, v.rows)
	return core.NewRect(x0, y0+v.top, x1-x0, y1-y0)
}

func (v viewport) fill(dst *core.Screen, e Entity) {
	r, c := e.Kind.Glyph()
	dst.DrawRect(v.cells(e.Box()), r, c)
}
