package ecodefender

import (
	"strings"
	"testing"

	"github.com/vovakirdan/eco-defender/internal/core"
)

func TestRenderDrawsHUDAndEntities(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	addTrash(g, core.V(500, 500))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "HP 100/100") || !strings.Contains(hud, "Trash 0/3") {
		t.Errorf("HUD missing stats: %q", hud)
	}

	counts := map[rune]int{}
	for y := 1; y < screen.Height(); y++ {
		for _, r := range screen.Row(y) {
			counts[r]++
		}
	}
	for _, k := range []Kind{KindPlayer, KindTrash, KindBin, KindVendor} {
		glyph, _ := k.Glyph()
		if counts[glyph] == 0 {
			t.Errorf("%s glyph %q not drawn", k, glyph)
		}
	}
}

func TestRenderPlayerColor(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	v := newViewport(g.world.Bounds(), 80, 24-hudRows, hudRows)
	r := v.cells(g.player.Box())
	cell := screen.GetCell(r.X, r.Y)
	if cell.Rune != '@' || cell.Color != core.ColorLime {
		t.Errorf("player cell = %+v", cell)
	}
}

func TestViewportCoversSmallBoxes(t *testing.T) {
	v := newViewport(core.Bounds{W: 1024, H: 768}, 80, 23, 1)

	r := v.cells(core.Box{X: 0, Y: 0, W: 1, H: 1})
	if r.W != 1 || r.H != 1 || r.Y != 1 {
		t.Errorf("tiny box should cover one cell below the HUD, got %+v", r)
	}

	r = v.cells(core.Box{X: 1023, Y: 767, W: 1, H: 1})
	if r.Right() > 80 || r.Bottom() > 24 {
		t.Errorf("box at the far corner should stay on screen, got %+v", r)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	screen := core.NewScreen(30, 8)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Error("small terminals should get a resize hint")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	screen := core.NewScreen(80, 24)

	g.paused = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}

	g.paused = false
	g.gameOver = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}
