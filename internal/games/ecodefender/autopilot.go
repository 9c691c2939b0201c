package ecodefender

import "github.com/vovakirdan/eco-defender/internal/core"

// steerDeadzone is how close (in world units) the autopilot gets before it
// stops steering on an axis.
const steerDeadzone = 4

// Autopilot returns the input a simple greedy player would give this tick:
// swat nearby polluters, fetch trash, sell it, buy seeds and plant them away
// from the stations. It reads state only and is deterministic.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()
	if g.gameOver || g.paused || g.world == nil {
		return in
	}

	econ := g.cfg.Economy
	near := func(e Entity, r float64) bool { return g.player.Reaches(e, r) }

	for _, p := range g.polluters.Polluters() {
		if near(p, g.cfg.Combat.AttackRadius) {
			in.Set(core.ActionAttack)
			break
		}
	}

	switch {
	case g.carried < g.cfg.Player.MaxInventory && len(g.trash) > 0:
		t := g.trash[g.nearest(g.trash)]
		g.steer(&in, t.Center())
		if near(t, econ.PickupRadius) {
			in.Set(core.ActionInteract)
		}
	case g.carried > 0:
		g.steer(&in, g.world.Bin().Center())
		if near(g.world.Bin(), econ.StationRadius) {
			in.Set(core.ActionInteract)
		}
	case g.money >= econ.SeedCost:
		g.steer(&in, g.world.Vendor().Center())
		if near(g.world.Vendor(), econ.StationRadius) {
			in.Set(core.ActionInteract)
		}
	case g.seeds > 0:
		if near(g.world.Bin(), econ.StationRadius) || near(g.world.Vendor(), econ.StationRadius) {
			b := g.world.Bounds()
			g.steer(&in, core.V(b.W/2, b.H/2))
		} else {
			in.Set(core.ActionInteract)
		}
	case g.polluters.Count() > 0:
		ps := g.polluters.Polluters()
		g.steer(&in, ps[g.nearest(ps)].Center())
	}

	return in
}

// nearest returns the index of the entity closest to the player.
// es must not be empty.
func (g *Game) nearest(es []Entity) int {
	center := g.player.Center()
	best := 0
	for i := 1; i < len(es); i++ {
		if center.Dist(es[i].Center()) < center.Dist(es[best].Center()) {
			best = i
		}
	}
	return best
}

// steer sets the movement actions that bring the player's center toward target.
func (g *Game) steer(in *core.InputFrame, target core.Vec2) {
	d := target.Sub(g.player.Center())
	switch {
	case d.X > steerDeadzone:
		in.Set(core.ActionRight)
	case d.X < -steerDeadzone:
		in.Set(core.ActionLeft)
	}
	switch {
	case d.Y > steerDeadzone:
		in.Set(core.ActionDown)
	case d.Y < -steerDeadzone:
		in.Set(core.ActionUp)
	}
}
