package ecodefender

import "github.com/vovakirdan/eco-defender/internal/core"

// interact performs the first applicable action, in priority order:
// pick up trash, sell at the bin, buy a seed, plant a tree.
func (g *Game) interact() {
	if g.pickUp() {
		return
	}
	if g.player.Reaches(g.world.Bin(), g.cfg.Economy.StationRadius) {
		g.deposit()
		return
	}
	if g.player.Reaches(g.world.Vendor(), g.cfg.Economy.StationRadius) {
		g.buySeed()
		return
	}
	if g.seeds > 0 {
		g.plant()
	}
}

// pickUp collects the closest trash within reach. A full inventory makes
// nearby trash unreachable, so the bin and vendor still get a turn.
func (g *Game) pickUp() bool {
	if g.carried >= g.cfg.Player.MaxInventory {
		if g.closestTrash() >= 0 {
			g.say("Inventory full: empty it at the bin")
		}
		return false
	}
	idx := g.closestTrash()
	if idx < 0 {
		return false
	}
	g.trash = append(g.trash[:idx], g.trash[idx+1:]...)
	g.carried++
	return true
}

// closestTrash returns the index of the nearest trash within pickup radius, or -1.
func (g *Game) closestTrash() int {
	best := -1
	bestDist := g.cfg.Economy.PickupRadius
	center := g.player.Center()
	for i, t := range g.trash {
		if d := center.Dist(t.Center()); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (g *Game) deposit() {
	if g.carried == 0 {
		return
	}
	n := g.carried
	g.money += n * g.cfg.Economy.TrashValue
	g.xp += n * g.cfg.Economy.XPPerTrash
	g.trashCollected += n
	g.carried = 0
	g.say("Recycled %d trash for $%d", n, n*g.cfg.Economy.TrashValue)
}

func (g *Game) buySeed() {
	if g.money < g.cfg.Economy.SeedCost {
		g.say("A seed costs $%d", g.cfg.Economy.SeedCost)
		return
	}
	g.money -= g.cfg.Economy.SeedCost
	g.seeds++
	g.say("Bought a seed")
}

// plant places a tree next to the player, trying below, above, right and
// left in that order. The tree must fit in the world and must not touch an
// obstacle, the player or a polluter.
func (g *Game) plant() {
	size := core.V(g.cfg.Sizes.TreeW, g.cfg.Sizes.TreeH)
	for _, pos := range g.plantSpots(size) {
		tree := newEntity(KindTree, pos, size)
		b := tree.Box()
		if !g.world.Free(b) || b.Overlaps(g.player.Box()) || g.polluters.Touching(b) > 0 {
			continue
		}
		g.world.AddTree(tree)
		g.seeds--
		g.treesPlanted++
		g.xp += g.cfg.Economy.XPPerTree
		g.say("Planted a tree")
		return
	}
	g.say("No room to plant here")
}

func (g *Game) plantSpots(size core.Vec2) []core.Vec2 {
	p := g.player.Box()
	c := p.Center()
	return []core.Vec2{
		core.V(c.X-size.X/2, p.Bottom()),
		core.V(c.X-size.X/2, p.Y-size.Y),
		core.V(p.Right(), c.Y-size.Y/2),
		core.V(p.X-size.X, c.Y-size.Y/2),
	}
}

// attack stops every polluter within reach.
func (g *Game) attack() {
	n := g.polluters.Stop(g.player.Center(), g.cfg.Combat.AttackRadius)
	if n == 0 {
		return
	}
	g.pollutersStopped += n
	g.xp += n * g.cfg.Combat.XPPerKill
	g.say("Stopped %d polluter(s)", n)
}
