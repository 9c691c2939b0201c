package ecodefender

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/eco-defender/internal/config"
	"github.com/vovakirdan/eco-defender/internal/core"
	"github.com/vovakirdan/eco-defender/internal/registry"
)

const tick = time.Second / 60

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame starts a game with the built-in defaults and an optional tweak,
// ignoring any config file on the machine running the tests.
func newTestGame(t *testing.T, mapID string, tweak func(*config.GameConfig)) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	g := New("test", "Test", mapID)
	g.reset(testRuntime(42), cfg)
	return g
}

// quiet removes polluters and their respawns so only the player acts.
func quiet(cfg *config.GameConfig) {
	cfg.Polluters.Initial = 0
	cfg.Polluters.RespawnChance = 0
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Elapsed = tick
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func addPolluter(g *Game, pos, vel core.Vec2) {
	size := core.V(g.cfg.Polluters.Size, g.cfg.Polluters.Size)
	p := newEntity(KindPolluter, pos, size)
	p.Vel = vel
	g.polluters.polluters = append(g.polluters.polluters, p)
}

func addTrash(g *Game, pos core.Vec2) {
	size := core.V(g.cfg.Sizes.Trash, g.cfg.Sizes.Trash)
	g.trash = append(g.trash, newEntity(KindTrash, pos, size))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestGameDeterminism(t *testing.T) {
	run := func() (uint64, Snapshot) {
		g := newTestGame(t, "city", nil)
		for i := 0; i < 1200; i++ {
			in := g.Autopilot()
			in.Elapsed = tick
			if g.Step(in).State.GameOver {
				break
			}
		}
		snap := g.Snapshot()
		return snap.Hash(), snap
	}

	h1, s1 := run()
	h2, s2 := run()
	if h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
	if s1.Tick != s2.Tick || s1.XP != s2.XP {
		t.Errorf("Determinism failed: tick/xp differ. Run1=%d/%d, Run2=%d/%d", s1.Tick, s1.XP, s2.Tick, s2.XP)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, "meadow", nil)

	for i := 0; i < 120; i++ {
		g.Step(frame(core.ActionDown, core.ActionRight))
	}
	g.seeds = 3
	g.money = 50

	g.reset(testRuntime(42), g.cfg)

	if g.player.Pos != core.V(100, 100) {
		t.Errorf("player should return to start, got %+v", g.player.Pos)
	}
	if g.tickCount != 0 || g.money != 0 || g.seeds != 0 || g.xp != 0 {
		t.Error("counters should reset")
	}
	if g.health != g.cfg.Player.MaxHealth {
		t.Errorf("health = %d, expected %d", g.health, g.cfg.Player.MaxHealth)
	}
	if got := g.polluters.Count(); got != g.cfg.Polluters.Initial {
		t.Errorf("polluters after reset = %d, expected %d", got, g.cfg.Polluters.Initial)
	}
}

func TestInitialPollutersSpawnClear(t *testing.T) {
	g := newTestGame(t, "city", nil)

	want := g.cfg.Polluters.Initial + g.layout.ExtraPolluters
	if got := g.polluters.Count(); got != want {
		t.Fatalf("polluters = %d, expected %d", got, want)
	}
	for _, p := range g.polluters.Polluters() {
		if !g.world.Free(p.Box()) {
			t.Errorf("polluter spawned on an obstacle at %+v", p.Pos)
		}
		if p.Center().Dist(g.player.Center()) < spawnClearance {
			t.Errorf("polluter spawned too close to the player at %+v", p.Pos)
		}
		if !approx(p.Vel.Len(), g.polluterSpeed()) {
			t.Errorf("polluter speed = %v, expected %v", p.Vel.Len(), g.polluterSpeed())
		}
	}
}

func TestPlayerMovesAtConfiguredSpeed(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	for i := 0; i < 60; i++ {
		g.Step(frame(core.ActionDown))
	}

	if !approx(g.player.Pos.Y, 100+g.cfg.Player.Speed) {
		t.Errorf("after one second y = %v, expected %v", g.player.Pos.Y, 100+g.cfg.Player.Speed)
	}
	if g.player.Pos.X != 100 {
		t.Errorf("x should not change, got %v", g.player.Pos.X)
	}
}

func TestDiagonalMovementIsNotFaster(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	start := g.player.Pos

	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionDown, core.ActionLeft))
	}

	moved := g.player.Pos.Sub(start).Len()
	want := g.cfg.Player.Speed * 10 * tick.Seconds()
	if !approx(moved, want) {
		t.Errorf("diagonal distance = %v, expected %v", moved, want)
	}
}

func TestPlayerClampedToWorld(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	for i := 0; i < 120; i++ {
		g.Step(frame(core.ActionUp, core.ActionLeft))
	}

	if g.player.Pos != core.V(0, 0) {
		t.Errorf("player should stop at the top-left corner, got %+v", g.player.Pos)
	}
}

func TestPlayerBlockedByBin(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	for i := 0; i < 60; i++ {
		g.Step(frame(core.ActionRight))
	}

	if g.player.Box().Overlaps(g.world.Bin().Box()) {
		t.Fatal("player should never overlap the bin")
	}
	if g.player.Pos.X < 140 || g.player.Pos.X > 148 {
		t.Errorf("player should stop just short of the bin, x = %v", g.player.Pos.X)
	}
}

func TestElapsedIsCapped(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	in := frame(core.ActionDown)
	in.Elapsed = 5 * time.Second
	g.Step(in)

	want := 100 + g.cfg.Player.Speed*maxStepSeconds
	if !approx(g.player.Pos.Y, want) {
		t.Errorf("y = %v, expected %v", g.player.Pos.Y, want)
	}
}

func TestZeroElapsedUsesNominalTick(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	in := frame(core.ActionDown)
	in.Elapsed = 0
	g.Step(in)

	want := 100 + g.cfg.Player.Speed*tick.Seconds()
	if !approx(g.player.Pos.Y, want) {
		t.Errorf("y = %v, expected %v", g.player.Pos.Y, want)
	}
}

func TestEconomyFlow(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	// Pick up two pieces next to the player.
	addTrash(g, core.V(110, 140))
	addTrash(g, core.V(90, 150))
	g.Step(frame(core.ActionInteract))
	g.Step(frame(core.ActionInteract))
	if g.carried != 2 || len(g.trash) != 0 {
		t.Fatalf("carried = %d, trash left = %d; expected 2 and 0", g.carried, len(g.trash))
	}

	// Sell at the bin.
	g.player.Pos = core.V(140, 100)
	g.Step(frame(core.ActionInteract))
	if g.money != 20 || g.xp != 2 || g.carried != 0 || g.trashCollected != 2 {
		t.Fatalf("after deposit money=%d xp=%d carried=%d collected=%d", g.money, g.xp, g.carried, g.trashCollected)
	}

	// Buy a seed at the vendor.
	g.player.Pos = core.V(850, 100)
	g.Step(frame(core.ActionInteract))
	if g.money != 0 || g.seeds != 1 {
		t.Fatalf("after purchase money=%d seeds=%d", g.money, g.seeds)
	}

	// Not enough money for a second one.
	g.Step(frame(core.ActionInteract))
	if g.seeds != 1 {
		t.Errorf("purchase without money should fail, seeds = %d", g.seeds)
	}
	if g.message == "" {
		t.Error("failed purchase should explain the price")
	}

	// Plant in the open.
	g.player.Pos = core.V(500, 400)
	g.Step(frame(core.ActionInteract))
	if g.seeds != 0 || g.treesPlanted != 1 || len(g.world.Trees()) != 1 {
		t.Fatalf("after planting seeds=%d planted=%d", g.seeds, g.treesPlanted)
	}
	if g.xp != 2+g.cfg.Economy.XPPerTree {
		t.Errorf("xp = %d, expected %d", g.xp, 2+g.cfg.Economy.XPPerTree)
	}
	tree := g.world.Trees()[0]
	if tree.Pos != core.V(506, 432) {
		t.Errorf("tree should sit directly below the player, got %+v", tree.Pos)
	}
	if len(g.world.Obstacles()) != 3 {
		t.Errorf("planted tree should become an obstacle, obstacles = %d", len(g.world.Obstacles()))
	}
}

func TestDepositRequiresReach(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	g.carried = 2

	// Start position is 84 units from the bin center.
	g.Step(frame(core.ActionInteract))
	if g.carried != 2 || g.money != 0 {
		t.Error("deposit should need the bin within reach")
	}
}

func TestPickUpClosestFirst(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	addTrash(g, core.V(100, 150)) // 42 from the player center
	addTrash(g, core.V(110, 130)) // 22 from the player center

	g.Step(frame(core.ActionInteract))

	if len(g.trash) != 1 || g.trash[0].Pos != core.V(100, 150) {
		t.Errorf("closest trash should be picked first, left %+v", g.trash)
	}
}

func TestInventoryCap(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	g.carried = g.cfg.Player.MaxInventory
	addTrash(g, core.V(110, 140))

	g.Step(frame(core.ActionInteract))

	if g.carried != g.cfg.Player.MaxInventory || len(g.trash) != 1 {
		t.Errorf("full inventory should not pick up, carried=%d trash=%d", g.carried, len(g.trash))
	}
	if !strings.Contains(g.message, "full") {
		t.Errorf("expected an inventory hint, got %q", g.message)
	}
}

func TestPlantTriesEachSide(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	g.player.Pos = core.V(500, 400)
	g.seeds = 5

	want := []core.Vec2{
		core.V(506, 432), // below
		core.V(506, 360), // above
		core.V(532, 396), // right
		core.V(480, 396), // left
	}
	for i := range want {
		g.Step(frame(core.ActionInteract))
		if len(g.world.Trees()) != i+1 {
			t.Fatalf("plant %d failed", i+1)
		}
		if got := g.world.Trees()[i].Pos; got != want[i] {
			t.Errorf("tree %d at %+v, expected %+v", i+1, got, want[i])
		}
	}

	g.Step(frame(core.ActionInteract))
	if len(g.world.Trees()) != 4 || g.seeds != 1 {
		t.Errorf("a boxed-in player should not plant, trees=%d seeds=%d", len(g.world.Trees()), g.seeds)
	}
	if !strings.Contains(g.message, "No room") {
		t.Errorf("expected a no-room message, got %q", g.message)
	}
}

func TestPlantAtWorldEdge(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	g.player.Pos = core.V(500, 768-32)
	g.seeds = 1

	g.Step(frame(core.ActionInteract))

	if len(g.world.Trees()) != 1 {
		t.Fatal("tree should be planted above when below is off the map")
	}
	if got := g.world.Trees()[0].Pos; got != core.V(506, 768-32-40) {
		t.Errorf("tree at %+v, expected above the player", got)
	}
}

func TestPlantAvoidsPolluters(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	g.player.Pos = core.V(500, 400)
	g.seeds = 1
	addPolluter(g, core.V(500, 440), core.Vec2{})

	g.Step(frame(core.ActionInteract))

	if len(g.world.Trees()) != 1 {
		t.Fatal("tree should still be planted on another side")
	}
	if g.world.Trees()[0].Box().Overlaps(g.polluters.Polluters()[0].Box()) {
		t.Error("tree must not be planted on a polluter")
	}
}

func TestAttackStopsPollutersInRange(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	addPolluter(g, core.V(135, 135), core.Vec2{}) // center 48 units away
	addPolluter(g, core.V(600, 600), core.Vec2{})

	g.Step(frame(core.ActionAttack))

	if g.polluters.Count() != 1 {
		t.Fatalf("one polluter should remain, got %d", g.polluters.Count())
	}
	if g.pollutersStopped != 1 || g.xp != g.cfg.Combat.XPPerKill {
		t.Errorf("stopped=%d xp=%d", g.pollutersStopped, g.xp)
	}
}

func TestContactDamageAndGameOver(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Player.MaxHealth = 20
		cfg.Polluters.ContactDamage = 10
		cfg.Polluters.DamageCooldown = 5
		cfg.Polluters.TrashChance = 0
	})
	addPolluter(g, core.V(110, 110), core.Vec2{})

	g.Step(frame())
	if g.health != 10 {
		t.Fatalf("health after contact = %d, expected 10", g.health)
	}
	for i := 0; i < 4; i++ {
		g.Step(frame())
	}
	if g.health != 10 || g.State().GameOver {
		t.Fatalf("cooldown should protect the player, health = %d", g.health)
	}

	// Hits land every DamageCooldown ticks: the fifth tick after the first hit.
	result := g.Step(frame())
	if g.health != 0 || !result.State.GameOver {
		t.Errorf("second hit should end the game, health=%d over=%v", g.health, result.State.GameOver)
	}

	before := g.tickCount
	g.Step(frame(core.ActionDown))
	if g.tickCount != before {
		t.Error("game over should freeze the simulation")
	}
}

func TestPolluterBouncesOffWorldEdge(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Polluters.TrashChance = 0
	})
	addPolluter(g, core.V(0, 300), core.V(-100, 0))

	g.Step(frame())
	p := g.polluters.Polluters()[0]
	if p.Pos != core.V(0, 300) {
		t.Errorf("colliding tick should hold position, got %+v", p.Pos)
	}
	if p.Vel.X != 100 {
		t.Errorf("velocity should flip, got %+v", p.Vel)
	}

	g.Step(frame())
	p = g.polluters.Polluters()[0]
	if !approx(p.Pos.X, 100*tick.Seconds()) {
		t.Errorf("next tick should move away from the edge, x = %v", p.Pos.X)
	}
}

func TestPolluterBouncesOffBin(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Polluters.TrashChance = 0
	})
	// Flush against the bin's left side, heading right and down.
	addPolluter(g, core.V(150, 105), core.V(60, 60))

	g.Step(frame())
	p := g.polluters.Polluters()[0]
	if p.Pos != core.V(150, 105) || p.Vel != core.V(-60, -60) {
		t.Errorf("polluter should hold and reverse, got pos %+v vel %+v", p.Pos, p.Vel)
	}
}

func TestPolluterWanders(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Polluters.TrashChance = 0
		cfg.Polluters.WanderSeconds = 0.05
	})
	addPolluter(g, core.V(500, 500), core.V(100, 0))

	for i := 0; i < 4; i++ {
		g.Step(frame())
	}

	p := g.polluters.Polluters()[0]
	if p.Vel == core.V(100, 0) {
		t.Error("polluter should pick a new direction after the wander interval")
	}
	if !approx(p.Vel.Len(), g.polluterSpeed()) && !p.Vel.IsZero() {
		t.Errorf("wander speed = %v, expected %v", p.Vel.Len(), g.polluterSpeed())
	}
}

func TestPollutersDropTrashUpToCap(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Polluters.TrashChance = 1
		cfg.Polluters.MaxTrash = 2
	})
	addPolluter(g, core.V(500, 500), core.Vec2{})

	g.Step(frame())
	if len(g.trash) != 1 {
		t.Fatalf("trash after one tick = %d, expected 1", len(g.trash))
	}
	for i := 0; i < 5; i++ {
		g.Step(frame())
	}
	if len(g.trash) != 2 {
		t.Errorf("trash should cap at 2, got %d", len(g.trash))
	}
}

func TestRespawnWhenAllStopped(t *testing.T) {
	g := newTestGame(t, "meadow", func(cfg *config.GameConfig) {
		quiet(cfg)
		cfg.Polluters.RespawnChance = 1
	})

	g.Step(frame())

	if g.polluters.Count() != 1 {
		t.Fatalf("a polluter should respawn, got %d", g.polluters.Count())
	}
	p := g.polluters.Polluters()[0]
	if !g.world.Free(p.Box()) || p.Center().Dist(g.player.Center()) < spawnClearance {
		t.Errorf("respawn at illegal position %+v", p.Pos)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	start := g.player.Pos
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionDown))
	}
	if g.player.Pos != start || g.tickCount != 0 {
		t.Error("paused game should not advance")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestAutopilotCompletesLoop(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	addTrash(g, core.V(300, 300))
	addTrash(g, core.V(320, 500))
	addTrash(g, core.V(600, 200))

	for i := 0; i < 3000; i++ {
		in := g.Autopilot()
		in.Elapsed = tick
		g.Step(in)
		if g.treesPlanted > 0 {
			break
		}
	}

	if g.trashCollected != 3 {
		t.Errorf("autopilot should recycle all trash, collected %d", g.trashCollected)
	}
	if g.treesPlanted != 1 {
		t.Errorf("autopilot should plant a tree, planted %d", g.treesPlanted)
	}
}

func TestSummaryTracksRun(t *testing.T) {
	g := newTestGame(t, "meadow", quiet)
	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	g.xp = 7

	s := g.Summary()
	if s.Score != 7 || s.Ticks != 30 {
		t.Errorf("summary score=%d ticks=%d", s.Score, s.Ticks)
	}
	if s.Duration < 490*time.Millisecond || s.Duration > 510*time.Millisecond {
		t.Errorf("summary duration = %v, expected about 500ms", s.Duration)
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{"ecodefender", "ecodefender_city"} {
		if !registry.Exists(id) {
			t.Errorf("%s should be registered", id)
		}
	}
	g, err := registry.Create("ecodefender_city")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(registry.Summarizer); !ok {
		t.Error("game should report run summaries")
	}
	if _, ok := g.(registry.Autopilot); !ok {
		t.Error("game should provide an autopilot")
	}
}
