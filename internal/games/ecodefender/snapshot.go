package ecodefender

import "math"

// BoxState is a flattened entity box.
type BoxState struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PolluterState is a polluter position and velocity.
type PolluterState struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

// Snapshot contains the observable game state for the headless runner and
// determinism tests. Uses plain fields only for stable serialization.
type Snapshot struct {
	Game     string  `yaml:"game"`
	Map      string  `yaml:"map"`
	Tick     int     `yaml:"tick"`
	Elapsed  float64 `yaml:"elapsed_seconds"`
	GameOver bool    `yaml:"game_over"`

	PlayerX float64 `yaml:"player_x"`
	PlayerY float64 `yaml:"player_y"`
	Health  int     `yaml:"health"`
	Money   int     `yaml:"money"`
	Seeds   int     `yaml:"seeds"`
	Carried int     `yaml:"carried"`
	XP      int     `yaml:"xp"`

	TreesPlanted     int `yaml:"trees_planted"`
	TrashCollected   int `yaml:"trash_collected"`
	PollutersStopped int `yaml:"polluters_stopped"`

	Trash     []BoxState      `yaml:"trash"`
	Trees     []BoxState      `yaml:"trees"`
	Polluters []PolluterState `yaml:"polluters"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Game:     g.id,
		Map:      g.mapID,
		Tick:     g.tickCount,
		Elapsed:  g.elapsed,
		GameOver: g.gameOver,

		PlayerX: g.player.Pos.X,
		PlayerY: g.player.Pos.Y,
		Health:  g.health,
		Money:   g.money,
		Seeds:   g.seeds,
		Carried: g.carried,
		XP:      g.xp,

		TreesPlanted:     g.treesPlanted,
		TrashCollected:   g.trashCollected,
		PollutersStopped: g.pollutersStopped,
	}

	snap.Trash = make([]BoxState, 0, len(g.trash))
	for _, t := range g.trash {
		snap.Trash = append(snap.Trash, boxState(t))
	}
	if g.world != nil {
		snap.Trees = make([]BoxState, 0, len(g.world.Trees()))
		for _, t := range g.world.Trees() {
			snap.Trees = append(snap.Trees, boxState(t))
		}
	}
	if g.polluters != nil {
		snap.Polluters = make([]PolluterState, 0, g.polluters.Count())
		for _, p := range g.polluters.Polluters() {
			snap.Polluters = append(snap.Polluters, PolluterState{X: p.Pos.X, Y: p.Pos.Y, VX: p.Vel.X, VY: p.Vel.Y})
		}
	}
	return snap
}

func boxState(e Entity) BoxState {
	return BoxState{X: e.Pos.X, Y: e.Pos.Y, W: e.Size.X, H: e.Size.Y}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- tick count is never negative
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixI := func(i int) { mix(uint64(i)) } //#nosec G115 -- hash computation

	mixF(snap.PlayerX)
	mixF(snap.PlayerY)
	mixI(snap.Health)
	mixI(snap.Money)
	mixI(snap.Seeds)
	mixI(snap.Carried)
	mixI(snap.XP)
	for _, t := range snap.Trash {
		mixF(t.X)
		mixF(t.Y)
	}
	for _, t := range snap.Trees {
		mixF(t.X)
		mixF(t.Y)
	}
	for _, p := range snap.Polluters {
		mixF(p.X)
		mixF(p.Y)
		mixF(p.VX)
		mixF(p.VY)
	}
	if snap.GameOver {
		mix(1)
	}
	return h
}
