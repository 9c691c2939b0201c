package ecodefender

import (
	"math/rand"

	"github.com/vovakirdan/eco-defender/internal/config"
	"github.com/vovakirdan/eco-defender/internal/core"
)

// spawnAttempts bounds the search for a free spawn position.
const spawnAttempts = 20

// PolluterManager owns the roaming polluters and all simulation randomness.
type PolluterManager struct {
	polluters  []Entity
	rng        *rand.Rand
	cfg        *config.GameConfig
	difficulty *config.DifficultyManager
}

// NewPolluterManager creates a polluter manager with the given RNG seed.
func NewPolluterManager(seed int64, cfg *config.GameConfig, diff *config.DifficultyManager) *PolluterManager {
	return &PolluterManager{
		polluters:  make([]Entity, 0, 8),
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: diff,
	}
}

// Polluters returns the live polluters.
func (pm *PolluterManager) Polluters() []Entity {
	return pm.polluters
}

// Count returns the number of live polluters.
func (pm *PolluterManager) Count() int {
	return len(pm.polluters)
}

// Spawn places one polluter at a random free spot at least minDist away from
// the avoid box. It reports false when no spot was found.
func (pm *PolluterManager) Spawn(w *World, avoid core.Box, minDist float64, speed float64) bool {
	size := core.V(pm.cfg.Polluters.Size, pm.cfg.Polluters.Size)
	bounds := w.Bounds()
	for i := 0; i < spawnAttempts; i++ {
		pos := core.V(
			pm.rng.Float64()*(bounds.W-size.X),
			pm.rng.Float64()*(bounds.H-size.Y),
		)
		b := core.BoxAt(pos, size)
		if !w.Free(b) || b.Overlaps(avoid) || b.Center().Dist(avoid.Center()) < minDist {
			continue
		}
		p := newEntity(KindPolluter, pos, size)
		// New polluters start on a random diagonal.
		p.Vel = core.Direction(pm.sign(), pm.sign()).Scale(speed)
		pm.polluters = append(pm.polluters, p)
		return true
	}
	return false
}

// Update wanders and moves every polluter, then rolls for trash drops.
// It returns the positions where trash should appear; at most room drops
// are returned.
func (pm *PolluterManager) Update(dt float64, w *World, speed, trashChance float64, room int) []core.Vec2 {
	bounds := w.Bounds()
	obstacles := w.Obstacles()
	for i := range pm.polluters {
		p := &pm.polluters[i]
		p.wander += dt
		if p.wander > pm.cfg.Polluters.WanderSeconds {
			dir := core.Direction(pm.rng.Float64()*2-1, pm.rng.Float64()*2-1)
			p.Vel = dir.Scale(speed)
			p.wander = 0
		}
		p.Pos, p.Vel = core.Advance(p.Kind.Policy(), p.Pos, p.Size, p.Vel, dt, bounds, obstacles)
	}

	var drops []core.Vec2
	for _, p := range pm.polluters {
		if pm.rng.Float64() < trashChance && len(drops) < room {
			drops = append(drops, p.Pos)
		}
	}
	return drops
}

// Stop removes every polluter whose center is strictly within radius of
// center and returns how many were removed.
func (pm *PolluterManager) Stop(center core.Vec2, radius float64) int {
	kept := pm.polluters[:0]
	stopped := 0
	for _, p := range pm.polluters {
		if p.Center().Dist(center) < radius {
			stopped++
			continue
		}
		kept = append(kept, p)
	}
	pm.polluters = kept
	return stopped
}

// Touching returns how many polluters overlap b.
func (pm *PolluterManager) Touching(b core.Box) int {
	n := 0
	for _, p := range pm.polluters {
		if p.Box().Overlaps(b) {
			n++
		}
	}
	return n
}

// Roll returns true with probability chance.
func (pm *PolluterManager) Roll(chance float64) bool {
	return pm.rng.Float64() < chance
}

func (pm *PolluterManager) sign() float64 {
	if pm.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
