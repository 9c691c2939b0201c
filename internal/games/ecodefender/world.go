package ecodefender

import "github.com/vovakirdan/eco-defender/internal/core"

// World holds the static layout of a running game: walls, the two stations
// and every tree planted so far. Its obstacle list is rebuilt whenever a
// static is added, never while an entity is being resolved.
type World struct {
	layout    *Map
	bounds    core.Bounds
	bin       Entity
	vendor    Entity
	walls     []Entity
	trees     []Entity
	obstacles []core.Box
}

// NewWorld builds the static entities of a map.
func NewWorld(m *Map, stationSize float64) *World {
	station := core.V(stationSize, stationSize)
	w := &World{
		layout: m,
		bounds: m.Bounds(),
		bin:    newEntity(KindBin, m.Bin.Vec(), station),
		vendor: newEntity(KindVendor, m.Vendor.Vec(), station),
		walls:  make([]Entity, 0, len(m.Walls)),
	}
	for _, spec := range m.Walls {
		b := spec.Box()
		w.walls = append(w.walls, newEntity(KindWall, b.Pos(), b.Size()))
	}
	w.rebuild()
	return w
}

// Bounds returns the world bounds.
func (w *World) Bounds() core.Bounds {
	return w.bounds
}

// Obstacles returns the current solid boxes. Callers must not modify it.
func (w *World) Obstacles() []core.Box {
	return w.obstacles
}

// Bin returns the recycling bin.
func (w *World) Bin() Entity {
	return w.bin
}

// Vendor returns the seed vendor.
func (w *World) Vendor() Entity {
	return w.vendor
}

// Walls returns the map walls.
func (w *World) Walls() []Entity {
	return w.walls
}

// Trees returns the planted trees in planting order.
func (w *World) Trees() []Entity {
	return w.trees
}

// Free reports whether b lies inside the world without touching any obstacle.
func (w *World) Free(b core.Box) bool {
	if !b.Within(w.bounds) {
		return false
	}
	for _, o := range w.obstacles {
		if b.Overlaps(o) {
			return false
		}
	}
	return true
}

// AddTree turns a tree into a permanent obstacle.
func (w *World) AddTree(t Entity) {
	w.trees = append(w.trees, t)
	w.rebuild()
}

func (w *World) rebuild() {
	obs := make([]core.Box, 0, 2+len(w.walls)+len(w.trees))
	obs = append(obs, w.bin.Box(), w.vendor.Box())
	for _, e := range w.walls {
		obs = append(obs, e.Box())
	}
	for _, e := range w.trees {
		obs = append(obs, e.Box())
	}
	w.obstacles = obs
}
