package ecodefender

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/eco-defender/internal/core"
)

//go:embed maps/*.yaml
var mapFiles embed.FS

// Point is a top-left anchor in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec returns the point as a core vector.
func (p Point) Vec() core.Vec2 {
	return core.V(p.X, p.Y)
}

// WallSpec describes one wall rectangle in a map file.
type WallSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Box returns the wall as a collision box.
func (w WallSpec) Box() core.Box {
	return core.Box{X: w.X, Y: w.Y, W: w.W, H: w.H}
}

// Map is a static world layout.
type Map struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	PlayerStart Point      `yaml:"player_start"`
	Bin         Point      `yaml:"bin"`
	Vendor      Point      `yaml:"vendor"`
	Walls       []WallSpec `yaml:"walls"`

	// ExtraPolluters is added to polluters.initial from the game config.
	ExtraPolluters int `yaml:"extra_polluters,omitempty"`
}

// Bounds returns the world bounds of the map.
func (m *Map) Bounds() core.Bounds {
	return core.Bounds{W: m.Width, H: m.Height}
}

// Validate checks that the layout is playable with the given sizes:
// everything lies inside the world, stations and walls do not overlap,
// and the player does not start inside an obstacle.
func (m *Map) Validate(playerSize, stationSize float64) error {
	if m.ID == "" {
		return errors.New("map id is required")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map %s: world size must be positive", m.ID)
	}
	if m.ExtraPolluters < 0 {
		return fmt.Errorf("map %s: extra_polluters must not be negative", m.ID)
	}

	type namedBox struct {
		name string
		box  core.Box
	}

	bounds := m.Bounds()
	station := core.V(stationSize, stationSize)
	named := []namedBox{
		{"bin", core.BoxAt(m.Bin.Vec(), station)},
		{"vendor", core.BoxAt(m.Vendor.Vec(), station)},
	}
	for i, w := range m.Walls {
		if w.W <= 0 || w.H <= 0 {
			return fmt.Errorf("map %s: wall %d has no area", m.ID, i)
		}
		named = append(named, namedBox{fmt.Sprintf("wall %d", i), w.Box()})
	}

	for _, n := range named {
		if !n.box.Within(bounds) {
			return fmt.Errorf("map %s: %s lies outside the world", m.ID, n.name)
		}
	}
	// Walls may overlap each other; the two stations may not overlap anything.
	for i := 0; i < 2; i++ {
		for j := i + 1; j < len(named); j++ {
			if named[i].box.Overlaps(named[j].box) {
				return fmt.Errorf("map %s: %s overlaps %s", m.ID, named[i].name, named[j].name)
			}
		}
	}

	player := core.BoxAt(m.PlayerStart.Vec(), core.V(playerSize, playerSize))
	if !player.Within(bounds) {
		return fmt.Errorf("map %s: player start lies outside the world", m.ID)
	}
	for _, n := range named {
		if player.Overlaps(n.box) {
			return fmt.Errorf("map %s: player starts inside %s", m.ID, n.name)
		}
	}
	return nil
}

// ParseMap decodes a YAML map definition.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadMap loads a built-in map by ID.
func LoadMap(id string) (*Map, error) {
	data, err := mapFiles.ReadFile(path.Join("maps", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown map %q: %w", id, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", id, err)
	}
	return m, nil
}

// MapIDs lists the built-in maps in sorted order.
func MapIDs() []string {
	entries, err := mapFiles.ReadDir("maps")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if ext := path.Ext(e.Name()); ext == ".yaml" {
			ids = append(ids, e.Name()[:len(e.Name())-len(ext)])
		}
	}
	sort.Strings(ids)
	return ids
}
