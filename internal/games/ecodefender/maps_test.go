package ecodefender

import (
	"strings"
	"testing"

	"github.com/vovakirdan/eco-defender/internal/config"
)

func TestBuiltInMapsValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	ids := MapIDs()
	if len(ids) < 2 {
		t.Fatalf("expected at least two built-in maps, got %v", ids)
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			m, err := LoadMap(id)
			if err != nil {
				t.Fatalf("LoadMap(%q) failed: %v", id, err)
			}
			if m.ID != id {
				t.Errorf("map id %q does not match file name %q", m.ID, id)
			}
			if err := m.Validate(cfg.Player.Size, cfg.Sizes.Station); err != nil {
				t.Errorf("built-in map should validate: %v", err)
			}
		})
	}
}

func TestLoadMapUnknown(t *testing.T) {
	if _, err := LoadMap("swamp"); err == nil {
		t.Error("unknown map should be an error")
	}
}

func TestMapValidateRejects(t *testing.T) {
	base := func() *Map {
		return &Map{
			ID:          "test",
			Width:       400,
			Height:      300,
			PlayerStart: Point{X: 10, Y: 10},
			Bin:         Point{X: 100, Y: 10},
			Vendor:      Point{X: 200, Y: 10},
		}
	}

	tests := []struct {
		name   string
		mutate func(m *Map)
		want   string
	}{
		{"no id", func(m *Map) { m.ID = "" }, "id"},
		{"zero world", func(m *Map) { m.Width = 0 }, "world size"},
		{"station outside", func(m *Map) { m.Vendor = Point{X: 380, Y: 10} }, "vendor lies outside"},
		{"stations overlap", func(m *Map) { m.Vendor = Point{X: 120, Y: 20} }, "bin overlaps vendor"},
		{"wall on bin", func(m *Map) { m.Walls = []WallSpec{{X: 90, Y: 0, W: 20, H: 100}} }, "bin overlaps wall 0"},
		{"flat wall", func(m *Map) { m.Walls = []WallSpec{{X: 300, Y: 100, W: 0, H: 50}} }, "no area"},
		{"player in wall", func(m *Map) { m.Walls = []WallSpec{{X: 0, Y: 0, W: 20, H: 20}} }, "player starts inside wall 0"},
		{"player outside", func(m *Map) { m.PlayerStart = Point{X: 390, Y: 10} }, "player start"},
		{"negative extras", func(m *Map) { m.ExtraPolluters = -1 }, "extra_polluters"},
	}

	if err := base().Validate(32, 40); err != nil {
		t.Fatalf("base map should validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := base()
			tc.mutate(m)
			err := m.Validate(32, 40)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestParseMapWalls(t *testing.T) {
	data := []byte("id: tiny\nwidth: 100\nheight: 80\nwalls:\n  - {x: 10, y: 20, w: 30, h: 5}\n")
	m, err := ParseMap(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Walls) != 1 {
		t.Fatalf("walls = %d, expected 1", len(m.Walls))
	}
	b := m.Walls[0].Box()
	if b.X != 10 || b.Y != 20 || b.W != 30 || b.H != 5 {
		t.Errorf("wall box = %+v", b)
	}
}
