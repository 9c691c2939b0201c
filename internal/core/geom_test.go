package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{0, 0, 10, 10},
			b:        Box{5, 5, 10, 10},
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        Box{0, 0, 10, 10},
			b:        Box{15, 0, 10, 10},
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        Box{0, 0, 10, 10},
			b:        Box{0, 15, 10, 10},
			expected: false,
		},
		{
			name:     "touching edges horizontal",
			a:        Box{0, 0, 10, 10},
			b:        Box{10, 0, 10, 10},
			expected: false,
		},
		{
			name:     "touching edges vertical",
			a:        Box{0, 0, 10, 10},
			b:        Box{0, 10, 10, 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{0, 0, 20, 20},
			b:        Box{5, 5, 5, 5},
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        Box{0, 0, 10, 10},
			b:        Box{9.5, 9.5, 10, 10},
			expected: true,
		},
		{
			name:     "zero-width box inside another",
			a:        Box{0, 0, 20, 20},
			b:        Box{5, 5, 0, 5},
			expected: false,
		},
		{
			name:     "zero-size box inside another",
			a:        Box{0, 0, 20, 20},
			b:        Box{5, 5, 0, 0},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := BoxAt(V(5, 10), V(20, 15))

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", b.Bottom())
	}
	if c := b.Center(); c != V(15, 17.5) {
		t.Errorf("Center() = %v, expected (15, 17.5)", c)
	}
	if b.Pos() != V(5, 10) || b.Size() != V(20, 15) {
		t.Errorf("Pos/Size round trip failed: %v %v", b.Pos(), b.Size())
	}
}

func TestBoxWithin(t *testing.T) {
	bounds := Bounds{W: 100, H: 50}

	tests := []struct {
		name     string
		b        Box
		expected bool
	}{
		{"inside", Box{10, 10, 10, 10}, true},
		{"flush with far corner", Box{90, 40, 10, 10}, true},
		{"past right", Box{91, 10, 10, 10}, false},
		{"past bottom", Box{10, 41, 10, 10}, false},
		{"negative x", Box{-1, 10, 10, 10}, false},
		{"negative y", Box{10, -0.5, 10, 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.b.Within(bounds); got != tc.expected {
				t.Errorf("Within() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Y-0.8) > 1e-12 {
		t.Errorf("Normalize(3,4) = %v, expected (0.6, 0.8)", n)
	}

	if z := V(0, 0).Normalize(); !z.IsZero() {
		t.Errorf("Normalize of zero vector should stay zero, got %v", z)
	}
}

func TestVec2Dist(t *testing.T) {
	if d := V(1, 1).Dist(V(4, 5)); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{3, 0, -2, 0}, // inverted range: lower bound wins
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
