package core

// CollisionPolicy selects how an entity reacts when a move would collide.
type CollisionPolicy int

const (
	// PolicyClamp rejects the blocked axis and clamps to world bounds.
	PolicyClamp CollisionPolicy = iota
	// PolicyBounce holds position for the tick and inverts velocity.
	PolicyBounce
)

// String returns a human-readable name for the policy.
func (p CollisionPolicy) String() string {
	switch p {
	case PolicyClamp:
		return "clamp"
	case PolicyBounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// Direction turns raw per-axis input into a unit vector so diagonal
// movement is as fast as axial movement. Zero input stays zero.
func Direction(dx, dy float64) Vec2 {
	return Vec2{X: dx, Y: dy}.Normalize()
}

// Displacement scales a direction by speed (units per second) and elapsed seconds.
func Displacement(dir Vec2, speed, dt float64) Vec2 {
	return dir.Scale(speed * dt)
}

// Resolve moves a box of the given size from pos by delta, one axis at a time.
//
// Each axis is clamped into bounds and then probed against every obstacle;
// an overlapping probe rejects that axis only. X is resolved first and the
// Y probe uses the resulting X, which lets an entity slide along a wall.
// A fully blocked move returns pos unchanged.
func Resolve(pos, size, delta Vec2, bounds Bounds, obstacles []Box) Vec2 {
	out := pos

	if delta.X != 0 {
		x := ClampF(pos.X+delta.X, 0, bounds.W-size.X)
		if !hitsAny(Box{X: x, Y: out.Y, W: size.X, H: size.Y}, obstacles) {
			out.X = x
		}
	}

	if delta.Y != 0 {
		y := ClampF(pos.Y+delta.Y, 0, bounds.H-size.Y)
		if !hitsAny(Box{X: out.X, Y: y, W: size.X, H: size.Y}, obstacles) {
			out.Y = y
		}
	}

	return out
}

// Bounce advances pos by vel*dt. If the candidate box would leave bounds or
// overlap an obstacle, the position is held and both velocity components are
// inverted for the next tick.
func Bounce(pos, size, vel Vec2, dt float64, bounds Bounds, obstacles []Box) (Vec2, Vec2) {
	next := pos.Add(vel.Scale(dt))
	probe := BoxAt(next, size)
	if !probe.Within(bounds) || hitsAny(probe, obstacles) {
		return pos, vel.Neg()
	}
	return next, vel
}

// Advance moves an entity according to its collision policy.
// For PolicyClamp the velocity is returned unchanged.
func Advance(policy CollisionPolicy, pos, size, vel Vec2, dt float64, bounds Bounds, obstacles []Box) (Vec2, Vec2) {
	if policy == PolicyBounce {
		return Bounce(pos, size, vel, dt, bounds, obstacles)
	}
	return Resolve(pos, size, vel.Scale(dt), bounds, obstacles), vel
}

func hitsAny(b Box, obstacles []Box) bool {
	for _, o := range obstacles {
		if b.Overlaps(o) {
			return true
		}
	}
	return false
}
