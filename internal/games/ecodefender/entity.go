package ecodefender

import "github.com/vovakirdan/eco-defender/internal/core"

// Kind tags the variant of an Entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindTrash
	KindPolluter
	KindBin
	KindVendor
	KindTree
	KindWall
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTrash:
		return "trash"
	case KindPolluter:
		return "polluter"
	case KindBin:
		return "bin"
	case KindVendor:
		return "vendor"
	case KindTree:
		return "tree"
	case KindWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Solid reports whether entities of this kind block movement.
func (k Kind) Solid() bool {
	switch k {
	case KindBin, KindVendor, KindTree, KindWall:
		return true
	default:
		return false
	}
}

// Policy returns the collision policy used when this kind moves.
// Only players and polluters move.
func (k Kind) Policy() core.CollisionPolicy {
	if k == KindPolluter {
		return core.PolicyBounce
	}
	return core.PolicyClamp
}

// Glyph and color used when rendering a kind.
func (k Kind) Glyph() (rune, core.Color) {
	switch k {
	case KindPlayer:
		return '@', core.ColorLime
	case KindTrash:
		return '░', core.ColorGray
	case KindPolluter:
		return '▓', core.ColorRed
	case KindBin:
		return '▣', core.ColorBlue
	case KindVendor:
		return '$', core.ColorBrown
	case KindTree:
		return '♣', core.ColorDarkGreen
	case KindWall:
		return '█', core.ColorWhite
	default:
		return '?', core.ColorDefault
	}
}

// Entity is a single object in the world. Position is the top-left corner.
type Entity struct {
	Kind Kind
	Pos  core.Vec2
	Size core.Vec2

	// Vel is in world units per second. Only polluters use it.
	Vel core.Vec2

	// wander counts seconds since the last direction change.
	wander float64
}

func newEntity(kind Kind, pos, size core.Vec2) Entity {
	return Entity{Kind: kind, Pos: pos, Size: size}
}

// Box returns the entity's bounding box.
func (e Entity) Box() core.Box {
	return core.BoxAt(e.Pos, e.Size)
}

// Center returns the center of the entity's box.
func (e Entity) Center() core.Vec2 {
	return e.Box().Center()
}

// Reaches reports whether o's center lies strictly within radius of e's center.
func (e Entity) Reaches(o Entity, radius float64) bool {
	return e.Center().Dist(o.Center()) < radius
}
