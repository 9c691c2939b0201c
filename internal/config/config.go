// Package config provides YAML-based game configuration loading and
// difficulty management for Eco Defender.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tunable parameters for Eco Defender.
// World geometry (walls, bin, vendor) lives in map files, not here.
type GameConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Polluters  PolluterConfig   `yaml:"polluters"`
	Economy    EconomyConfig    `yaml:"economy"`
	Combat     CombatConfig     `yaml:"combat"`
	Sizes      SizeConfig       `yaml:"sizes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the player-controlled entity.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"` // World units per second
	Size         float64 `yaml:"size"`
	MaxHealth    int     `yaml:"max_health"`
	MaxInventory int     `yaml:"max_inventory"` // Trash carried at once
}

// PolluterConfig defines the roaming enemies.
type PolluterConfig struct {
	Initial        int     `yaml:"initial"`
	Speed          float64 `yaml:"speed"`
	Size           float64 `yaml:"size"`
	WanderSeconds  float64 `yaml:"wander_seconds"`  // Time between direction changes
	TrashChance    float64 `yaml:"trash_chance"`    // Per polluter per tick
	MaxTrash       int     `yaml:"max_trash"`       // Trash on the ground at once
	RespawnChance  float64 `yaml:"respawn_chance"`  // Per tick when none are left
	ContactDamage  int     `yaml:"contact_damage"`
	DamageCooldown int     `yaml:"damage_cooldown"` // Ticks between hits
}

// EconomyConfig defines prices and interaction reach.
type EconomyConfig struct {
	TrashValue    int     `yaml:"trash_value"`
	SeedCost      int     `yaml:"seed_cost"`
	PickupRadius  float64 `yaml:"pickup_radius"`
	StationRadius float64 `yaml:"station_radius"` // Bin and vendor reach
	XPPerTrash    int     `yaml:"xp_per_trash"`
	XPPerTree     int     `yaml:"xp_per_tree"` // Awarded when a tree is planted
}

// CombatConfig defines the melee attack.
type CombatConfig struct {
	AttackRadius float64 `yaml:"attack_radius"`
	XPPerKill    int     `yaml:"xp_per_kill"`
}

// SizeConfig defines the fixed sizes of static entities.
type SizeConfig struct {
	Trash   float64 `yaml:"trash"`
	Station float64 `yaml:"station"` // Bin and vendor
	TreeW   float64 `yaml:"tree_w"`
	TreeH   float64 `yaml:"tree_h"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to polluter speed factor at max difficulty
	TrashMultiplier float64 `yaml:"trash_multiplier"` // Added to trash chance factor at max difficulty
}

// Validate reports every setting that would make the simulation ill-defined.
func (c GameConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("player.speed", c.Player.Speed)
	positive("player.size", c.Player.Size)
	positive("player.max_health", float64(c.Player.MaxHealth))
	positive("player.max_inventory", float64(c.Player.MaxInventory))
	positive("polluters.speed", c.Polluters.Speed)
	positive("polluters.size", c.Polluters.Size)
	positive("polluters.wander_seconds", c.Polluters.WanderSeconds)
	probability("polluters.trash_chance", c.Polluters.TrashChance)
	probability("polluters.respawn_chance", c.Polluters.RespawnChance)
	positive("sizes.trash", c.Sizes.Trash)
	positive("sizes.station", c.Sizes.Station)
	positive("sizes.tree_w", c.Sizes.TreeW)
	positive("sizes.tree_h", c.Sizes.TreeH)
	probability("difficulty.initial_level", c.Difficulty.InitialLevel)

	if c.Polluters.Initial < 0 {
		errs = append(errs, fmt.Errorf("polluters.initial must not be negative, got %d", c.Polluters.Initial))
	}
	if c.Economy.SeedCost < 0 || c.Economy.TrashValue < 0 {
		errs = append(errs, errors.New("economy prices must not be negative"))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown or empty strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 150
		cfg.Polluters.Initial = 2
	case DifficultyHard:
		cfg.Player.MaxHealth = 70
		cfg.Polluters.Initial = 5
	}
}
