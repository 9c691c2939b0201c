package config

import (
	_ "embed"
)

//go:embed defaults/ecodefender.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in Eco Defender configuration.
// It mirrors defaults/ecodefender.yaml and is used when that fails to parse.
func DefaultConfig() GameConfig {
	return GameConfig{
		Player: PlayerConfig{
			Speed:        300,
			Size:         32,
			MaxHealth:    100,
			MaxInventory: 3,
		},
		Polluters: PolluterConfig{
			Initial:        3,
			Speed:          100,
			Size:           30,
			WanderSeconds:  2,
			TrashChance:    0.01, // ~once every 1.5s per polluter at 60fps
			MaxTrash:       50,
			RespawnChance:  0.005,
			ContactDamage:  10,
			DamageCooldown: 60, // 1 second at 60fps
		},
		Economy: EconomyConfig{
			TrashValue:    10,
			SeedCost:      20,
			PickupRadius:  50,
			StationRadius: 60,
			XPPerTrash:    1,
			XPPerTree:     2,
		},
		Combat: CombatConfig{
			AttackRadius: 60,
			XPPerKill:    5,
		},
		Sizes: SizeConfig{
			Trash:   16,
			Station: 40,
			TreeW:   20,
			TreeH:   40,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				TrashMultiplier: 1.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
