package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eco-defender/internal/platform/tui"
	"github.com/vovakirdan/eco-defender/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a map",
	Long: `Start playing the specified map (default: ecodefender).

Controls:
  WASD/Arrows  - Move
  F/E          - Interact (pick up, recycle, buy seed, plant)
  Space/Click  - Attack nearby polluters
  P            - Pause
  Esc/B        - Pause, or back when paused or game over
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  ecodefender play
  ecodefender play ecodefender_city
  ecodefender play --difficulty hard
  ecodefender play --config ./my-ecodefender.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Open score storage
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	// Run the game
	if _, err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
