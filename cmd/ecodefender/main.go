// ecodefender is a terminal game about cleaning up a polluted world.
//
// Usage:
//
//	ecodefender list              - List available maps
//	ecodefender play [game]       - Play a map (default: ecodefender)
//	ecodefender menu              - Start menu to pick maps interactively
//	ecodefender serve             - Start SSH server for remote play
//	ecodefender scores [game]     - Show best runs for a map
//	ecodefender sim [game]        - Run a game headless and print the result
//	ecodefender config            - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.ecodefender/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/eco-defender/internal/core"
	"github.com/vovakirdan/eco-defender/internal/games/ecodefender"
	"github.com/vovakirdan/eco-defender/internal/registry"
	"github.com/vovakirdan/eco-defender/internal/storage"
)

const defaultGame = "ecodefender"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecodefender",
	Short: "Eco Defender - clean up the world from your terminal",
	Long: `Eco Defender is a top-down terminal game. Collect trash, recycle it
at the bin for money, buy seeds from the vendor, plant trees and stop the
polluters before they wear you down.

Available commands:
  list     - Show all available maps
  play     - Play a map directly
  menu     - Interactive map picker menu
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Run a game headless
  config   - Print the effective configuration

Examples:
  ecodefender list
  ecodefender play
  ecodefender play ecodefender_city --difficulty hard
  ecodefender menu
  ecodefender serve --ssh :2222
  ecodefender sim --ticks 3600 --seed 42`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ecodefender/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger and hands the game options to the game package.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ecodefender",
		Level:           level,
	})

	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	ecodefender.SetConfigPath(flagConfig)
	ecodefender.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
// The game still works without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// gameArg returns the game id from args, defaulting to the meadow map.
func gameArg(args []string) (string, error) {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown game %q, run 'ecodefender list' to see available games", gameID)
	}
	return gameID, nil
}
