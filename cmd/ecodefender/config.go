package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/eco-defender/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Load the game configuration the same way a game does (--config path,
then ~/.ecodefender/configs/ecodefender.yaml, then ./configs/ecodefender.yaml,
then the built-in defaults), apply --difficulty, and print it as YAML.

The output is a complete config file and can be edited and passed back
with --config.

Examples:
  ecodefender config > my-ecodefender.yaml
  ecodefender config --difficulty hard
  ecodefender config --config ./my-ecodefender.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
