package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/registry"
)

var flagConfigScenario string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the island configuration as YAML after the config file, the
scenario and the difficulty preset were applied. The output is a valid
config file.

Examples:
  island config > ~/.dino-island/configs/island.yaml
  island config --scenario arena --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigScenario, "scenario", "", "Apply this scenario before printing")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadIsland(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagConfigScenario != "" {
		if cfg, err = registry.Configure(flagConfigScenario, cfg); err != nil {
			return err
		}
	}
	p, err := preset()
	if err != nil {
		return err
	}
	config.ApplyIslandPreset(&cfg, p)

	warnings, err := cfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
