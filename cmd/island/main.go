// island is a terminal survival game: stay alive on a dinosaur island until
// the rescue boat arrives.
//
// Usage:
//
//	island list               - List available scenarios
//	island play [scenario]    - Play a scenario (or continue a save with --load)
//	island menu               - Start menu to pick scenarios and saves
//	island run [scenario]     - Run a headless simulation and print a summary
//	island saves              - List save slots
//	island scores [scenario]  - Show the best runs
//	island serve              - Start SSH server for remote play
//	island config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set render rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible islands
//	--db <path>          - Set database path (default: ~/.dino-island/island.db)
//	--config <path>      - Use a custom island YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "island",
	Short: "Dino Island - survive the island in your terminal",
	Long: `Dino Island is a real-time survival game played in the terminal.
Dinosaurs roam the island, lava pours from the volcano and a boat comes
after a few days. Stay alive and reach it.

Available commands:
  list     - Show all scenarios
  play     - Play a scenario directly
  menu     - Interactive scenario and save picker
  run      - Headless simulation
  saves    - Manage save slots
  scores   - View the best runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  island play
  island play arena --difficulty hard
  island play --load quick
  island run --seconds 300 --seed 42
  island serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dino-island/island.db", "Path to saves and runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom island config YAML (default $"+config.ConfigEnv+" or the search path)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.dino-island/island.log",
		"Log file for interactive commands (they own the terminal)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the island configuration and applies --seed.
func loadConfig() (config.IslandConfig, error) {
	cfg, err := config.LoadIsland(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	} else if cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// preset validates --difficulty.
func preset() (config.DifficultyPreset, error) {
	p := config.DifficultyPreset(flagDifficulty)
	switch p {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
}

// newLogger builds the command logger. Interactive commands log to
// --log-file since the TUI owns stdout and stderr. The returned closer
// releases the file.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if interactive {
		w = io.Discard
		if flagLogFile != "" {
			f, err := openLogFile(flagLogFile)
			if err != nil {
				return nil, nil, err
			}
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// runtimeConfig reads the terminal size for the TUI.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.FrameHz = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
