package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/director"
	"github.com/vovakirdan/dino-island/internal/platform/tui"
	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

var (
	flagLoad     string
	flagSaveSlot string
)

var playCmd = &cobra.Command{
	Use:   "play [scenario]",
	Short: "Play a scenario",
	Long: `Start playing the given scenario (default: island).

Controls:
  WASD/Arrows  - Move
  Space        - Use repellent
  E            - Drink potion
  P            - Pause
  Ctrl+S       - Save to the quick-save slot
  R            - Restart (after the game ends)
  Esc/B        - Back to menu (paused or after the game ends)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer hunters, more items, gentle lava
  normal - Lava ramps up from 30%
  hard   - More hunters, more lava from 70%
  fixed  - No progression, stays at config's initial level

Examples:
  island play
  island play arena
  island play --difficulty hard --seed 42
  island play --load quick`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Continue the game in this save slot")
	playCmd.Flags().StringVar(&flagSaveSlot, "save-slot", "quick", "Slot used by Ctrl+S")
}

func runPlay(_ *cobra.Command, args []string) error {
	scenario := registry.DefaultScenario
	if len(args) == 1 {
		scenario = args[0]
	}
	if !registry.Exists(scenario) {
		return fmt.Errorf("unknown scenario %q (run 'island list' to see them)", scenario)
	}

	h, err := newHost()
	if err != nil {
		return err
	}
	defer h.close()

	var game *director.Director
	if flagLoad != "" {
		game, err = h.load(flagLoad)
	} else {
		game, err = registry.Create(scenario, h.base, h.preset, h.logger)
	}
	if err != nil {
		return err
	}

	back, err := tui.RunGame(game, h.gameOptions(game))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if back {
		return h.menuLoop()
	}
	return nil
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scenario and save picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change the difficulty and
Enter to start. Saved games are listed below the scenarios. After a game
ends you return to the menu.

Examples:
  island menu
  island menu --fps 30
  island menu --db ./island.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		h, err := newHost()
		if err != nil {
			return err
		}
		defer h.close()
		return h.menuLoop()
	},
}

// host holds what the interactive commands share.
type host struct {
	base    config.IslandConfig
	preset  config.DifficultyPreset
	store   *storage.Store
	runtime core.RuntimeConfig
	logger  *log.Logger
	closeLg func()
}

func newHost() (*host, error) {
	base, err := loadConfig()
	if err != nil {
		return nil, err
	}
	p, err := preset()
	if err != nil {
		return nil, err
	}
	logger, closeLg, err := newLogger("island", true)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works; saves and runs are not recorded.
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "error", err)
		store = nil
	}

	rt := runtimeConfig()
	if flagSaveSlot != "" {
		rt.SaveSlot = flagSaveSlot
	}
	return &host{
		base:    base,
		preset:  p,
		store:   store,
		runtime: rt,
		logger:  logger,
		closeLg: closeLg,
	}, nil
}

func (h *host) close() {
	if h.store != nil {
		h.store.Close()
	}
	h.closeLg()
}

func (h *host) load(slot string) (*director.Director, error) {
	if h.store == nil {
		return nil, fmt.Errorf("cannot load %q: no database", slot)
	}
	sv, err := h.store.LoadSlot(slot)
	if err != nil {
		return nil, err
	}
	return registry.Load(sv.Data, h.base, h.logger)
}

func (h *host) gameOptions(game *director.Director) tui.GameOptions {
	return tui.GameOptions{
		Scenario: game.Scenario(),
		Base:     h.base,
		Preset:   game.Preset(),
		Runtime:  h.runtime,
		Store:    h.store,
		Logger:   h.logger,
	}
}

// menuLoop shows the menu until the player quits.
func (h *host) menuLoop() error {
	for {
		res, err := tui.RunMenu(h.store, h.runtime, h.preset)
		if err != nil {
			return err
		}
		h.runtime = res.Config
		h.preset = res.Preset

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(h.store, h.runtime.ScreenW, h.runtime.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		var game *director.Director
		if res.Slot != "" {
			game, err = h.load(res.Slot)
		} else {
			base := h.base
			// Every new game from the menu gets a fresh island.
			if flagSeed == 0 {
				base.Sim.Seed = time.Now().UnixNano()
			}
			game, err = registry.Create(res.Scenario, base, res.Preset, h.logger)
		}
		if err != nil {
			h.logger.Error("could not start game", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		back, err := tui.RunGame(game, h.gameOptions(game))
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
