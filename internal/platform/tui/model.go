package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/director"
	"github.com/vovakirdan/dino-island/internal/island"
	"github.com/vovakirdan/dino-island/internal/pacer"
	"github.com/vovakirdan/dino-island/internal/particles"
	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

// statusDuration is how long a status message stays in the footer.
const statusDuration = 3 * time.Second

// smoothSamples is the moving-average window for frame deltas.
const smoothSamples = 10

// GameOptions carries what a game model needs besides the running game.
type GameOptions struct {
	Scenario string
	Base     config.IslandConfig // configuration before the scenario is applied, for restarts
	Preset   config.DifficultyPreset
	Runtime  core.RuntimeConfig
	Store    *storage.Store // may be nil
	Logger   *log.Logger    // may be nil
}

// GameModel is the Bubble Tea model for one island game. Each render tick
// measures wall time, smooths it and feeds the pacer, which runs as many
// fixed simulation steps as the elapsed time allows.
type GameModel struct {
	game      *director.Director
	opts      GameOptions
	screen    *core.Screen
	pacer     *pacer.Pacer
	smoother  *pacer.Smoother
	particles *particles.Pool
	fxRNG     *core.RNG
	keys      KeyMap
	input     *KeyMapper
	help      help.Model
	log       *log.Logger

	last        time.Time
	paused      bool
	quitting    bool
	backToMenu  bool
	runSaved    bool
	status      string
	statusUntil time.Time
}

// NewGameModel wraps a running game.
func NewGameModel(game *director.Director, opts GameOptions) GameModel {
	if opts.Runtime.FrameHz <= 0 {
		opts.Runtime.FrameHz = 60
	}
	if opts.Runtime.SaveSlot == "" {
		opts.Runtime.SaveSlot = "quick"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := game.Session().Config()
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	return GameModel{
		game:      game,
		opts:      opts,
		screen:    core.NewScreen(opts.Runtime.ScreenW, max(1, opts.Runtime.ScreenH-1)),
		pacer:     pacer.New(cfg.Sim.TickRate, cfg.Sim.MaxCatchUp),
		smoother:  pacer.NewSmoother(smoothSamples),
		particles: particles.NewPool(cfg.Particles.Capacity),
		fxRNG:     core.NewRNG(time.Now().UnixNano()),
		keys:      keys,
		input:     NewKeyMapper(keys),
		help:      h,
		log:       logger,
	}
}

// Init starts the render tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.FrameHz)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		// The last row belongs to the help footer.
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	over := m.game.Session().Status() != island.StatusRunning

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordRun("quit")
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back) && (over || m.paused):
		m.recordRun("quit")
		m.backToMenu = true
		// A SessionModel intercepts this and shows its menu instead.
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		if !over {
			m.paused = !m.paused
			m.pacer.Reset()
			m.smoother.Reset()
			m.last = time.Time{}
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.quickSave(now)
		return m, nil

	case key.Matches(msg, m.keys.Restart) && over:
		m.restart(now)
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if !over && !m.paused {
		m.input.Press(msg, now)
	}
	return m, nil
}

// handleTick runs the simulation for the wall time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.last.IsZero() {
		m.last = now
	}
	delta := m.smoother.Smooth(now.Sub(m.last))
	m.last = now

	s := m.game.Session()
	if !m.paused && s.Status() == island.StatusRunning {
		frame := m.input.Frame(now)
		m.pacer.Advance(delta, func() {
			res := m.game.Step(frame)
			emitEffects(m.particles, m.fxRNG, res.Events, res.Tick)
			// One-shot actions apply to the first step only.
			m.input.Consume()
			frame = m.input.Frame(now)
		})
	}
	m.particles.Update(delta.Seconds())

	switch s.Status() {
	case island.StatusWon:
		m.recordRun("won")
	case island.StatusLost:
		m.recordRun("lost")
	}

	return m, tickCmd(m.opts.Runtime.FrameHz)
}

// recordRun stores the finished game once.
func (m *GameModel) recordRun(outcome string) {
	if m.runSaved {
		return
	}
	m.runSaved = true
	s := m.game.Session()
	if m.opts.Store == nil || s.Tick() == 0 {
		return
	}
	run := storage.RunEntry{
		Scenario:     m.opts.Scenario,
		Outcome:      outcome,
		SurvivedSecs: s.Clock(),
		Score:        s.Player().Player.Score,
		Seed:         s.Config().Sim.Seed,
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.log.Warn("could not record run", "error", err)
	}
}

func (m *GameModel) quickSave(now time.Time) {
	if m.opts.Store == nil {
		m.setStatus("no save database", now)
		return
	}
	data, err := m.game.Save()
	if err != nil {
		m.log.Error("save failed", "error", err)
		m.setStatus("save failed", now)
		return
	}
	slot := m.opts.Runtime.SaveSlot
	if err := m.opts.Store.SaveSlot(slot, director.SaveVersion, m.game.Session().Tick(), data); err != nil {
		m.log.Error("save failed", "slot", slot, "error", err)
		m.setStatus("save failed", now)
		return
	}
	m.log.Info("game saved", "slot", slot, "tick", m.game.Session().Tick(), "bytes", len(data))
	m.setStatus(fmt.Sprintf("saved to slot %q", slot), now)
}

func (m *GameModel) restart(now time.Time) {
	base := m.opts.Base
	base.Sim.Seed = now.UnixNano()
	game, err := registry.Create(m.opts.Scenario, base, m.opts.Preset, m.opts.Logger)
	if err != nil {
		m.log.Error("restart failed", "error", err)
		m.setStatus("restart failed", now)
		return
	}
	m.game = game
	m.runSaved = false
	m.paused = false
	m.last = time.Time{}
	m.pacer.Reset()
	m.smoother.Reset()
	m.particles.Clear()
	m.input.Reset()
}

func (m *GameModel) setStatus(msg string, now time.Time) {
	m.status = msg
	m.statusUntil = now.Add(statusDuration)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	snap := m.game.Session().Snapshot()
	renderWorld(m.screen, View{
		Snap:      snap,
		World:     m.game.World(),
		TileSize:  m.game.Session().Config().Sim.TileSize,
		Particles: m.particles,
		NextLava:  m.game.NextLavaWave(),
	})

	switch {
	case snap.Status == island.StatusWon:
		drawOverlay(m.screen, []string{
			"RESCUED!",
			fmt.Sprintf("survived %s  score %d", clockString(snap.Clock), snap.Player.Score),
			"r: play again   esc: menu   q: quit",
		}, core.ColorBrightGreen)
	case snap.Status == island.StatusLost:
		drawOverlay(m.screen, []string{
			"EATEN",
			fmt.Sprintf("survived %s  score %d", clockString(snap.Clock), snap.Player.Score),
			"r: try again   esc: menu   q: quit",
		}, core.ColorBrightRed)
	case m.paused:
		drawOverlay(m.screen, []string{"PAUSED", "p: resume   esc: menu"}, core.ColorBrightYellow)
	}

	footer := m.help.View(m.keys)
	if m.status != "" && time.Now().Before(m.statusUntil) {
		footer = m.status
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Game returns the running game.
func (m GameModel) Game() *director.Director {
	return m.game
}

// RunGame runs a single game in the local terminal. It reports whether the
// player left for the menu rather than quitting.
func RunGame(game *director.Director, opts GameOptions) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(game, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
