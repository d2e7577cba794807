package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/director"
	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.dino-island/host_key.
	HostKeyPath string

	// DBPath is the path to the saves and runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Island is the base simulation configuration for every session.
	Island config.IslandConfig

	// Preset is the difficulty preselected in the menu.
	Preset config.DifficultyPreset

	// FrameHz is the render rate of each session.
	FrameHz int

	// Logger may be nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.dino-island/island.db",
		IdleTimeout: 30 * time.Minute,
		Island:      config.DefaultIslandConfig(),
		Preset:      config.DifficultyNormal,
		FrameHz:     30,
	}
}

// SSHServer wraps a Wish SSH server that hosts one island per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "island-ssh",
		})
	} else {
		logger = logger.WithPrefix("island-ssh")
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".dino-island", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.DefaultConfig()
	rt.ScreenW = pty.Window.Width
	rt.ScreenH = pty.Window.Height
	if s.config.FrameHz > 0 {
		rt.FrameHz = s.config.FrameHz
	}
	// Each user gets their own quick-save slot.
	rt.SaveSlot = "ssh-" + sshSession.User()

	model := NewSessionModel(SessionOptions{
		Store:   s.store,
		Runtime: rt,
		Base:    s.config.Island,
		Preset:  s.config.Preset,
		Logger:  s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store   *storage.Store // may be nil
	Runtime core.RuntimeConfig
	Base    config.IslandConfig
	Preset  config.DifficultyPreset
	Logger  *log.Logger
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow of one connection:
// menu -> game or scoreboard -> menu.
type SessionModel struct {
	opts       SessionOptions
	screen     screenKind
	menu       MenuModel
	game       *GameModel
	scoreboard ScoreboardModel
	quitting   bool
	err        string
}

// NewSessionModel creates a new session model that starts in the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Store, opts.Runtime, opts.Preset),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m *SessionModel) enterGame(game *director.Director) {
	gm := NewGameModel(game, GameOptions{
		Scenario: game.Scenario(),
		Base:     m.opts.Base,
		Preset:   game.Preset(),
		Runtime:  m.opts.Runtime,
		Store:    m.opts.Store,
		Logger:   m.opts.Logger,
	})
	m.game = &gm
	m.screen = screenGame
	m.err = ""
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	// The menu quits its own program when a choice is made; inside a
	// session that would end the connection.
	if m.menu.choice == choosing {
		return m, filterQuit(cmd)
	}
	res := m.menu.result()

	switch {
	case res.Quit:
		m.quitting = true
		return m, tea.Quit

	case res.WantsScoreboard:
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.scoreboard.Init()
	}

	game, err := m.startGame(res)
	if err != nil {
		m.opts.Logger.Error("could not start game", "error", err)
		m.err = err.Error()
		m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime, res.Preset)
		return m, nil
	}
	m.opts.Preset = res.Preset
	m.enterGame(game)
	return m, m.game.Init()
}

// startGame starts a new game or loads the chosen save.
func (m SessionModel) startGame(res MenuResult) (*director.Director, error) {
	if res.Slot != "" {
		if m.opts.Store == nil {
			return nil, errors.New("no save database")
		}
		sv, err := m.opts.Store.LoadSlot(res.Slot)
		if err != nil {
			return nil, err
		}
		return registry.Load(sv.Data, m.opts.Base, m.opts.Logger)
	}
	base := m.opts.Base
	base.Sim.Seed = time.Now().UnixNano()
	return registry.Create(res.Scenario, base, res.Preset, m.opts.Logger)
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, filterQuit(cmd)
}

func (m *SessionModel) toMenu() {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime, m.opts.Preset)
}

// filterQuit drops a tea.Quit command coming from an embedded screen.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	if m.err != "" {
		return m.menu.View() + "\n" + centerText("error: "+m.err, m.opts.Runtime.ScreenW)
	}
	return m.menu.View()
}
