package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

// runsPerScenario caps how many runs are fetched for one scenario.
const runsPerScenario = 100

// outcomeFilter narrows the table to one kind of run.
type outcomeFilter int

const (
	showAll outcomeFilter = iota
	showRescued
	showEaten
)

func (f outcomeFilter) String() string {
	switch f {
	case showRescued:
		return "rescued"
	case showEaten:
		return "eaten"
	}
	return "all"
}

func (f outcomeFilter) keep(r storage.RunEntry) bool {
	switch f {
	case showRescued:
		return r.Outcome == "won"
	case showEaten:
		return r.Outcome == "lost"
	}
	return true
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// BoardKeys are the scoreboard bindings.
type BoardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k BoardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Filter, k.Back, k.Quit}
}

func (k BoardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

func defaultBoardKeys() BoardKeys {
	return BoardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next island")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev island")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best recorded runs per scenario.
type ScoreboardModel struct {
	store     *storage.Store // may be nil
	scenarios []registry.ScenarioInfo
	current   int
	filter    outcomeFilter

	all   []storage.RunEntry
	shown []storage.RunEntry
	stats storage.ScenarioStats

	table  table.Model
	help   help.Model
	keys   BoardKeys
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the board on the first scenario.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:     store,
		scenarios: registry.List(),
		help:      help.New(),
		keys:      defaultBoardKeys(),
		width:     width,
		height:    height,
	}
	m.table = newRunsTable(width, height)
	m.reload()
	return m
}

func newRunsTable(width, height int) table.Model {
	dateW := 12
	if width > 70 {
		dateW = min(width-58, 20)
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 6},
			{Title: "Outcome", Width: 8},
			{Title: "Seed", Width: 12},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) scenarioID() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.current].ID
}

// reload fetches runs and totals for the current scenario.
func (m *ScoreboardModel) reload() {
	m.all, m.stats = nil, storage.ScenarioStats{}
	if id := m.scenarioID(); m.store != nil && id != "" {
		if runs, err := m.store.TopRuns(id, runsPerScenario); err == nil {
			m.all = runs
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = *stats
		}
	}
	m.applyFilter()
}

func (m *ScoreboardModel) applyFilter() {
	m.shown = nil
	for _, r := range m.all {
		if m.filter.keep(r) {
			m.shown = append(m.shown, r)
		}
	}
	rows := make([]table.Row, len(m.shown))
	for i, r := range m.shown {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			clockString(r.SurvivedSecs),
			r.Outcome,
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if n := len(m.scenarios); n > 0 {
		m.current = (m.current + delta + n) % n
		m.reload()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % 3
			m.applyFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newRunsTable(msg.Width, msg.Height)
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted run, if any.
func (m ScoreboardModel) Selected() (storage.RunEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.shown) {
		return storage.RunEntry{}, false
	}
	return m.shown[i], true
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText("BEST RUNS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabs()))
	b.WriteString("\n")

	line := fmt.Sprintf("showing: %s", m.filter)
	if m.stats.Runs > 0 {
		line = fmt.Sprintf("%d runs  %d rescued  best %d  longest %s  avg %s  |  %s",
			m.stats.Runs, m.stats.Wins, m.stats.BestScore,
			clockString(m.stats.LongestSecs), clockString(m.stats.AvgSurvived), line)
	}
	b.WriteString(helpStyle.Render(centerText(line, m.width)))
	b.WriteString("\n\n")

	if len(m.shown) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
			boxStyle.Render(emptyStyle.Render("Nothing here yet.\nGet off the island to set a record!"))))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.table.View())))
		if r, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(centerText(
				fmt.Sprintf("replay: island play %s --seed %d", r.Scenario, r.Seed), m.width)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the scenario switcher, collapsing to the current name when
// the row would not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	parts := make([]string, len(m.scenarios))
	plain := 0
	for i, sc := range m.scenarios {
		plain += len(sc.Title) + 3
		if i == m.current {
			parts[i] = activeTabStyle.Render(sc.Title)
		} else {
			parts[i] = tabStyle.Render(sc.Title)
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.scenarios[m.current].Title)
	}
	return strings.Join(parts, " ")
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the board in the local terminal and reports whether
// the player went back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
