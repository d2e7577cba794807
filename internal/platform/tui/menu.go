package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/core"
	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

// menuSaves limits how many save slots the menu offers.
const menuSaves = 5

var presetCycle = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	logoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Underline(true)
	pickedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	chipOnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("208")).Padding(0, 1)
)

// menuChoice is what the player decided on the menu.
type menuChoice int

const (
	choosing menuChoice = iota
	choosePlay
	chooseScores
	chooseQuit
)

// entry is one selectable line: a new game of a scenario, or a save.
type entry struct {
	scenario registry.ScenarioInfo
	save     *storage.SaveInfo
}

func (e entry) label() string {
	if e.save != nil {
		return fmt.Sprintf("%s  (%s)", e.save.Slot, e.save.CreatedAt.Format("Jan 02 15:04"))
	}
	return e.scenario.Title
}

// MenuModel is the start screen: pick a scenario or a save and a difficulty.
type MenuModel struct {
	entries []entry
	newOnes int // entries[:newOnes] are scenarios, the rest saves
	cursor  int
	preset  int
	runtime core.RuntimeConfig
	choice  menuChoice
}

// NewMenuModel lists the registered scenarios and the most recent saves.
// store may be nil.
func NewMenuModel(store *storage.Store, rt core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	var entries []entry
	for _, sc := range registry.List() {
		entries = append(entries, entry{scenario: sc})
	}
	m := MenuModel{newOnes: len(entries), preset: 1, runtime: rt}

	if store != nil {
		if saves, err := store.ListSlots(); err == nil {
			for i := range saves[:min(len(saves), menuSaves)] {
				entries = append(entries, entry{save: &saves[i]})
			}
		}
	}
	m.entries = entries

	for i, p := range presetCycle {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.runtime.ScreenW, m.runtime.ScreenH = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(m.entries)
		switch MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(n-1, 0))
		case MenuActionPrevPreset:
			m.preset = (m.preset + len(presetCycle) - 1) % len(presetCycle)
		case MenuActionNextPreset:
			m.preset = (m.preset + 1) % len(presetCycle)
		case MenuActionSelect:
			if n > 0 {
				m.choice = choosePlay
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.choice = chooseScores
			return m, tea.Quit
		case MenuActionQuit:
			m.choice = chooseQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.choice == chooseQuit {
		return ""
	}
	w := m.runtime.ScreenW

	var b strings.Builder
	line := func(s string) {
		b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	line(logoStyle.Render("D I N O   I S L A N D"))
	line("Survive until the boat comes")
	b.WriteString("\n")

	for i, e := range m.entries {
		switch i {
		case 0:
			line(sectionStyle.Render("new game"))
		case m.newOnes:
			b.WriteString("\n")
			line(sectionStyle.Render("continue"))
		}
		if i == m.cursor {
			line(pickedStyle.Render("> " + e.label() + " <"))
		} else {
			line(e.label())
		}
	}

	b.WriteString("\n")
	if m.cursor < m.newOnes && m.cursor < len(m.entries) {
		line(helpStyle.Render(m.entries[m.cursor].scenario.Describe))
	} else {
		line(helpStyle.Render("resume where you saved"))
	}
	b.WriteString("\n")

	chips := make([]string, len(presetCycle))
	for i, p := range presetCycle {
		if i == m.preset {
			chips[i] = chipOnStyle.Render(string(p))
		} else {
			chips[i] = chipStyle.Render(string(p))
		}
	}
	line(lipgloss.JoinHorizontal(lipgloss.Center, chips...))
	b.WriteString("\n")
	line(helpStyle.Render("↑/↓ pick   ←/→ difficulty   enter play   tab scores   q quit"))
	return b.String()
}

// centerText pads plain text to sit in the middle of width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// MenuResult is what the menu hands back to its caller.
type MenuResult struct {
	Scenario        string // set for a new game
	Slot            string // set for a saved game
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.runtime, Preset: presetCycle[m.preset]}
	switch m.choice {
	case choosePlay:
		e := m.entries[m.cursor]
		if e.save != nil {
			r.Slot = e.save.Slot
		} else {
			r.Scenario = e.scenario.ID
		}
	case chooseScores:
		r.WantsScoreboard = true
	default:
		r.Quit = true
	}
	return r
}

// RunMenu shows the menu in the local terminal.
func RunMenu(store *storage.Store, rt core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, rt, preset), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: rt, Preset: preset}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: rt, Quit: true}, nil
	}
	return m.result(), nil
}
