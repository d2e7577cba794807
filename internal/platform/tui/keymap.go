package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-island/internal/core"
)

// holdWindow is how long a direction key counts as held after its last
// press. Terminals only report presses and auto-repeats, never releases.
const holdWindow = 150 * time.Millisecond

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Repellent key.Binding
	Potion    key.Binding
	Pause     key.Binding
	Save      key.Binding
	Restart   key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Repellent, k.Potion, k.Pause, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Repellent, k.Potion},
		{k.Pause, k.Save, k.Restart},
		{k.Back, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "move right"),
		),
		Repellent: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "repellent"),
		),
		Potion: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "potion"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to simulation actions.
// Direction keys are buffered as held for holdWindow; item keys are
// one-shot and survive until the next simulation step consumes them.
type KeyMapper struct {
	keys    KeyMap
	held    map[core.Action]time.Time
	pending core.InputFrame
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{
		keys:    keys,
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// MapKey returns the simulation action bound to msg, or ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight
	case key.Matches(msg, km.keys.Repellent):
		return core.ActionUseRepellent
	case key.Matches(msg, km.keys.Potion):
		return core.ActionUsePotion
	}
	return core.ActionNone
}

// Press records a key press at now. Returns false if the key is not a
// simulation action.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) bool {
	action := km.MapKey(msg)
	switch action {
	case core.ActionNone:
		return false
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		km.held[action] = now
		// Opposite directions cancel; the latest press wins.
		delete(km.held, opposite(action))
	default:
		km.pending.Set(action)
	}
	return true
}

// Frame builds the input for the next simulation step at now.
func (km *KeyMapper) Frame(now time.Time) core.InputFrame {
	frame := km.pending.Clone()
	for action, at := range km.held {
		if now.Sub(at) <= holdWindow {
			frame.Set(action)
		} else {
			delete(km.held, action)
		}
	}
	return frame
}

// Consume drops the one-shot actions after a step used them.
func (km *KeyMapper) Consume() {
	km.pending.Clear()
}

// Reset forgets all held and pending input.
func (km *KeyMapper) Reset() {
	clear(km.held)
	km.pending.Clear()
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionPrevPreset
	MenuActionNextPreset
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "a", "left", "h":
		return MenuActionPrevPreset
	case "d", "right", "l":
		return MenuActionNextPreset
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
