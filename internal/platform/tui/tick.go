// Package tui provides the Bubble Tea host for the island: the render loop,
// input mapping, menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TickMsg is sent to trigger a render frame.
type TickMsg time.Time

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameHz int) tea.Cmd {
	interval := time.Second / time.Duration(frameHz)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
