package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/config"
	"github.com/vovakirdan/dino-island/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scenarios",
	Long: `Shows every registered scenario with the island it builds from the
current configuration and difficulty.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	scenarios := registry.List()
	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return nil
	}

	base, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := preset()
	if err != nil {
		return err
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "Title", "Map", "Dinos", "Boat", "Description")

	for _, sc := range scenarios {
		cfg, err := registry.Configure(sc.ID, base)
		if err != nil {
			return err
		}
		config.ApplyIslandPreset(&cfg, p)
		w := cfg.World
		t.Row(
			sc.ID,
			sc.Title,
			fmt.Sprintf("%dx%d", w.Width, w.Height),
			fmt.Sprintf("%d+%d", w.NormalCount, w.AggressiveCount),
			formatSecs(float64(w.BoatCycles)*w.CycleLength()),
			sc.Describe,
		)
	}

	fmt.Println(t)
	fmt.Println("Run 'island play <id>' to play a scenario.")
	return nil
}
