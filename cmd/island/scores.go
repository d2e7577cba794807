package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/registry"
	"github.com/vovakirdan/dino-island/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [scenario]",
	Short: "Show the best runs",
	Long: `Display the best runs for a scenario (default: island), ranked by score
and then by time survived.

Examples:
  island scores
  island scores arena --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	scenario := registry.DefaultScenario
	if len(args) == 1 {
		scenario = args[0]
	}
	if !registry.Exists(scenario) {
		return fmt.Errorf("unknown scenario %q (run 'island list' to see them)", scenario)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(scenario, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", scenario)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'island play %s' to set the first record!\n", scenario)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-8s  %-7s  %s\n", "Rank", "Score", "Survived", "Outcome", "Date")
	fmt.Printf("  %-4s  %-7s  %-8s  %-7s  %s\n", "----", "-----", "--------", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-8s  %-7s  %s\n", i+1, r.Score, formatSecs(r.SurvivedSecs),
			r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(scenario); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Rescued: %d  Best: %d  Longest: %s  Average: %s\n",
			stats.Runs, stats.Wins, stats.BestScore, formatSecs(stats.LongestSecs), formatSecs(stats.AvgSurvived))
	}
	return nil
}

func formatSecs(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
