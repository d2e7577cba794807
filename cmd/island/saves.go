package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `List the saved games in the database.

Examples:
  island saves
  island saves rm quick`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var savesRmCmd = &cobra.Command{
	Use:   "rm <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesRm,
}

func init() {
	savesCmd.AddCommand(savesRmCmd)
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	saves, err := store.ListSlots()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		fmt.Println()
		fmt.Println("Press Ctrl+S while playing to save.")
		return nil
	}

	maxSlotLen := 4
	for _, sv := range saves {
		maxSlotLen = max(maxSlotLen, len(sv.Slot))
	}

	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxSlotLen, "Slot", "Tick", "Size", "Saved")
	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxSlotLen, "----", "----", "----", "-----")
	for _, sv := range saves {
		fmt.Printf("  %-*s  %-8d  %-8s  %s\n", maxSlotLen, sv.Slot, sv.Tick,
			byteSize(sv.Size), sv.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'island play --load <slot>' to continue.")
	return nil
}

func runSavesRm(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSlot(args[0]); err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return fmt.Errorf("no save slot %q", args[0])
		}
		return err
	}
	fmt.Printf("Deleted slot %q\n", args[0])
	return nil
}

func byteSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fK", float64(n)/1024)
}
