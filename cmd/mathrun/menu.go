package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathrun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the name entry and mode picker",
	Long: `Start Math Run in interactive menu mode.

Type your name, move down to the mode row and pick classic or practice
with Left/Right. Enter starts the run; after it ends you return to the
menu. Tab opens the scoreboard.

Controls:
  Up/Down     - Switch between name and mode
  Left/Right  - Change mode
  Enter       - Start
  Tab         - Scoreboard
  Esc/Ctrl+C  - Quit

Examples:
  mathrun menu
  mathrun menu --fps 30
  mathrun menu --db ./runs.db --log`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	applyGameFlags()

	logger, closeLog := openLogger()
	defer closeLog()

	store := openStore()
	err := tui.RunSession(store, runtimeConfig(), logger)

	// Cleanup
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
