package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/platform/tui"
	"github.com/vovakirdan/mathrun/internal/registry"
)

var (
	flagName  string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play [classic|practice]",
	Short: "Start a run",
	Long: `Start a run in the given mode (classic if omitted).

Modes:
  classic  - Timed quiz, a wrong answer costs points
  practice - Untimed quiz, no penalty

Controls:
  A/D, Left/Right - Run
  Space/W/Up      - Jump
  1-4             - Answer the quiz
  P               - Pause
  Esc/B           - Leave the run
  Q/Ctrl+C        - Quit
  Ctrl+S          - Save a screenshot

Difficulty options:
  easy   - Sparse levels, 30 s to answer
  normal - Denser start
  hard   - Dense levels, 12 s to answer, heavier penalty

Examples:
  mathrun play
  mathrun play practice --name ada
  mathrun play --difficulty hard --seed 7
  mathrun play --config ./platformer.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name stored with the run")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload physics and camera tuning when the config file changes")
}

// gameIDForMode maps a mode name to the registered game ID.
func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "", "classic", "mathrun":
		return "mathrun", nil
	case "practice", "mathrun_practice":
		return "mathrun_practice", nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

func runPlay(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil || !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'mathrun list' to see available modes.")
		os.Exit(1)
	}

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	cfg.PlayerName = flagName

	logger, closeLog := openLogger()
	defer closeLog()

	opts := tui.ModelOptions{Logger: logger}
	if flagWatch {
		watcher, watchErr := config.NewWatcher(config.ResolvePath(flagConfig))
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: config reload disabled: %v\n", watchErr)
		} else {
			defer watcher.Close() //nolint:errcheck // Best effort on exit
			opts.Watcher = watcher
		}
	}

	// Open run storage
	store := openStore()

	// Run the game
	runErr := tui.Run(game, store, cfg, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
