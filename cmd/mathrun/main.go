// mathrun is a terminal platformer where every death is settled by an
// arithmetic question.
//
// Usage:
//
//	mathrun list              - List play modes
//	mathrun play [mode]       - Start a run directly
//	mathrun menu              - Start menu with name entry and mode pick
//	mathrun serve             - Start SSH server for remote play
//	mathrun scores [mode]     - Show the best runs of a mode
//	mathrun levels            - Print a summary of a generated campaign
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set database path (default: ~/.mathrun/mathrun.db)
//	--config <path>       - Use a custom platformer.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log [path]          - Write a session log (default: ~/.mathrun/mathrun.log)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mathrun/internal/core"
	"github.com/vovakirdan/mathrun/internal/games/platformer"
	"github.com/vovakirdan/mathrun/internal/platform/tui"
	"github.com/vovakirdan/mathrun/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLog        string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mathrun",
	Short: "Math Run - a terminal platformer with a quiz for every death",
	Long: `Math Run is a side-scrolling platformer played in the terminal.
Falling into a pit or touching a hazard or an enemy opens an arithmetic
question: answer it and you respawn at your last checkpoint, miss it and
the level starts over.

Available commands:
  list     - Show the play modes
  play     - Start a run directly
  menu     - Name entry and mode picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  levels   - Inspect a generated campaign

Examples:
  mathrun menu
  mathrun play practice --difficulty easy
  mathrun play --config ./platformer.yaml --watch
  mathrun serve --ssh :2222
  mathrun levels --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom platformer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "Write a session log to this file")
	rootCmd.PersistentFlags().Lookup("log").NoOptDefVal = tui.DefaultLogPath
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Session log level: debug, info, warn")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// applyGameFlags hands --config and --difficulty to the platformer before games are created.
func applyGameFlags() {
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openLogger opens the session log when --log is set.
// The returned func closes the log file and is always safe to call.
func openLogger() (*log.Logger, func()) {
	if flagLog == "" {
		return nil, func() {}
	}
	logger, f, err := tui.OpenEventLog(flagLog, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil, func() {}
	}
	return logger, func() {
		f.Close() //nolint:errcheck // Best effort on exit
	}
}

// openStore opens the runs database, or returns nil so the game runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}
