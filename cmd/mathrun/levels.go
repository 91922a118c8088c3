package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathrun/internal/games/platformer"
)

var flagLevelCount int

var levelsCmd = &cobra.Command{
	Use:   "levels [classic|practice]",
	Short: "Print a summary of a generated campaign",
	Long: `Generate the campaign the game would play and print one line per level:
width, holes, platforms by kind, hazards, coins and enemies. Use it with
--seed, --config and --difficulty to tune the generator.

Examples:
  mathrun levels
  mathrun levels --seed 42 --count 5
  mathrun levels --difficulty hard --config ./platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelCount, "count", 0, "Number of levels (0 = config value)")
}

func runLevels(_ *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if _, err := gameIDForMode(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	applyGameFlags()
	cfg, err := platformer.LoadConfig(platformer.ParseMode(name))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	count := flagLevelCount
	if count <= 0 {
		count = cfg.Generator.Levels
	}

	gen := platformer.NewGenerator(cfg, rand.New(rand.NewSource(seed)))
	roster := platformer.NewRoster(gen, count)

	fmt.Printf("Campaign (seed %d, %d levels)\n", seed, roster.Count())
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-6s  %-5s  %-6s  %-6s  %-6s  %-6s  %-7s  %-5s  %s\n",
		"Level", "Theme", "Width", "Holes", "Static", "Moving", "Spring", "Hazard", "Enemies", "Coins", "PlatChance")

	for i := 0; i < roster.Count(); i++ {
		lvl := roster.Level(i)
		p := gen.Params(i)
		moving := lvl.CountPlatforms(platformer.PlatformHorizontal) + lvl.CountPlatforms(platformer.PlatformVertical)
		fmt.Printf("  %-5d  %-7s  %-6.0f  %-5d  %-6d  %-6d  %-6d  %-6d  %-7d  %-5d  %.2f\n",
			i+1, lvl.Theme, lvl.Width, len(lvl.Holes),
			lvl.CountPlatforms(platformer.PlatformStatic), moving, lvl.CountPlatforms(platformer.PlatformSpring),
			len(lvl.Hazards), len(lvl.Enemies), len(lvl.Coins), p.PlatformChance)
	}
}
