package config

import "math"

// DifficultyManager maps a level index to generation densities.
// Every value it reports is non-decreasing in the level index.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// Level returns the difficulty level (0.0 to 1.0) for a level index.
func (d *DifficultyManager) Level(index int) float64 {
	maxAt := float64(d.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(index)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Chance interpolates a [easy, hard] probability pair for a level index.
// The result is clamped to [0, 1].
func (d *DifficultyManager) Chance(pair [2]float64, index int) float64 {
	lo, hi := pair[0], pair[1]
	if hi < lo {
		hi = lo
	}
	return clampF(lo+d.Level(index)*(hi-lo), 0.0, 1.0)
}

// Holes returns the number of holes for a level index.
func (d *DifficultyManager) Holes(index int) int {
	return d.cfg.Scaling.BaseHoles + every(index, d.cfg.Scaling.HoleEvery)
}

// GroundEnemies returns the number of ground patrollers placed on the floor.
func (d *DifficultyManager) GroundEnemies(index int) int {
	return every(index, d.cfg.Scaling.GroundEnemyEvery)
}

// GroundSpikes returns the number of spike strips placed on the floor.
func (d *DifficultyManager) GroundSpikes(index int) int {
	from := d.cfg.Scaling.GroundHazardsFrom
	if index < from {
		return 0
	}
	return 1 + every(index-from, d.cfg.Scaling.GroundSpikeEvery)
}

// SpikesEnabled reports whether platform spikes appear at this index.
func (d *DifficultyManager) SpikesEnabled(index int) bool {
	return index >= d.cfg.Scaling.SpikesFromLevel
}

// FliersEnabled reports whether flying enemies appear at this index.
func (d *DifficultyManager) FliersEnabled(index int) bool {
	return index >= d.cfg.Scaling.FliersFromLevel
}

// MovingEnabled reports whether moving platforms appear at this index.
func (d *DifficultyManager) MovingEnabled(index int) bool {
	return index >= d.cfg.Scaling.MovingFromLevel
}

// Scaling returns the density table.
func (d *DifficultyManager) Scaling() ScalingConfig {
	return d.cfg.Scaling
}

func every(index, n int) int {
	if n <= 0 || index <= 0 {
		return 0
	}
	return index / n
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
