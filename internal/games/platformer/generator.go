package platformer

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/core"
)

// CoinRadius is the drawn size of a coin, used to keep coins off holes.
const CoinRadius = 10

// Params are the densities used to lay out one level.
// Every field is non-decreasing in the level index.
type Params struct {
	Index          int
	Width          float64
	Holes          int
	PlatformChance float64
	MovingChance   float64
	SpringChance   float64
	EnemyChance    float64
	FlierChance    float64
	SpikeChance    float64
	CoinChance     float64
	GroundEnemies  int
	GroundSpikes   int
	Spikes         bool
	Fliers         bool
	Moving         bool
}

// Generator builds levels from the generator config and difficulty scaling.
type Generator struct {
	cfg  config.PlatformerConfig
	diff *config.DifficultyManager
	rng  *rand.Rand
}

// NewGenerator creates a generator. A nil rng is seeded from the clock.
func NewGenerator(cfg config.PlatformerConfig, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg.Difficulty),
		rng:  rng,
	}
}

// Params returns the layout densities for a level index.
func (g *Generator) Params(index int) Params {
	index = max(index, 0)
	s := g.diff.Scaling()
	p := Params{
		Index:          index,
		Width:          g.cfg.Generator.BaseWidth + g.cfg.Generator.WidthStep*float64(index),
		Holes:          g.diff.Holes(index),
		PlatformChance: g.diff.Chance(s.PlatformChance, index),
		SpringChance:   g.diff.Chance(s.SpringChance, index),
		EnemyChance:    g.diff.Chance(s.EnemyChance, index),
		CoinChance:     g.diff.Chance(s.CoinChance, index),
		GroundEnemies:  g.diff.GroundEnemies(index),
		GroundSpikes:   g.diff.GroundSpikes(index),
		Spikes:         g.diff.SpikesEnabled(index),
		Fliers:         g.diff.FliersEnabled(index),
		Moving:         g.diff.MovingEnabled(index),
	}
	if p.Spikes {
		p.SpikeChance = g.diff.Chance(s.SpikeChance, index)
	}
	if p.Fliers {
		p.FlierChance = g.diff.Chance(s.FlierChance, index)
	}
	if p.Moving {
		p.MovingChance = g.diff.Chance(s.MovingChance, index)
	}
	return p
}

// Generate lays out the level at index.
func (g *Generator) Generate(index int) Level {
	p := g.Params(index)
	gc := g.cfg.Generator

	lvl := Level{
		Index:   p.Index,
		Width:   p.Width,
		GroundY: gc.GroundY,
		StartX:  g.cfg.Player.StartX,
		StartY:  gc.GroundY - g.cfg.Player.StartOffsetY,
		Theme:   ThemeFor(p.Index),
		Finish:  core.NewBox(p.Width-gc.FinishW, gc.GroundY-gc.FinishH, gc.FinishW, gc.FinishH),
	}
	// Nothing is placed past tail; the finish sits beyond it on solid ground.
	tail := p.Width - gc.TailMargin

	lvl.Holes = g.holes(p, tail)
	for _, seg := range groundSegments(p.Width, lvl.Holes) {
		lvl.Platforms = append(lvl.Platforms, Platform{
			Box:  core.NewBox(seg.Start, gc.GroundY, seg.Width(), gc.GroundH),
			Kind: PlatformGround,
		})
	}

	for x := gc.SegmentStart; x < tail; x += gc.Segment {
		if g.rng.Float64() >= p.PlatformChance {
			continue
		}
		w := core.RandRange(g.rng, gc.PlatformMinW, gc.PlatformMaxW)
		y := gc.GroundY - gc.PlatformMinLift - g.rng.Float64()*gc.PlatformLiftVar

		roll := g.rng.Float64()
		switch {
		case roll < p.MovingChance:
			g.placeMoving(&lvl, x, y, w)
		case roll < p.MovingChance+p.SpringChance:
			g.placeSpring(&lvl, x)
		default:
			g.placeStatic(&lvl, p, x, y, w)
		}
	}

	g.placeGroundEnemies(&lvl, p, tail)
	g.placeGroundSpikes(&lvl, p, tail)

	// Ground coins
	for k := 0; k < gc.GroundCoins; k++ {
		cx := gc.SafeStart + 100 + g.rng.Float64()*(p.Width-gc.SafeStart-200)
		if lvl.OverHole(cx-CoinRadius, cx+CoinRadius) {
			continue
		}
		lvl.Coins = append(lvl.Coins, Coin{X: cx, Y: gc.GroundY - gc.CoinLift})
	}

	return lvl
}

// holes places the level's holes left to right, stopping before tail.
func (g *Generator) holes(p Params, tail float64) []core.Span {
	gc := g.cfg.Generator
	var holes []core.Span
	end := gc.SafeStart
	for h := 0; h < p.Holes; h++ {
		x := gc.HoleStart + gc.HoleSpacing*float64(h) + gc.HoleShift*float64(p.Index)
		w := core.RandRange(g.rng, gc.HoleMinWidth, gc.HoleMaxWidth)
		if x+w > tail {
			break
		}
		if x < end || w <= 0 {
			continue
		}
		holes = append(holes, core.Span{Start: x, End: x + w})
		end = x + w
	}
	return holes
}

// groundSegments returns the floor spans between sorted, disjoint holes.
// Holes and segments together cover [0, width) exactly.
func groundSegments(width float64, holes []core.Span) []core.Span {
	var segs []core.Span
	cur := 0.0
	for _, h := range holes {
		if h.Start > cur {
			segs = append(segs, core.Span{Start: cur, End: h.Start})
		}
		cur = math.Max(cur, h.End)
	}
	if cur < width {
		segs = append(segs, core.Span{Start: cur, End: width})
	}
	return segs
}

func (g *Generator) placeStatic(lvl *Level, p Params, x, y, w float64) {
	gc := g.cfg.Generator
	ec := g.cfg.Enemies
	if x+w > lvl.Finish.X || lvl.OverHole(x, x+w) {
		return
	}
	lvl.Platforms = append(lvl.Platforms, Platform{
		Box:  core.NewBox(x, y, w, gc.PlatformH),
		Kind: PlatformStatic,
	})

	if g.rng.Float64() < p.CoinChance {
		lvl.Coins = append(lvl.Coins, Coin{X: x + w/2, Y: y - gc.CoinLift})
	}
	if p.Spikes && g.rng.Float64() < p.SpikeChance {
		spike := Hazard{Box: core.NewBox(x+gc.SpikeInset, y-gc.SpikeH, w-2*gc.SpikeInset, gc.SpikeH)}
		if spike.Valid() {
			lvl.Hazards = append(lvl.Hazards, spike)
		}
	}
	if g.rng.Float64() < p.EnemyChance {
		kind := EnemyPatroller
		if p.Fliers && g.rng.Float64() < p.FlierChance {
			kind = EnemyFlier
		}
		e := Enemy{
			Box:  core.NewBox(x+20, y-ec.Height, ec.Width, ec.Height),
			Kind: kind,
			X0:   x,
			X1:   x + w - ec.Width,
			Dir:  1,
		}
		if kind == EnemyFlier {
			e.Y -= ec.Height
		}
		e.BaseY = e.Y
		if e.X1 > e.X0 {
			lvl.Enemies = append(lvl.Enemies, e)
		}
	}
}

func (g *Generator) placeMoving(lvl *Level, x, y, w float64) {
	gc := g.cfg.Generator
	amp := core.RandRange(g.rng, gc.MovingRangeMin, gc.MovingRangeMax)
	speed := core.RandRange(g.rng, gc.MovingSpeedMin, gc.MovingSpeedMax)

	plat := Platform{
		Box:          core.NewBox(x, y, w, gc.PlatformH),
		OriginX:      x,
		OriginY:      y,
		AngularSpeed: speed,
	}
	if g.rng.Float64() < 0.5 {
		plat.Kind = PlatformHorizontal
		if x-amp < 0 || x+w+amp > lvl.Finish.X || lvl.OverHole(x-amp, x+w+amp) {
			return
		}
		plat.Amplitude = amp
	} else {
		plat.Kind = PlatformVertical
		if x+w > lvl.Finish.X || lvl.OverHole(x, x+w) {
			return
		}
		// Keep the lowest point above a standing player's head.
		lowest := gc.GroundY - g.cfg.Player.Height - gc.PlatformH
		plat.Amplitude = math.Max(0, math.Min(amp/2, lowest-y))
	}
	lvl.Platforms = append(lvl.Platforms, plat)
}

func (g *Generator) placeSpring(lvl *Level, x float64) {
	gc := g.cfg.Generator
	if x < gc.SafeStart || lvl.OverHole(x-gc.HoleClearance, x+gc.SpringW+gc.HoleClearance) {
		return
	}
	lvl.Platforms = append(lvl.Platforms, Platform{
		Box:  core.NewBox(x, gc.GroundY-gc.SpringH, gc.SpringW, gc.SpringH),
		Kind: PlatformSpring,
	})
}

func (g *Generator) placeGroundEnemies(lvl *Level, p Params, tail float64) {
	gc := g.cfg.Generator
	ec := g.cfg.Enemies

	var lanes []core.Span
	for _, seg := range groundSegments(lvl.Width, lvl.Holes) {
		lane := core.Span{Start: math.Max(seg.Start, gc.SafeStart) + 20, End: math.Min(seg.End, tail) - 20}
		if lane.Width() >= gc.MinPatrolSegment {
			lanes = append(lanes, lane)
		}
	}
	if len(lanes) == 0 {
		return
	}

	for k := 0; k < p.GroundEnemies; k++ {
		lane := lanes[g.rng.Intn(len(lanes))]
		x0, x1 := lane.Start, lane.End-ec.Width
		lvl.Enemies = append(lvl.Enemies, Enemy{
			Box:   core.NewBox(core.RandRange(g.rng, x0, x1), gc.GroundY-ec.Height, ec.Width, ec.Height),
			Kind:  EnemyPatroller,
			BaseY: gc.GroundY - ec.Height,
			X0:    x0,
			X1:    x1,
			Dir:   -1,
		})
	}
}

func (g *Generator) placeGroundSpikes(lvl *Level, p Params, tail float64) {
	gc := g.cfg.Generator
	w := gc.GroundSpikeW
	if w <= 0 {
		return
	}
	for k := 0; k < p.GroundSpikes; k++ {
		for attempt := 0; attempt < 10; attempt++ {
			x := core.RandRange(g.rng, gc.SafeStart, tail-w)
			if lvl.OverHole(x-gc.HoleClearance, x+w+gc.HoleClearance) || g.nearSpring(lvl, x, x+w) {
				continue
			}
			lvl.Hazards = append(lvl.Hazards, Hazard{Box: core.NewBox(x, gc.GroundY-gc.SpikeH, w, gc.SpikeH)})
			break
		}
	}
}

// nearSpring reports whether [x0, x1) comes within clearance of a spring.
func (g *Generator) nearSpring(lvl *Level, x0, x1 float64) bool {
	c := g.cfg.Generator.HoleClearance
	s := core.Span{Start: x0 - c, End: x1 + c}
	for _, pl := range lvl.Platforms {
		if pl.Kind == PlatformSpring && s.Overlaps(core.Span{Start: pl.X, End: pl.Right()}) {
			return true
		}
	}
	return false
}
