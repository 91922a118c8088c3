package platformer

import "github.com/vovakirdan/mathrun/internal/core"

// PlatformKind tags the behavior of a platform.
type PlatformKind int

const (
	PlatformGround     PlatformKind = iota // Floor segment between holes
	PlatformStatic                         // Elevated, fixed
	PlatformHorizontal                     // Elevated, oscillates on X
	PlatformVertical                       // Elevated, oscillates on Y
	PlatformSpring                         // Launches the player instead of supporting them
)

// String returns the kind name used in summaries.
func (k PlatformKind) String() string {
	switch k {
	case PlatformGround:
		return "ground"
	case PlatformStatic:
		return "static"
	case PlatformHorizontal:
		return "horizontal"
	case PlatformVertical:
		return "vertical"
	case PlatformSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Moving reports whether the platform oscillates.
func (k PlatformKind) Moving() bool {
	return k == PlatformHorizontal || k == PlatformVertical
}

// Firm reports whether landing on this kind records a checkpoint.
func (k PlatformKind) Firm() bool {
	return k == PlatformGround || k == PlatformStatic
}

// Platform is a solid rectangle. Moving platforms derive their live position
// from Origin, Amplitude and AngularSpeed at the current run time.
type Platform struct {
	core.Box
	Kind PlatformKind

	OriginX, OriginY float64
	Amplitude        float64
	AngularSpeed     float64 // radians per second

	// DX and DY hold the displacement applied by the latest step.
	DX, DY float64
}

// Hazard is a spike strip. Touching it without invulnerability is fatal.
type Hazard struct {
	core.Box
}

// Coin is a collectible point.
type Coin struct {
	X, Y  float64
	Taken bool
}

// EnemyKind tags enemy behavior.
type EnemyKind int

const (
	EnemyPatroller EnemyKind = iota // Walks between X0 and X1
	EnemyFlier                      // Patrols and bobs vertically
)

// String returns the kind name used in summaries.
func (k EnemyKind) String() string {
	switch k {
	case EnemyPatroller:
		return "patroller"
	case EnemyFlier:
		return "flier"
	default:
		return "unknown"
	}
}

// Enemy is a hostile entity with patrol bounds.
type Enemy struct {
	core.Box
	Kind  EnemyKind
	BaseY float64 // Rest height for fliers
	X0    float64 // Left patrol bound
	X1    float64 // Right patrol bound
	Dir   float64 // +1 right, -1 left
	Dead  bool
}

// Player is the controlled character.
type Player struct {
	core.Box
	VX, VY       float64
	OnGround     bool
	Facing       int     // +1 right, -1 left
	Invulnerable float64 // seconds left

	// Checkpoint is the last position with firm ground contact.
	CheckpointX, CheckpointY float64

	jumpHeld bool
	carrier  int // index of the platform the player stands on, -1 if none
}

// Theme is an opaque visual token carried by a level.
type Theme string

const (
	ThemeDay    Theme = "day"
	ThemeSunset Theme = "sunset"
	ThemeNight  Theme = "night"
)

var themes = []Theme{ThemeDay, ThemeSunset, ThemeNight}

// ThemeFor returns the theme of a level index.
func ThemeFor(index int) Theme {
	if index < 0 {
		index = -index
	}
	return themes[index%len(themes)]
}

// Level is the immutable template of one stage.
// Sessions never mutate it; they play on clones of its coins and enemies.
type Level struct {
	Index     int
	Width     float64
	GroundY   float64
	Holes     []core.Span
	Platforms []Platform
	Hazards   []Hazard
	Coins     []Coin
	Enemies   []Enemy
	Finish    core.Box
	StartX    float64
	StartY    float64
	Theme     Theme
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() Level {
	c := *l
	c.Holes = append([]core.Span(nil), l.Holes...)
	c.Platforms = append([]Platform(nil), l.Platforms...)
	c.Hazards = append([]Hazard(nil), l.Hazards...)
	c.Coins = append([]Coin(nil), l.Coins...)
	c.Enemies = append([]Enemy(nil), l.Enemies...)
	return c
}

// CountPlatforms returns the number of platforms of a kind.
func (l *Level) CountPlatforms(kind PlatformKind) int {
	n := 0
	for _, p := range l.Platforms {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// OverHole reports whether the span [x0, x1) crosses any hole.
func (l *Level) OverHole(x0, x1 float64) bool {
	return overHole(l.Holes, core.Span{Start: x0, End: x1})
}

func overHole(holes []core.Span, s core.Span) bool {
	for _, h := range holes {
		if h.Overlaps(s) {
			return true
		}
	}
	return false
}
