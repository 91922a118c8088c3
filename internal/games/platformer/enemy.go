package platformer

import (
	"math"

	"github.com/vovakirdan/mathrun/internal/config"
)

// behavior advances one enemy by dt at run time t.
type behavior func(e *Enemy, cfg config.EnemyConfig, t, dt float64)

// behaviors dispatches enemy motion by kind.
var behaviors = map[EnemyKind]behavior{
	EnemyPatroller: patrol,
	EnemyFlier:     fly,
}

func patrol(e *Enemy, cfg config.EnemyConfig, _, dt float64) {
	e.X += e.Dir * cfg.PatrolSpeed * dt
	turnAtBounds(e)
}

// fly patrols and bobs around BaseY. The height is a function of t, not integrated.
func fly(e *Enemy, cfg config.EnemyConfig, t, dt float64) {
	e.X += e.Dir * cfg.FlierSpeed * dt
	turnAtBounds(e)
	e.Y = e.BaseY + math.Sin(t*cfg.FlierFrequency)*cfg.FlierAmplitude
}

func turnAtBounds(e *Enemy) {
	if e.X1 < e.X0 {
		return
	}
	if e.X < e.X0 {
		e.X = e.X0
		e.Dir = 1
	} else if e.X > e.X1 {
		e.X = e.X1
		e.Dir = -1
	}
}

// move applies the behavior registered for the enemy's kind.
func (e *Enemy) move(cfg config.EnemyConfig, t, dt float64) {
	if e.Dead {
		return
	}
	if b, ok := behaviors[e.Kind]; ok {
		b(e, cfg, t, dt)
	}
}
