package platformer

import (
	"math"
	"slices"

	"github.com/vovakirdan/mathrun/internal/core"
)

// input is the held control state fed by SetInput and SetAnalogAxis.
type input struct {
	left, right, jump bool
	axis              float64
}

// simulate advances the live world by dt seconds. The order of the phases matters.
func (s *Session) simulate(dt float64) {
	pc := s.cfg.Physics
	p := &s.player

	// Moving platforms are placed from the run clock, then carry whoever stands on them.
	s.elapsed += dt
	s.updatePlatforms()
	s.carry()

	s.applyInput(dt)

	if s.input.jump && !p.jumpHeld && p.OnGround {
		p.VY = pc.JumpImpulse
		p.OnGround = false
		s.emit(EventJump)
	}
	p.jumpHeld = s.input.jump

	p.VY += pc.Gravity * dt

	p.X += p.VX * dt
	p.X = core.ClampF(p.X, 0, math.Max(0, s.level.Width-p.W))

	prevY := p.Y
	p.Y += p.VY * dt
	p.OnGround = false
	p.carrier = -1
	s.resolvePlatforms(prevY)
	s.resolveSprings(prevY)

	if p.Invulnerable <= 0 && s.touchingHazard() {
		s.Die()
		return
	}
	if p.Y > s.level.GroundY+pc.PitMargin {
		s.Die()
		return
	}

	s.collectCoins()

	if !s.updateEnemies(prevY, dt) {
		return
	}
	s.enemies = slices.DeleteFunc(s.enemies, func(e Enemy) bool { return e.Dead })

	if s.level.Finish.Valid() && p.Overlaps(s.level.Finish) {
		s.emit(EventLevelComplete)
		_ = s.AdvanceLevel()
		return
	}

	p.Invulnerable = math.Max(0, p.Invulnerable-dt)

	s.updateCamera(dt)
}

func (s *Session) updatePlatforms() {
	t := s.elapsed
	for i := range s.platforms {
		pl := &s.platforms[i]
		pl.DX, pl.DY = 0, 0
		switch pl.Kind {
		case PlatformHorizontal:
			x := pl.OriginX + math.Sin(t*pl.AngularSpeed)*pl.Amplitude
			pl.DX = x - pl.X
			pl.X = x
		case PlatformVertical:
			y := pl.OriginY + math.Sin(t*pl.AngularSpeed)*pl.Amplitude
			pl.DY = y - pl.Y
			pl.Y = y
		}
	}
}

// carry moves a grounded player with the platform they stood on last step.
func (s *Session) carry() {
	p := &s.player
	if !p.OnGround || p.carrier < 0 || p.carrier >= len(s.platforms) {
		return
	}
	pl := s.platforms[p.carrier]
	if pl.Kind.Moving() {
		p.X += pl.DX
		p.Y += pl.DY
	}
}

func (s *Session) applyInput(dt float64) {
	pc := s.cfg.Physics
	p := &s.player

	axis := s.input.axis
	if math.Abs(axis) < pc.AxisDeadzone {
		axis = 0
	}
	left := s.input.left || axis < -pc.AxisThreshold
	right := s.input.right || axis > pc.AxisThreshold

	mag := 1.0
	if axis != 0 {
		mag = math.Abs(axis)
	}

	dir := 0.0
	switch {
	case left && !right:
		dir = -1
	case right && !left:
		dir = 1
	}

	if dir != 0 {
		p.Facing = int(dir)
		target := dir * pc.MaxSpeed * mag
		if pc.Acceleration <= 0 {
			p.VX = target
		} else {
			p.VX = approach(p.VX, target, pc.Acceleration*dt)
		}
	} else {
		p.VX *= math.Pow(pc.Friction, dt*60)
		if math.Abs(p.VX) < 1 {
			p.VX = 0
		}
	}
	p.VX = core.ClampF(p.VX, -pc.MaxSpeed, pc.MaxSpeed)
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// resolvePlatforms lands the player on, or bumps their head against, solid platforms.
// prevY decides the side: a bottom edge that was above the top lands, a top edge
// that was below the bottom bumps.
func (s *Session) resolvePlatforms(prevY float64) {
	pc := s.cfg.Physics
	p := &s.player

	for i, pl := range s.platforms {
		if pl.Kind == PlatformSpring || !pl.Valid() {
			continue
		}
		if !p.OverlapsX(pl.Box, pc.EdgeInset) {
			continue
		}

		prevBottom := prevY + p.H
		if p.VY >= 0 && prevBottom <= pl.Y+pc.LandingEpsilon && p.Bottom() >= pl.Y {
			p.Y = pl.Y - p.H
			p.VY = 0
			p.OnGround = true
			p.carrier = i
			if pl.Kind.Firm() && !s.touchingHazard() {
				p.CheckpointX, p.CheckpointY = p.X, p.Y
			}
			continue
		}

		if p.VY < 0 && prevY >= pl.Bottom()-pc.LandingEpsilon && p.Y < pl.Bottom() && p.Bottom() > pl.Y {
			p.Y = pl.Bottom()
			p.VY = 0
		}
	}
}

// resolveSprings launches a player who comes down onto a spring.
func (s *Session) resolveSprings(prevY float64) {
	pc := s.cfg.Physics
	p := &s.player

	for _, pl := range s.platforms {
		if pl.Kind != PlatformSpring || !pl.Valid() {
			continue
		}
		if !p.OverlapsX(pl.Box, pc.EdgeInset) {
			continue
		}
		if p.VY >= 0 && prevY+p.H <= pl.Y+pc.LandingEpsilon && p.Bottom() >= pl.Y {
			p.Y = pl.Y - p.H
			p.VY = pc.JumpImpulse * pc.SpringMultiplier
			p.OnGround = false
			p.carrier = -1
			s.emit(EventSpring)
			return
		}
	}
}

func (s *Session) touchingHazard() bool {
	for _, h := range s.level.Hazards {
		if h.Valid() && s.player.Overlaps(h.Box) {
			return true
		}
	}
	return false
}

func (s *Session) collectCoins() {
	p := &s.player
	cx, cy := p.Center()
	for i := range s.coins {
		c := &s.coins[i]
		if c.Taken || math.IsNaN(c.X) || math.IsNaN(c.Y) {
			continue
		}
		if core.Dist(cx, cy, c.X, c.Y) < s.cfg.Player.CoinPickupDist {
			c.Taken = true
			s.score += s.cfg.Scoring.Coin
			s.emitAt(EventCoin, c.X, c.Y)
		}
	}
}

// updateEnemies moves live enemies and resolves contact. A descending player whose
// bottom was above an enemy's midpoint before this step stomps it.
// It returns false when the player died.
func (s *Session) updateEnemies(prevY, dt float64) bool {
	p := &s.player
	for i := range s.enemies {
		e := &s.enemies[i]
		if e.Dead {
			continue
		}
		e.move(s.cfg.Enemies, s.elapsed, dt)
		if !e.Valid() || !p.Overlaps(e.Box) {
			continue
		}

		if p.VY > 0 && prevY+p.H < e.Y+e.H/2 {
			e.Dead = true
			p.VY = s.cfg.Physics.StompBounce
			s.score += s.cfg.Scoring.Stomp
			s.emitAt(EventStomp, e.X+e.W/2, e.Y)
			continue
		}
		if p.Invulnerable <= 0 {
			s.Die()
			return false
		}
	}
	return true
}

// updateCamera eases toward the player with a frame-rate independent factor.
func (s *Session) updateCamera(dt float64) {
	cc := s.cfg.Camera
	target := s.player.X - cc.Offset
	alpha := 1 - math.Pow(cc.Decay, dt)
	s.camera += (target - s.camera) * alpha
	s.camera = core.ClampF(s.camera, 0, math.Max(0, s.level.Width-cc.ViewportWidth))
}
