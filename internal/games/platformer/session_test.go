package platformer

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/mathrun/internal/core"
)

const dt = 1.0 / 60

type stubGate struct {
	opens []int
	err   error
}

func (g *stubGate) Open(level int) error {
	g.opens = append(g.opens, level)
	return g.err
}

type countingListener struct {
	NopListener
	deaths, coins, stomps, jumps, completes int
}

func (l *countingListener) OnDeath(int)      { l.deaths++ }
func (l *countingListener) OnCoinCollected() { l.coins++ }
func (l *countingListener) OnEnemyDefeated() { l.stomps++ }
func (l *countingListener) OnJump()          { l.jumps++ }
func (l *countingListener) OnLevelComplete() { l.completes++ }

// flatLevel is solid ground across the width with the player standing at x=100.
func flatLevel(width float64) Level {
	return Level{
		Width:   width,
		GroundY: 480,
		Platforms: []Platform{
			{Box: core.NewBox(0, 480, width, 120), Kind: PlatformGround},
		},
		StartX: 100,
		StartY: 426,
	}
}

func newTestSession(t *testing.T, levels ...Level) (*Session, *stubGate) {
	t.Helper()
	gate := &stubGate{}
	s := NewSession(testConfig(), Levels(levels), WithQuizGate(gate))
	if err := s.StartLevel(0); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}
	return s, gate
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := NewSession(testConfig(), Levels{flatLevel(1000)})
	if s.State() != StateMenu {
		t.Errorf("State() = %s, expected MENU", s.State())
	}
	if err := s.StartLevel(0); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %s, expected PLAYING", s.State())
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(1200))
	maxX := 1200 - s.Player().W

	s.SetInput(core.ActionLeft, true)
	for i := 0; i < 120; i++ {
		s.Step(dt)
		if x := s.Player().X; x < 0 || x > maxX {
			t.Fatalf("x = %f out of [0, %f]", x, maxX)
		}
	}
	if s.Player().X != 0 {
		t.Errorf("x = %f, expected to rest at the left wall", s.Player().X)
	}

	s.SetInput(core.ActionLeft, false)
	s.SetInput(core.ActionRight, true)
	for i := 0; i < 400; i++ {
		s.Step(dt)
		if x := s.Player().X; x < 0 || x > maxX {
			t.Fatalf("x = %f out of [0, %f]", x, maxX)
		}
	}
	if s.Player().X != maxX {
		t.Errorf("x = %f, expected to rest at the right wall %f", s.Player().X, maxX)
	}
}

func TestOnGroundOnlyAfterLanding(t *testing.T) {
	lvl := flatLevel(2000)
	lvl.StartY = 380
	s, _ := newTestSession(t, lvl)

	landed := false
	for i := 0; i < 60 && !landed; i++ {
		s.Step(dt)
		p := s.Player()
		if p.OnGround {
			landed = true
			if p.Bottom() != 480 {
				t.Errorf("grounded with bottom %f, expected 480", p.Bottom())
			}
		}
	}
	if !landed {
		t.Fatal("player never landed")
	}

	s.SetInput(core.ActionJump, true)
	events := s.Step(dt)
	if s.Player().OnGround {
		t.Error("OnGround should be false the tick a jump begins")
	}
	if s.Player().VY >= 0 {
		t.Errorf("VY = %f, expected upward", s.Player().VY)
	}
	if countEvents(events, EventJump) != 1 {
		t.Error("expected one jump event")
	}

	// Holding jump through the landing must not jump again.
	jumps := 0
	for i := 0; i < 120; i++ {
		jumps += countEvents(s.Step(dt), EventJump)
		p := s.Player()
		if p.OnGround && p.Bottom() != 480 {
			t.Fatalf("grounded in mid air at bottom %f", p.Bottom())
		}
	}
	if jumps != 0 {
		t.Errorf("held jump re-triggered %d times", jumps)
	}
	if !s.Player().OnGround {
		t.Error("player should be back on the ground")
	}
}

func TestDieIsIdempotent(t *testing.T) {
	l := &countingListener{}
	gate := &stubGate{}
	s := NewSession(testConfig(), Levels{flatLevel(1000)}, WithQuizGate(gate), WithListener(l))
	_ = s.StartLevel(0)

	s.Die()
	s.Die()

	if l.deaths != 1 {
		t.Errorf("OnDeath called %d times, expected 1", l.deaths)
	}
	if len(gate.opens) != 1 || gate.opens[0] != 1 {
		t.Errorf("gate opens = %v, expected [1]", gate.opens)
	}
	if n := countEvents(s.Step(dt), EventDeath); n != 1 {
		t.Errorf("death events = %d, expected 1", n)
	}
	if s.State() != StateDeadPendingQuiz {
		t.Errorf("State() = %s", s.State())
	}
}

func TestDieWithoutGateFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		gate QuizGate
	}{
		{"no gate", nil},
		{"gate error", &stubGate{err: errors.New("quiz screen missing")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(testConfig(), Levels{flatLevel(1000)}, WithQuizGate(tc.gate))
			_ = s.StartLevel(0)
			s.Die()

			if s.State() != StatePlaying {
				t.Errorf("State() = %s, expected PLAYING", s.State())
			}
			if s.Stats().Wrong != 1 {
				t.Errorf("Wrong = %d, expected 1", s.Stats().Wrong)
			}
			events := s.Step(0)
			if countEvents(events, EventDeath) != 1 || countEvents(events, EventLevelReset) != 1 {
				t.Errorf("events = %+v, expected death then reset", events)
			}
		})
	}
}

func TestAfterQuizWithoutDeath(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(1000))
	if err := s.AfterQuiz(true); !errors.Is(err, ErrNoPendingQuiz) {
		t.Errorf("AfterQuiz() = %v, expected ErrNoPendingQuiz", err)
	}
}

func TestCheckpointTracksLatestLanding(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(3000))
	s.SetInput(core.ActionRight, true)

	var firstX, lastX, lastY float64
	landings := 0
	wasGrounded := false
	for i := 0; i < 240; i++ {
		s.SetInput(core.ActionJump, i%25 == 0)
		s.Step(dt)
		p := s.Player()
		if p.OnGround {
			if !wasGrounded {
				landings++
				if landings == 1 {
					firstX = p.X
				}
			}
			lastX, lastY = p.X, p.Y
		}
		wasGrounded = p.OnGround
	}

	// Leave the ground so the checkpoint cannot move any more.
	s.SetInput(core.ActionJump, false)
	s.Step(dt)
	if p := s.Player(); p.OnGround {
		lastX, lastY = p.X, p.Y
	}
	s.SetInput(core.ActionJump, true)
	s.Step(dt)

	p := s.Player()
	if landings < 3 {
		t.Fatalf("only %d landings", landings)
	}
	if p.CheckpointX != lastX || p.CheckpointY != lastY {
		t.Errorf("checkpoint = (%f, %f), expected latest landing (%f, %f)", p.CheckpointX, p.CheckpointY, lastX, lastY)
	}
	if p.CheckpointX == firstX {
		t.Error("checkpoint should not stay at the first landing")
	}
}

func TestCoinCollectedExactlyOnce(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.Coins = []Coin{{X: 120, Y: 453}}
	l := &countingListener{}
	s := NewSession(testConfig(), Levels{lvl}, WithListener(l))
	_ = s.StartLevel(0)

	first := s.Step(dt)
	for i := 0; i < 10; i++ {
		s.Step(dt)
	}

	if countEvents(first, EventCoin) != 1 || l.coins != 1 {
		t.Errorf("coin events = %d, listener = %d, expected 1", countEvents(first, EventCoin), l.coins)
	}
	if s.Stats().Score != 10 {
		t.Errorf("Score = %d, expected 10", s.Stats().Score)
	}
	if !s.Coins()[0].Taken {
		t.Error("coin should be taken")
	}
	if s.Level().Coins[0].Taken {
		t.Error("template coin must not be mutated")
	}
}

// enemyLevel places one patroller standing on the ground at x=300.
func enemyLevel() Level {
	lvl := flatLevel(2000)
	lvl.Enemies = []Enemy{{
		Box:  core.NewBox(300, 440, 40, 40),
		Kind: EnemyPatroller,
		X0:   200,
		X1:   400,
		Dir:  1,
	}}
	return lvl
}

func TestStompKillsEnemy(t *testing.T) {
	s, _ := newTestSession(t, enemyLevel())
	s.player.X, s.player.Y = 300, 396 // bottom at 450, above the midpoint 460
	s.player.VY = 300

	events := s.Step(dt)

	if s.State() != StatePlaying {
		t.Fatalf("player died on a stomp")
	}
	if len(s.Enemies()) != 0 {
		t.Error("stomped enemy should be removed from the live list")
	}
	if s.Player().VY != testConfig().Physics.StompBounce {
		t.Errorf("VY = %f, expected bounce", s.Player().VY)
	}
	if s.Stats().Score != 20 || countEvents(events, EventStomp) != 1 {
		t.Errorf("score = %d, stomp events = %d", s.Stats().Score, countEvents(events, EventStomp))
	}
	if len(s.Level().Enemies) != 1 || s.Level().Enemies[0].Dead {
		t.Error("template enemy must not be mutated")
	}
}

func TestEnemyContactKills(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		vy   float64
	}{
		{"ascending into enemy", 396, -300},
		{"descending below midpoint", 410, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, gate := newTestSession(t, enemyLevel())
			s.player.X, s.player.Y, s.player.VY = 300, tc.y, tc.vy

			events := s.Step(dt)

			if s.State() != StateDeadPendingQuiz {
				t.Errorf("State() = %s, expected death", s.State())
			}
			if len(gate.opens) != 1 {
				t.Errorf("gate opened %d times", len(gate.opens))
			}
			if countEvents(events, EventStomp) != 0 {
				t.Error("no stomp expected")
			}
		})
	}
}

func TestInvulnerabilityBlocksContact(t *testing.T) {
	s, _ := newTestSession(t, enemyLevel())
	s.player.X, s.player.Y, s.player.VY = 300, 396, -300
	s.player.Invulnerable = 1

	s.Step(dt)

	if s.State() != StatePlaying {
		t.Error("invulnerable player should survive contact")
	}
	if got := s.Player().Invulnerable; math.Abs(got-(1-dt)) > 1e-9 {
		t.Errorf("Invulnerable = %f, expected %f", got, 1-dt)
	}
}

func TestQuizSuccessRespawnsAtCheckpoint(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(2000))
	s.player.CheckpointX, s.player.CheckpointY = 120, 400
	s.player.X, s.player.Y = 500, 50
	s.player.VX, s.player.VY = 200, 300

	s.Die()
	if err := s.AfterQuiz(true); err != nil {
		t.Fatalf("AfterQuiz() failed: %v", err)
	}

	p := s.Player()
	if p.X != 120 || p.Y != 380 {
		t.Errorf("respawned at (%f, %f), expected (120, 380)", p.X, p.Y)
	}
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("velocity = (%f, %f), expected zero", p.VX, p.VY)
	}
	if p.Invulnerable != testConfig().Player.Invulnerable {
		t.Errorf("Invulnerable = %f", p.Invulnerable)
	}
	if s.State() != StatePlaying || s.Stats().Correct != 1 {
		t.Errorf("state = %s, correct = %d", s.State(), s.Stats().Correct)
	}
	if countEvents(s.Step(0), EventRespawn) != 1 {
		t.Error("expected a respawn event")
	}
}

func TestQuizFailureRestoresLevel(t *testing.T) {
	lvl := flatLevel(3000)
	lvl.Coins = []Coin{{X: 1000, Y: 450}, {X: 1100, Y: 450}, {X: 1200, Y: 450}}
	lvl.Enemies = []Enemy{
		{Box: core.NewBox(1500, 440, 40, 40), X0: 1400, X1: 1600, Dir: 1},
		{Box: core.NewBox(2000, 440, 40, 40), X0: 1900, X1: 2100, Dir: 1},
	}
	s, _ := newTestSession(t, lvl)

	s.coins[0].Taken = true
	s.coins[2].Taken = true
	s.enemies[0].Dead = true
	s.enemies = s.enemies[1:]
	s.player.X = 900
	s.score = 80

	s.Die()
	if err := s.AfterQuiz(false); err != nil {
		t.Fatalf("AfterQuiz() failed: %v", err)
	}

	for i, c := range s.Coins() {
		if c.Taken {
			t.Errorf("coin %d still taken after failure", i)
		}
	}
	if len(s.Enemies()) != 2 {
		t.Fatalf("enemies = %d, expected 2", len(s.Enemies()))
	}
	for i, e := range s.Enemies() {
		if e.Dead {
			t.Errorf("enemy %d still dead after failure", i)
		}
	}
	p := s.Player()
	if p.X != lvl.StartX || p.Y != lvl.StartY {
		t.Errorf("player at (%f, %f), expected level start", p.X, p.Y)
	}
	st := s.Stats()
	if st.Wrong != 1 || st.Score != 30 {
		t.Errorf("stats = %+v, expected wrong=1 score=30", st)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %s", s.State())
	}
}

func TestWrongAnswerPenaltyFloor(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(1000))
	s.score = 20
	s.Die()
	_ = s.AfterQuiz(false)
	if s.Stats().Score != 0 {
		t.Errorf("Score = %d, expected floor at 0", s.Stats().Score)
	}
}

func TestAdvanceLevelWraps(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(2000), flatLevel(2500))
	s.score, s.correct = 100, 2

	if err := s.AdvanceLevel(); err != nil {
		t.Fatalf("AdvanceLevel() failed: %v", err)
	}
	if s.LevelIndex() != 1 || s.Stats().Score != 100 {
		t.Errorf("after advance: index=%d score=%d", s.LevelIndex(), s.Stats().Score)
	}

	_ = s.AdvanceLevel()
	if s.LevelIndex() != 0 {
		t.Errorf("expected wrap to level 0, got %d", s.LevelIndex())
	}
	if st := s.Stats(); st.Score != 0 || st.Correct != 0 {
		t.Errorf("wrap should clear counters, got %+v", st)
	}

	var wrapped *Event
	for _, e := range s.Step(0) {
		if e.Kind == EventRunWrapped {
			ev := e
			wrapped = &ev
		}
	}
	if wrapped == nil || wrapped.Final == nil {
		t.Fatal("expected a run wrapped event")
	}
	if wrapped.Final.Score != 100 || wrapped.Final.Level != 2 || wrapped.Final.Correct != 2 {
		t.Errorf("final = %+v", *wrapped.Final)
	}
}

func TestFinishAdvancesLevel(t *testing.T) {
	a := flatLevel(2000)
	a.Finish = core.NewBox(1850, 280, 150, 200)
	l := &countingListener{}
	s := NewSession(testConfig(), Levels{a, flatLevel(2500)}, WithListener(l))
	_ = s.StartLevel(0)
	s.player.X = 1840

	events := s.Step(dt)

	if countEvents(events, EventLevelComplete) != 1 || l.completes != 1 {
		t.Error("expected level complete")
	}
	if s.LevelIndex() != 1 {
		t.Errorf("LevelIndex() = %d, expected 1", s.LevelIndex())
	}
	if s.Player().X != 100 {
		t.Errorf("player x = %f, expected next level start", s.Player().X)
	}
}

func TestPitDeathIgnoresInvulnerability(t *testing.T) {
	lvl := flatLevel(2000)
	lvl.Platforms = []Platform{{Box: core.NewBox(0, 480, 200, 120), Kind: PlatformGround}}
	lvl.Holes = []core.Span{{Start: 200, End: 2000}}
	s, gate := newTestSession(t, lvl)
	s.player.X, s.player.Y = 500, 300
	s.player.Invulnerable = 100

	for i := 0; i < 120 && s.State() == StatePlaying; i++ {
		s.Step(dt)
	}
	if s.State() != StateDeadPendingQuiz || len(gate.opens) != 1 {
		t.Errorf("State() = %s, opens = %d, expected pit death", s.State(), len(gate.opens))
	}
}

func TestHazardContact(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.Hazards = []Hazard{{Box: core.NewBox(95, 465, 60, 15)}}

	s, _ := newTestSession(t, lvl)
	s.Step(dt)
	if s.State() != StateDeadPendingQuiz {
		t.Errorf("State() = %s, expected hazard death", s.State())
	}

	s, _ = newTestSession(t, lvl)
	s.player.Invulnerable = 1
	s.Step(dt)
	if s.State() != StatePlaying {
		t.Error("invulnerable player should survive spikes")
	}
}

func TestSpringLaunches(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.Platforms = append(lvl.Platforms, Platform{Box: core.NewBox(300, 460, 40, 20), Kind: PlatformSpring})
	s, _ := newTestSession(t, lvl)
	s.player.X, s.player.Y, s.player.VY = 300, 403, 200

	events := s.Step(dt)

	pc := testConfig().Physics
	p := s.Player()
	if p.VY != pc.JumpImpulse*pc.SpringMultiplier {
		t.Errorf("VY = %f, expected %f", p.VY, pc.JumpImpulse*pc.SpringMultiplier)
	}
	if p.OnGround {
		t.Error("a spring must not set OnGround")
	}
	if countEvents(events, EventSpring) != 1 {
		t.Error("expected a spring event")
	}
	if math.Abs(p.VY) <= math.Abs(pc.JumpImpulse) {
		t.Error("spring launch should beat a normal jump")
	}
}

func TestHeadBump(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.Platforms = append(lvl.Platforms, Platform{Box: core.NewBox(80, 300, 200, 20), Kind: PlatformStatic})
	s, _ := newTestSession(t, lvl)
	s.player.X, s.player.Y, s.player.VY = 100, 325, -600

	s.Step(dt)

	p := s.Player()
	if p.Y != 320 || p.VY != 0 {
		t.Errorf("after bump y=%f vy=%f, expected y=320 vy=0", p.Y, p.VY)
	}
	if p.OnGround {
		t.Error("a head bump is not a landing")
	}
}

func movingLevel() Level {
	lvl := flatLevel(2000)
	lvl.Platforms = append(lvl.Platforms, Platform{
		Box:          core.NewBox(500, 300, 100, 20),
		Kind:         PlatformHorizontal,
		OriginX:      500,
		OriginY:      300,
		Amplitude:    80,
		AngularSpeed: 1.5,
	})
	return lvl
}

func TestMovingPlatformIsAFunctionOfTime(t *testing.T) {
	a, _ := newTestSession(t, movingLevel())
	b, _ := newTestSession(t, movingLevel())

	for i := 0; i < 60; i++ {
		a.Step(1.0 / 60)
	}
	for i := 0; i < 120; i++ {
		b.Step(1.0 / 120)
	}

	xa, xb := a.Platforms()[1].X, b.Platforms()[1].X
	if math.Abs(xa-xb) > 1e-9 {
		t.Errorf("platform x differs by step size: %f vs %f", xa, xb)
	}
	want := 500 + math.Sin(a.Elapsed()*1.5)*80
	if math.Abs(xa-want) > 1e-9 {
		t.Errorf("platform x = %f, expected %f", xa, want)
	}
}

func TestHorizontalPlatformCarriesPlayer(t *testing.T) {
	s, _ := newTestSession(t, movingLevel())
	s.player.X, s.player.Y = 530, 246
	s.player.OnGround = true
	s.player.carrier = 1

	for i := 0; i < 90; i++ {
		s.Step(dt)
		p := s.Player()
		if !p.OnGround {
			t.Fatalf("step %d: fell off the moving platform", i)
		}
		if off := p.X - s.Platforms()[1].X; math.Abs(off-30) > 1e-6 {
			t.Fatalf("step %d: offset on platform = %f, expected 30", i, off)
		}
	}
	if s.Player().CheckpointX != 100 {
		t.Error("moving platforms should not record checkpoints")
	}
}

func TestInvalidGeometryIsSkipped(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.Platforms = append(lvl.Platforms,
		Platform{Box: core.NewBox(300, 400, 0, 20), Kind: PlatformStatic},
		Platform{Box: core.NewBox(400, 400, -5, 10), Kind: PlatformStatic},
		Platform{Box: core.NewBox(500, 470, 0, 0), Kind: PlatformSpring},
	)
	lvl.Hazards = []Hazard{{Box: core.NewBox(200, 400, 0, 0)}}
	lvl.Coins = []Coin{{X: math.NaN(), Y: math.NaN()}}
	lvl.Enemies = []Enemy{{Box: core.NewBox(150, 440, 0, 0), X0: 150, X1: 100}}

	s, _ := newTestSession(t, lvl)
	s.SetInput(core.ActionRight, true)
	for i := 0; i < 300; i++ {
		s.Step(dt)
	}
	if s.State() != StatePlaying {
		t.Errorf("State() = %s, invalid geometry should be harmless", s.State())
	}

	empty := NewSession(testConfig(), Levels(nil))
	_ = empty.StartLevel(0)
	for i := 0; i < 120; i++ {
		empty.Step(dt)
	}
}

func TestStepFrozenOutsidePlaying(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.StartY = 300

	s := NewSession(testConfig(), Levels{lvl}, WithQuizGate(&stubGate{}))
	s.Step(dt)
	if s.Player().Y != 300 {
		t.Error("MENU must not simulate")
	}

	_ = s.StartLevel(0)
	s.TogglePause()
	s.Step(dt)
	if s.Player().Y != 300 {
		t.Error("paused session must not simulate")
	}
	s.TogglePause()

	s.Die()
	s.Step(dt)
	if s.Player().Y != 300 || s.Elapsed() != 0 {
		t.Error("DEAD_PENDING_QUIZ must not simulate")
	}
}

func TestStepClampsDelta(t *testing.T) {
	lvl := flatLevel(1000)
	lvl.StartY = 100
	a, _ := newTestSession(t, lvl)
	b, _ := newTestSession(t, lvl)

	a.Step(10)
	b.Step(testConfig().Physics.MaxFrameDelta)

	if a.Player().Y != b.Player().Y || a.Elapsed() != b.Elapsed() {
		t.Errorf("long frame not clamped: y %f vs %f", a.Player().Y, b.Player().Y)
	}
	a.Step(math.NaN())
	a.Step(-1)
	if a.Elapsed() != b.Elapsed() {
		t.Error("NaN and negative deltas should not advance time")
	}
}

func TestCameraClampsAndIsFrameRateIndependent(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(3000))
	s.player.X = 2900
	for i := 0; i < 600; i++ {
		s.Step(dt)
		if c := s.Camera(); c < 0 || c > 2100 {
			t.Fatalf("camera %f outside [0, 2100]", c)
		}
	}
	if math.Abs(s.Camera()-2100) > 1 {
		t.Errorf("camera = %f, expected to settle at 2100", s.Camera())
	}

	small, _ := newTestSession(t, flatLevel(500))
	small.player.X = 400
	for i := 0; i < 60; i++ {
		small.Step(dt)
	}
	if small.Camera() != 0 {
		t.Errorf("camera = %f on a level narrower than the viewport", small.Camera())
	}

	fast, _ := newTestSession(t, flatLevel(3000))
	slow, _ := newTestSession(t, flatLevel(3000))
	fast.player.X, slow.player.X = 1500, 1500
	for i := 0; i < 60; i++ {
		fast.Step(1.0 / 60)
	}
	for i := 0; i < 120; i++ {
		slow.Step(1.0 / 120)
	}
	if math.Abs(fast.Camera()-slow.Camera()) > 1e-6 {
		t.Errorf("camera depends on frame rate: %f vs %f", fast.Camera(), slow.Camera())
	}
}

func TestWalkIntoHole(t *testing.T) {
	holes := []core.Span{{Start: 600, End: 750}}
	lvl := Level{Width: 3000, GroundY: 480, Holes: holes, StartX: 0, StartY: 426}
	for _, seg := range groundSegments(3000, holes) {
		lvl.Platforms = append(lvl.Platforms, Platform{Box: core.NewBox(seg.Start, 480, seg.Width(), 120), Kind: PlatformGround})
	}

	s, gate := newTestSession(t, lvl)
	s.player.VX = testConfig().Physics.MaxSpeed
	s.SetInput(core.ActionRight, true)

	firstAir := -1.0
	for i := 0; i < 300 && s.State() == StatePlaying; i++ {
		s.Step(dt)
		p := s.Player()
		if s.State() != StatePlaying {
			break
		}
		if i > 0 && !p.OnGround && firstAir < 0 {
			firstAir = p.X
		}
	}

	if firstAir < 590 || firstAir > 610 {
		t.Errorf("became airborne at x=%f, expected near the hole edge at 600", firstAir)
	}
	if s.State() != StateDeadPendingQuiz || len(gate.opens) != 1 {
		t.Errorf("State() = %s, expected a fall into the hole", s.State())
	}
}

func TestReturnToMenuClearsRunOnRestart(t *testing.T) {
	s, _ := newTestSession(t, flatLevel(1000))
	s.Die()
	if err := s.AfterQuiz(true); err != nil {
		t.Fatalf("AfterQuiz() failed: %v", err)
	}
	if s.Stats().Correct != 1 {
		t.Fatalf("Correct = %d, expected 1", s.Stats().Correct)
	}

	if err := s.ReturnToMenu(); err != nil {
		t.Fatalf("ReturnToMenu() failed: %v", err)
	}
	if s.State() != StateMenu {
		t.Errorf("State() = %s, expected MENU", s.State())
	}
	if err := s.ReturnToMenu(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("MENU -> MENU should be rejected, got %v", err)
	}

	if err := s.StartLevel(0); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}
	if st := s.Stats(); st.Correct != 0 || st.Score != 0 {
		t.Errorf("starting from the menu should clear the run, got %+v", st)
	}
}

func TestStompIndependentOfFrameRate(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"60 fps", 1.0 / 60},
		{"30 fps", 1.0 / 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, gate := newTestSession(t, enemyLevel())
			// Bottom at 438, above the enemy's top at 440.
			s.player.X, s.player.Y, s.player.VY = 300, 384, 700

			events := s.Step(tc.dt)

			if s.State() != StatePlaying || len(gate.opens) != 0 {
				t.Fatalf("State() = %s, expected a stomp, not a death", s.State())
			}
			if len(s.Enemies()) != 0 || countEvents(events, EventStomp) != 1 {
				t.Errorf("enemies = %d, stomp events = %d", len(s.Enemies()), countEvents(events, EventStomp))
			}
		})
	}
}

func TestLevelChangeWaitsForQuiz(t *testing.T) {
	s, gate := newTestSession(t, flatLevel(1000), flatLevel(1200))
	s.Die()
	if s.State() != StateDeadPendingQuiz || len(gate.opens) != 1 {
		t.Fatalf("State() = %s, expected a pending quiz", s.State())
	}

	if err := s.StartLevel(1); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartLevel() during quiz = %v, expected ErrInvalidTransition", err)
	}
	if err := s.AdvanceLevel(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("AdvanceLevel() during quiz = %v, expected ErrInvalidTransition", err)
	}
	s.ResetLevel(true)
	if s.State() != StateDeadPendingQuiz || s.LevelIndex() != 0 {
		t.Errorf("State() = %s, level = %d, quiz should still be pending on level 0", s.State(), s.LevelIndex())
	}

	if err := s.AfterQuiz(false); err != nil {
		t.Fatalf("AfterQuiz() failed: %v", err)
	}
	if s.State() != StatePlaying || s.Stats().Wrong != 1 {
		t.Errorf("State() = %s, stats = %+v, expected a resolved wrong answer", s.State(), s.Stats())
	}
}

func TestCheckpointSkipsHazardLanding(t *testing.T) {
	tests := []struct {
		name    string
		hazards []Hazard
		wantY   float64
	}{
		{"clear ground", nil, 426},
		{"spikes under the landing", []Hazard{{Box: core.NewBox(95, 465, 60, 15)}}, 380},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := flatLevel(1000)
			lvl.StartY = 380
			lvl.Hazards = tc.hazards
			s, _ := newTestSession(t, lvl)
			s.player.Invulnerable = 5

			for i := 0; i < 60 && !s.Player().OnGround; i++ {
				s.Step(dt)
			}
			p := s.Player()
			if !p.OnGround {
				t.Fatal("player never landed")
			}
			if p.CheckpointX != 100 || p.CheckpointY != tc.wantY {
				t.Errorf("checkpoint = (%f, %f), expected (100, %f)", p.CheckpointX, p.CheckpointY, tc.wantY)
			}
		})
	}
}
