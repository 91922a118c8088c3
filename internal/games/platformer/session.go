package platformer

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/core"
)

// State is the discrete session state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateDeadPendingQuiz
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StatePlaying:
		return "PLAYING"
	case StateDeadPendingQuiz:
		return "DEAD_PENDING_QUIZ"
	default:
		return "UNKNOWN"
	}
}

// transitions lists the states reachable from each state. A death leaves
// DEAD_PENDING_QUIZ for PLAYING only through AfterQuiz.
var transitions = map[State][]State{
	StateMenu:            {StatePlaying},
	StatePlaying:         {StatePlaying, StateDeadPendingQuiz, StateMenu},
	StateDeadPendingQuiz: {StatePlaying, StateMenu},
}

var (
	// ErrNoPendingQuiz is returned by AfterQuiz when no death awaits a quiz result.
	ErrNoPendingQuiz = errors.New("platformer: no pending quiz")
	// ErrInvalidTransition is returned for a state change the machine does not allow.
	ErrInvalidTransition = errors.New("platformer: invalid transition")
)

// QuizGate is the external collaborator shown on death.
// An error from Open resolves the death as a wrong answer.
type QuizGate interface {
	Open(level int) error
}

// Stats are the run counters.
type Stats struct {
	Score   int
	Level   int // 1-based
	Correct int
	Wrong   int
}

// Session owns one platformer run: the live copy of the current level,
// the player, the camera and the state machine.
type Session struct {
	cfg      config.PlatformerConfig
	levels   LevelSource
	listener Listener
	gate     QuizGate

	state  State
	paused bool
	index  int
	level  *Level

	platforms []Platform
	coins     []Coin
	enemies   []Enemy
	player    Player
	camera    float64
	elapsed   float64
	input     input

	score   int
	correct int
	wrong   int

	pending []Event
}

// Option configures a Session.
type Option func(*Session)

// WithListener registers the notification sink.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithQuizGate registers the quiz collaborator opened on death.
func WithQuizGate(g QuizGate) Option {
	return func(s *Session) { s.gate = g }
}

// NewSession creates a session in the MENU state positioned on the first level.
func NewSession(cfg config.PlatformerConfig, levels LevelSource, opts ...Option) *Session {
	if levels == nil {
		levels = Levels(nil)
	}
	s := &Session{
		cfg:    cfg,
		levels: levels,
		state:  StateMenu,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(0)
	s.reset(true)
	return s
}

func (s *Session) enter(to State) error {
	for _, allowed := range transitions[s.state] {
		if allowed == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
}

// load points the session at the template for index, wrapping out-of-range values.
func (s *Session) load(index int) {
	n := s.levels.Count()
	if n > 0 {
		index %= n
		if index < 0 {
			index += n
		}
	} else {
		index = 0
	}
	s.index = index
	s.level = s.levels.Level(index)
}

// StartLevel begins play on a level. Starting from the menu also clears the run counters.
func (s *Session) StartLevel(index int) error {
	full := s.state == StateMenu
	if err := s.changeLevel(); err != nil {
		return err
	}
	s.load(index)
	s.reset(full)
	return nil
}

// ResetLevel rebuilds the live coins and enemies from the template, puts the player
// at the level start and resumes play. A full reset also clears score and quiz counters.
// It does nothing while a death awaits its quiz.
func (s *Session) ResetLevel(full bool) {
	if s.state == StateDeadPendingQuiz {
		return
	}
	s.reset(full)
	if s.state != StatePlaying {
		_ = s.enter(StatePlaying)
	}
}

// changeLevel enters PLAYING for a level change, refusing a pending quiz.
func (s *Session) changeLevel() error {
	if s.state == StateDeadPendingQuiz {
		return fmt.Errorf("%w: %s -> %s (quiz pending)", ErrInvalidTransition, s.state, StatePlaying)
	}
	return s.enter(StatePlaying)
}

func (s *Session) reset(full bool) {
	lvl := s.level
	s.platforms = append(s.platforms[:0], lvl.Platforms...)
	s.coins = append(s.coins[:0], lvl.Coins...)
	s.enemies = append(s.enemies[:0], lvl.Enemies...)

	pc := s.cfg.Player
	s.player = Player{
		Box:         core.NewBox(lvl.StartX, lvl.StartY, pc.Width, pc.Height),
		Facing:      1,
		CheckpointX: lvl.StartX,
		CheckpointY: lvl.StartY,
		carrier:     -1,
	}
	s.player.jumpHeld = s.input.jump
	s.camera = 0
	s.elapsed = 0
	s.paused = false

	if full {
		s.score, s.correct, s.wrong = 0, 0, 0
	}
}

// Step advances the simulation by dt seconds and returns the events since the last call.
// Nothing moves unless the state is PLAYING and the session is not paused.
func (s *Session) Step(dt float64) []Event {
	if s.state == StatePlaying && !s.paused {
		if math.IsNaN(dt) || dt < 0 {
			dt = 0
		}
		dt = math.Min(dt, s.cfg.Physics.MaxFrameDelta)
		if dt > 0 {
			s.simulate(dt)
		}
	}
	out := s.pending
	s.pending = nil
	return out
}

// SetInput records a held or released control.
func (s *Session) SetInput(a core.Action, pressed bool) {
	switch a {
	case core.ActionLeft:
		s.input.left = pressed
	case core.ActionRight:
		s.input.right = pressed
	case core.ActionJump:
		s.input.jump = pressed
	}
}

// SetAnalogAxis sets the horizontal analog value, clamped to [-1, 1].
func (s *Session) SetAnalogAxis(v float64) {
	if math.IsNaN(v) {
		v = 0
	}
	s.input.axis = core.ClampF(v, -1, 1)
}

// Die freezes the simulation and opens the quiz. Calling it while not PLAYING does nothing.
func (s *Session) Die() {
	if s.state != StatePlaying {
		return
	}
	if err := s.enter(StateDeadPendingQuiz); err != nil {
		return
	}
	s.paused = false
	s.emit(EventDeath)

	if s.gate == nil || s.gate.Open(s.index+1) != nil {
		_ = s.AfterQuiz(false)
	}
}

// AfterQuiz resolves a pending death. Success respawns at the checkpoint with a short
// invulnerability; failure applies the penalty and restarts the level.
func (s *Session) AfterQuiz(success bool) error {
	if s.state != StateDeadPendingQuiz {
		return ErrNoPendingQuiz
	}

	if !success {
		s.wrong++
		s.score = max(0, s.score-s.cfg.Scoring.WrongAnswerPenalty)
		s.reset(false)
		if err := s.enter(StatePlaying); err != nil {
			return err
		}
		s.emit(EventLevelReset)
		return nil
	}

	s.correct++
	p := &s.player
	p.X = p.CheckpointX
	p.Y = p.CheckpointY - s.cfg.Player.RespawnLift
	p.VX, p.VY = 0, 0
	p.OnGround = false
	p.carrier = -1
	p.Invulnerable = s.cfg.Player.Invulnerable
	if err := s.enter(StatePlaying); err != nil {
		return err
	}
	s.emit(EventRespawn)
	return nil
}

// AdvanceLevel moves to the next level. After the last level the campaign wraps
// to the first one and the run counters are cleared.
func (s *Session) AdvanceLevel() error {
	if err := s.changeLevel(); err != nil {
		return err
	}
	next := s.index + 1
	if next >= s.levels.Count() {
		final := s.Stats()
		s.load(0)
		s.reset(true)
		s.pending = append(s.pending, Event{Kind: EventRunWrapped, Level: final.Level, Final: &final})
		return nil
	}
	s.load(next)
	s.reset(false)
	return nil
}

// ReturnToMenu stops play.
func (s *Session) ReturnToMenu() error {
	return s.enter(StateMenu)
}

// TogglePause pauses or resumes a PLAYING session.
func (s *Session) TogglePause() {
	if s.state == StatePlaying {
		s.paused = !s.paused
	}
}

// ApplyTuning swaps the physics, player, enemy, camera, scoring and quiz sections
// of the config. Level layout is unaffected until new levels are generated.
func (s *Session) ApplyTuning(cfg config.PlatformerConfig) {
	s.cfg.Physics = cfg.Physics
	s.cfg.Player = cfg.Player
	s.cfg.Enemies = cfg.Enemies
	s.cfg.Camera = cfg.Camera
	s.cfg.Scoring = cfg.Scoring
	s.cfg.Quiz = cfg.Quiz
	s.player.W, s.player.H = cfg.Player.Width, cfg.Player.Height
}

func (s *Session) emit(kind EventKind) {
	x, y := s.player.Center()
	s.emitAt(kind, x, y)
}

func (s *Session) emitAt(kind EventKind, x, y float64) {
	e := Event{Kind: kind, Level: s.index + 1, X: x, Y: y}
	s.pending = append(s.pending, e)
	dispatch(s.listener, e)
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Paused reports whether play is paused.
func (s *Session) Paused() bool { return s.paused }

// Player returns the live player.
func (s *Session) Player() Player { return s.player }

// Platforms returns the live platforms after the latest step.
func (s *Session) Platforms() []Platform { return s.platforms }

// Hazards returns the level's spike strips.
func (s *Session) Hazards() []Hazard { return s.level.Hazards }

// Coins returns the live coins.
func (s *Session) Coins() []Coin { return s.coins }

// Enemies returns the live enemies.
func (s *Session) Enemies() []Enemy { return s.enemies }

// Camera returns the camera x offset.
func (s *Session) Camera() float64 { return s.camera }

// Level returns the current template.
func (s *Session) Level() *Level { return s.level }

// LevelIndex returns the zero-based level index.
func (s *Session) LevelIndex() int { return s.index }

// Elapsed returns the run time of the current level life in seconds.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Config returns the active configuration.
func (s *Session) Config() config.PlatformerConfig { return s.cfg }

// Stats returns the run counters.
func (s *Session) Stats() Stats {
	return Stats{Score: s.score, Level: s.index + 1, Correct: s.correct, Wrong: s.wrong}
}
