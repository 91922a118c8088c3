// Package platformer implements Math Run: a side-scrolling platformer whose
// deaths are recovered by answering an arithmetic quiz.
//
// The engine is split into a level generator (Generator, Roster), a collision
// resolver and a state machine (Session). Game adapts a Session and a quiz
// gate to the registry.Game interface used by the terminal platform.
package platformer

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/core"
	"github.com/vovakirdan/mathrun/internal/quiz"
	"github.com/vovakirdan/mathrun/internal/registry"
)

// Mode selects the rule set of a run.
type Mode int

const (
	ModeClassic  Mode = iota // Timed quiz, wrong answers cost points
	ModePractice             // Untimed quiz, no penalty
)

// String returns the mode name stored with runs.
func (m Mode) String() string {
	if m == ModePractice {
		return "practice"
	}
	return "classic"
}

// ParseMode maps a stored or typed name to a mode. Unknown names are classic.
func ParseMode(s string) Mode {
	if s == "practice" {
		return ModePractice
	}
	return ModeClassic
}

func init() {
	registry.Register("mathrun", func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register("mathrun_practice", func() registry.Game {
		return New(ModePractice)
	})
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads the config the way Reset does, including preset and mode rules.
func LoadConfig(mode Mode) (config.PlatformerConfig, error) {
	cfg, err := config.Load(configPath)
	config.ApplyPreset(&cfg, difficultyPreset)
	applyMode(&cfg, mode)
	return cfg, err
}

func applyMode(cfg *config.PlatformerConfig, mode Mode) {
	if mode == ModePractice {
		cfg.Quiz.TimeLimit = 0
		cfg.Scoring.WrongAnswerPenalty = 0
	}
}

// Game implements registry.Game on top of a Session.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.PlatformerConfig
	rng     *rand.Rand
	roster  *Roster
	gate    *quiz.Gate
	session *Session
	events  []Event
	ticks   int
}

// New creates a game in the given mode. Call Reset before use.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return "mathrun_practice"
	}
	return "mathrun"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Math Run (Practice)"
	}
	return "Math Run"
}

// Mode returns the rule set.
func (g *Game) Mode() Mode {
	return g.mode
}

// ModeName returns the name runs of this mode are stored under.
func (g *Game) ModeName() string {
	return g.mode.String()
}

// Reset generates a fresh campaign and starts on the first level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig(g.mode)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
		config.ApplyPreset(&cfg, difficultyPreset)
		applyMode(&cfg, g.mode)
	}
	g.cfg = cfg

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.roster = NewRoster(NewGenerator(cfg, g.rng), cfg.Generator.Levels)
	g.gate = quiz.NewGate(cfg.Quiz, g.rng)
	g.session = NewSession(cfg, g.roster, WithQuizGate(g.gate))
	_ = g.session.StartLevel(0)
	g.events = nil
	g.ticks = 0
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.ticks++
	s := g.session
	secs := dt.Seconds()

	s.SetInput(core.ActionLeft, in.Has(core.ActionLeft))
	s.SetInput(core.ActionRight, in.Has(core.ActionRight))
	s.SetInput(core.ActionJump, in.Has(core.ActionJump))
	s.SetAnalogAxis(in.Axis)

	switch s.State() {
	case StatePlaying:
		if in.Has(core.ActionPause) {
			s.TogglePause()
		}
		if in.Has(core.ActionRestart) && !s.Paused() {
			s.ResetLevel(false)
		}
	case StateDeadPendingQuiz:
		for a := core.ActionAnswer1; a <= core.ActionAnswer4; a++ {
			if i, ok := a.AnswerIndex(); ok && in.Has(a) {
				_ = g.gate.Answer(i)
				break
			}
		}
		g.gate.Tick(secs)
		if res, ok := g.gate.Poll(); ok {
			_ = s.AfterQuiz(res.Correct)
		}
	}

	result := core.StepResult{}
	for _, e := range s.Step(secs) {
		if e.Kind == EventRunWrapped && e.Final != nil {
			result.RunEnded = true
			result.Final = core.GameState{
				Score:   e.Final.Score,
				Level:   e.Final.Level,
				Correct: e.Final.Correct,
				Wrong:   e.Final.Wrong,
			}
		}
		g.events = append(g.events, e)
	}
	result.State = g.State()
	return result
}

// Abandon resolves a question still on screen before the run is left, so the
// saved counters include it. A chosen answer keeps its outcome.
func (g *Game) Abandon() {
	if g.session == nil || g.session.State() != StateDeadPendingQuiz {
		return
	}
	g.gate.Cancel()
	if res, ok := g.gate.Poll(); ok {
		_ = g.session.AfterQuiz(res.Correct)
	}
	g.events = append(g.events, g.session.Step(0)...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Stats()
	return core.GameState{
		Score:        st.Score,
		Level:        st.Level,
		Correct:      st.Correct,
		Wrong:        st.Wrong,
		Paused:       g.session.Paused(),
		AwaitingQuiz: g.session.State() == StateDeadPendingQuiz,
	}
}

// DrainEvents returns and forgets the events produced since the last call.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

// ApplyConfig hot-swaps tuning values on the running session.
func (g *Game) ApplyConfig(cfg config.PlatformerConfig) {
	config.ApplyPreset(&cfg, difficultyPreset)
	applyMode(&cfg, g.mode)
	g.cfg = cfg
	if g.session != nil {
		g.session.ApplyTuning(cfg)
	}
	if g.gate != nil {
		g.gate.SetConfig(cfg.Quiz)
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Gate exposes the quiz gate.
func (g *Game) Gate() *quiz.Gate {
	return g.gate
}

// Levels returns the campaign count.
func (g *Game) Levels() int {
	if g.roster == nil {
		return 0
	}
	return g.roster.Count()
}
