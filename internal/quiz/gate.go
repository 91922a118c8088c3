package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mathrun/internal/config"
)

// RevealDelay is how long the chosen option stays highlighted before the result is delivered.
const RevealDelay = 0.8

var (
	// ErrGateClosed is returned when answering with no open question.
	ErrGateClosed = errors.New("quiz: gate is closed")
	// ErrGateBusy is returned when opening a gate that already holds a question.
	ErrGateBusy = errors.New("quiz: gate already open")
	// ErrInvalidOption is returned for an option index outside the question.
	ErrInvalidOption = errors.New("quiz: invalid option")
)

// Result is the outcome of one question.
type Result struct {
	Level    int
	Correct  bool
	TimedOut bool
}

// Gate shows one question at a time and delivers exactly one Result per Open.
// It is driven by Tick from the frame loop and consumed with Poll.
type Gate struct {
	cfg config.QuizConfig
	rng *rand.Rand

	open      bool
	level     int
	question  Question
	remaining float64
	selected  int
	reveal    float64
	pending   Result

	results chan Result
}

// NewGate creates a closed gate.
func NewGate(cfg config.QuizConfig, rng *rand.Rand) *Gate {
	return &Gate{
		cfg:      cfg,
		rng:      rng,
		selected: -1,
		results:  make(chan Result, 1),
	}
}

// Open presents a fresh question for the given level number.
func (g *Gate) Open(level int) error {
	if g.open {
		return ErrGateBusy
	}
	// Drop a result nobody collected.
	select {
	case <-g.results:
	default:
	}

	g.open = true
	g.level = level
	g.question = NewQuestion(g.cfg, g.rng)
	g.remaining = g.cfg.TimeLimit
	g.selected = -1
	g.reveal = 0
	return nil
}

// Answer selects option i. The result is delivered after RevealDelay of ticks.
func (g *Gate) Answer(i int) error {
	if !g.open || g.selected >= 0 {
		return ErrGateClosed
	}
	if i < 0 || i >= len(g.question.Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, i)
	}
	g.selected = i
	g.reveal = RevealDelay
	g.pending = Result{Level: g.level, Correct: g.question.Correct(i)}
	return nil
}

// Tick advances the countdown by dt seconds. Running out of time counts as a wrong answer.
func (g *Gate) Tick(dt float64) {
	if !g.open {
		return
	}
	if g.selected >= 0 {
		g.reveal -= dt
		if g.reveal <= 0 {
			g.resolve(g.pending)
		}
		return
	}
	if g.cfg.TimeLimit <= 0 {
		return
	}
	g.remaining -= dt
	if g.remaining <= 0 {
		g.remaining = 0
		g.resolve(Result{Level: g.level, TimedOut: true})
	}
}

// SetConfig replaces the quiz settings used from the next Open on.
func (g *Gate) SetConfig(cfg config.QuizConfig) {
	g.cfg = cfg
}

// Cancel resolves an open question at once. A chosen option still being
// revealed keeps its outcome; an unanswered question counts as wrong.
func (g *Gate) Cancel() {
	switch {
	case !g.open:
	case g.selected >= 0:
		g.resolve(g.pending)
	default:
		g.resolve(Result{Level: g.level})
	}
}

// Poll returns the delivered result, if any, without blocking.
func (g *Gate) Poll() (Result, bool) {
	select {
	case r := <-g.results:
		return r, true
	default:
		return Result{}, false
	}
}

func (g *Gate) resolve(r Result) {
	g.open = false
	g.reveal = 0
	g.results <- r
}

// IsOpen reports whether a question is being shown.
func (g *Gate) IsOpen() bool { return g.open }

// Question returns the current question.
func (g *Gate) Question() Question { return g.question }

// Remaining returns the seconds left to answer.
func (g *Gate) Remaining() float64 { return g.remaining }

// TimeLimit returns the configured limit; zero means untimed.
func (g *Gate) TimeLimit() float64 { return g.cfg.TimeLimit }

// Level returns the level number the question was opened for.
func (g *Gate) Level() int { return g.level }

// Selected returns the chosen option while its result is being revealed.
func (g *Gate) Selected() (int, bool) {
	return g.selected, g.open && g.selected >= 0
}
