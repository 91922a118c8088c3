// Package quiz implements the arithmetic interstitial that gates recovery
// from a death: question generation and a countdown gate with a one-shot result.
package quiz

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mathrun/internal/config"
	"github.com/vovakirdan/mathrun/internal/core"
)

// Op is an arithmetic operator.
type Op rune

const (
	OpAdd Op = '+'
	OpSub Op = '-'
)

// Question is one arithmetic question with shuffled answer options.
type Question struct {
	A, B    int
	Op      Op
	Answer  int
	Options []int
}

// NewQuestion builds a random addition or subtraction over operands in [0, MaxOperand].
// Subtraction always takes the smaller operand from the larger, so answers are never negative.
// Options are distinct, non-negative, contain the answer exactly once, and lie near it.
func NewQuestion(cfg config.QuizConfig, rng *rand.Rand) Question {
	a := core.RandInt(rng, 0, cfg.MaxOperand)
	b := core.RandInt(rng, 0, cfg.MaxOperand)

	q := Question{A: a, B: b, Op: OpAdd}
	if rng.Float64() < cfg.AddProbability {
		q.Answer = a + b
	} else {
		if a < b {
			a, b = b, a
		}
		q.A, q.B, q.Op = a, b, OpSub
		q.Answer = a - b
	}
	q.Options = options(q.Answer, cfg.OptionCount, cfg.OptionSpread, rng)
	return q
}

// options picks count distinct values around answer. The window grows upward
// when values near zero cannot supply enough candidates.
func options(answer, count, spread int, rng *rand.Rand) []int {
	count = max(count, 1)
	spread = max(spread, 1)

	lo := max(0, answer-spread)
	hi := answer + spread
	for hi-lo+1 < count {
		hi++
	}

	var pool []int
	for v := lo; v <= hi; v++ {
		if v != answer {
			pool = append(pool, v)
		}
	}
	core.Shuffle(rng, pool)

	out := append([]int{answer}, pool[:count-1]...)
	core.Shuffle(rng, out)
	return out
}

// Text renders the question for display.
func (q Question) Text() string {
	return fmt.Sprintf("%d %c %d = ?", q.A, q.Op, q.B)
}

// Correct reports whether option index i holds the answer.
func (q Question) Correct(i int) bool {
	return i >= 0 && i < len(q.Options) && q.Options[i] == q.Answer
}

// AnswerIndex returns the option index holding the answer.
func (q Question) AnswerIndex() int {
	for i, v := range q.Options {
		if v == q.Answer {
			return i
		}
	}
	return -1
}
