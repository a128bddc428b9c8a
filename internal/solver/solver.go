// internal/solver/solver.go
//
// Guess/feedback/filter loop.
//
// Per attempt:
//   1. Candidates = every dictionary word of the puzzle's length
//      (ErrEmptyDictionary if there are none).
//   2. Pick a guess, score it, stop if solved.
//   3. Fold the feedback into a fresh Chooser and filter the candidates.
//   4. Repeat; ErrSolutionNotFound once no candidate is left.
//
// A guess that is not the answer always violates the constraints its own
// feedback produces, so every unsolved round removes at least that guess and
// the loop ends within as many rounds as there are candidates.

package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	// ErrEmptyDictionary means the dictionary has no word of the puzzle's length.
	ErrEmptyDictionary = errors.New("empty dictionary")
	// ErrSolutionNotFound means the constraints eliminated every candidate.
	ErrSolutionNotFound = errors.New("solution not found")
)

// Round is one guess and what it did to the candidate set.
type Round struct {
	Number int            `json:"round"`
	Guess  string         `json:"guess"`
	Check  game.WordCheck `json:"check"`
	Before int            `json:"before"` // candidates when the guess was picked
	After  int            `json:"after"`  // candidates after filtering (1 when solved)
}

// Result describes a solve attempt. On failure Word is empty and Rounds holds
// everything played up to the failure.
type Result struct {
	Word     string        `json:"word,omitempty"`
	Strategy string        `json:"strategy"`
	Rounds   []Round       `json:"rounds"`
	Duration time.Duration `json:"durationNs"`
}

// Solver drives attempts with a guess-selection strategy.
// A Solver may be reused for many puzzles but not concurrently: the picker's
// random source is not synchronized.
type Solver struct {
	picker Picker
}

// New returns a Solver using picker; nil means uniform with a random seed.
func New(picker Picker) *Solver {
	if picker == nil {
		picker, _ = NewPicker(StrategyUniform, nil)
	}
	return &Solver{picker: picker}
}

// Strategy names the picker in use.
func (s *Solver) Strategy() string { return s.picker.Name() }

// Solve runs one attempt against p using the words in dict.
// The returned Result is non-nil even when err is set.
func (s *Solver) Solve(p *game.Puzzle, dict *words.Dictionary) (*Result, error) {
	start := time.Now()
	res := &Result{Strategy: s.picker.Name()}

	word, err := s.loop(p, dict, res)
	res.Duration = time.Since(start)
	res.Word = word

	metrics.ObserveSolve(res.Strategy, outcomeOf(err), len(res.Rounds), res.Duration)
	return res, err
}

func (s *Solver) loop(p *game.Puzzle, dict *words.Dictionary, res *Result) (string, error) {
	ws, ok := dict.WordsOfLength(p.Len())
	if !ok || ws.Len() == 0 {
		return "", fmt.Errorf("%w: length %d", ErrEmptyDictionary, p.Len())
	}
	candidates := ws.List()
	chooser := NewChooser(p.Len())

	for n := 1; ; n++ {
		if len(candidates) == 0 {
			return "", fmt.Errorf("%w after %d rounds", ErrSolutionNotFound, n-1)
		}
		guess := s.picker.Pick(candidates)
		check, err := p.Check(guess)
		if err != nil {
			return "", fmt.Errorf("check %q: %w", guess, err)
		}

		r := Round{Number: n, Guess: guess, Check: check, Before: len(candidates)}
		if p.IsSolved(check) {
			r.After = 1
			res.Rounds = append(res.Rounds, r)
			log.Debug().Int("round", n).Str("guess", guess).Msg("solved")
			return check.Word(), nil
		}

		chooser.Fold(check)
		candidates = chooser.Filter(candidates)
		r.After = len(candidates)
		res.Rounds = append(res.Rounds, r)

		log.Debug().
			Int("round", n).
			Str("guess", guess).
			Str("feedback", check.String()).
			Int("candidates", r.After).
			Msg("round")
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSolved
	case errors.Is(err, ErrSolutionNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrEmptyDictionary):
		return metrics.OutcomeEmptyDictionary
	}
	return metrics.OutcomeError
}
