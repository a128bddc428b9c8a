package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Strategy names accepted by NewPicker.
const (
	StrategyUniform   = "uniform"
	StrategyFrequency = "frequency"
)

// ErrUnknownStrategy is returned by NewPicker for an unrecognized name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Picker selects the next guess from a non-empty candidate list.
type Picker interface {
	Pick(candidates []string) string
	Name() string
}

// NewPicker builds the picker for strategy. An empty name means uniform.
// A nil rng is replaced with a freshly seeded one.
func NewPicker(strategy string, rng *rand.Rand) (Picker, error) {
	if rng == nil {
		rng = game.NewRand(game.RandomSeed())
	}
	switch strings.ToLower(strategy) {
	case "", StrategyUniform:
		return &UniformPicker{rng: rng}, nil
	case StrategyFrequency:
		return &FrequencyPicker{rng: rng}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, strategy)
}

// UniformPicker chooses uniformly at random.
type UniformPicker struct{ rng *rand.Rand }

// NewUniformPicker wraps rng in a UniformPicker.
func NewUniformPicker(rng *rand.Rand) *UniformPicker { return &UniformPicker{rng: rng} }

func (u *UniformPicker) Pick(candidates []string) string {
	return candidates[u.rng.IntN(len(candidates))]
}

func (u *UniformPicker) Name() string { return StrategyUniform }

// FrequencyPicker prefers the candidate whose distinct letters are most common
// among the current candidates. Ties are broken uniformly at random.
type FrequencyPicker struct{ rng *rand.Rand }

func (f *FrequencyPicker) Pick(candidates []string) string {
	freqs := words.CountLetters(candidates)
	best, bestScore := []string(nil), -1
	for _, w := range candidates {
		switch s := words.UniqueScore(freqs, w); {
		case s > bestScore:
			best, bestScore = append(best[:0], w), s
		case s == bestScore:
			best = append(best, w)
		}
	}
	return best[f.rng.IntN(len(best))]
}

func (f *FrequencyPicker) Name() string { return StrategyFrequency }
