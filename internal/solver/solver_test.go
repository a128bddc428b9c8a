package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// scripted replays a fixed guess sequence, falling back to the first candidate.
type scripted struct {
	guesses []string
	seen    [][]string
}

func (s *scripted) Pick(candidates []string) string {
	s.seen = append(s.seen, append([]string(nil), candidates...))
	if len(s.guesses) > 0 {
		g := s.guesses[0]
		s.guesses = s.guesses[1:]
		return g
	}
	return candidates[0]
}

func (s *scripted) Name() string { return "scripted" }

func TestSolveScenario(t *testing.T) {
	d := words.Build([]string{"abc", "def", "abz"})
	pick := &scripted{guesses: []string{"abz"}}

	res, err := New(pick).Solve(game.FromWord("abc"), d)
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Word)
	require.Len(t, res.Rounds, 2)

	first := res.Rounds[0]
	assert.Equal(t, "abz", first.Guess)
	assert.Equal(t, "==.", first.Check.String())
	assert.Equal(t, 3, first.Before)
	assert.Equal(t, 1, first.After)
	assert.Equal(t, []string{"abc"}, pick.seen[1])
}

func TestSolveEmptyDictionary(t *testing.T) {
	d := words.Build([]string{"abcd"})

	res, err := New(nil).Solve(game.FromWord("abc"), d)
	assert.ErrorIs(t, err, ErrEmptyDictionary)
	require.NotNil(t, res)
	assert.Empty(t, res.Word)
	assert.Empty(t, res.Rounds)
}

func TestSolveNotFoundWhenAnswerMissing(t *testing.T) {
	// the hidden word is not in the dictionary, so constraints eventually empty the set
	d := words.Build([]string{"abd", "abe"})

	res, err := New(NewUniformPicker(game.NewRand(1))).Solve(game.FromWord("abc"), d)
	assert.ErrorIs(t, err, ErrSolutionNotFound)
	assert.Empty(t, res.Word)
	assert.NotEmpty(t, res.Rounds)
}

func TestSolveEveryWord(t *testing.T) {
	d, err := words.Default()
	require.NoError(t, err)

	for _, strategy := range []string{StrategyUniform, StrategyFrequency} {
		t.Run(strategy, func(t *testing.T) {
			for _, n := range d.Lengths() {
				ws, _ := d.WordsOfLength(n)
				for i, hidden := range ws.List() {
					picker, err := NewPicker(strategy, game.NewRand(uint64(i)))
					require.NoError(t, err)

					res, err := New(picker).Solve(game.FromWord(hidden), d)
					require.NoError(t, err, "hidden %q", hidden)
					assert.Equal(t, hidden, res.Word)
					assert.LessOrEqual(t, len(res.Rounds), ws.Len())
					assert.Equal(t, strategy, res.Strategy)

					prev := ws.Len()
					for _, r := range res.Rounds {
						assert.Equal(t, prev, r.Before)
						assert.LessOrEqual(t, r.After, r.Before)
						assert.GreaterOrEqual(t, r.After, 1, "hidden word must survive")
						prev = r.After
					}
				}
			}
		})
	}
}

func TestSolveSeedIsReproducible(t *testing.T) {
	d, err := words.Default()
	require.NoError(t, err)
	p, err := game.New(5, d, game.NewRand(3))
	require.NoError(t, err)

	a, err := New(NewUniformPicker(game.NewRand(99))).Solve(p, d)
	require.NoError(t, err)
	b, err := New(NewUniformPicker(game.NewRand(99))).Solve(p, d)
	require.NoError(t, err)

	require.Equal(t, len(a.Rounds), len(b.Rounds))
	for i := range a.Rounds {
		assert.Equal(t, a.Rounds[i].Guess, b.Rounds[i].Guess)
	}
}

func TestNewPicker(t *testing.T) {
	p, err := NewPicker("", nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyUniform, p.Name())

	p, err = NewPicker("Frequency", nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyFrequency, p.Name())

	_, err = NewPicker("entropy", nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestFrequencyPickerPrefersCommonLetters(t *testing.T) {
	p := &FrequencyPicker{rng: game.NewRand(1)}
	// 'a' and 'b' dominate; "abx" covers both, "qqq" covers nothing common
	got := p.Pick([]string{"qqq", "abx", "aby", "abz", "bay"})
	assert.Contains(t, []string{"abx", "aby", "abz", "bay"}, got)
	assert.NotEqual(t, "qqq", got)
}
