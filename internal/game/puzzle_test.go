package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func statuses(wc WordCheck) []Status {
	out := make([]Status, len(wc))
	for i, c := range wc {
		out[i] = c.Status
	}
	return out
}

func TestCheck(t *testing.T) {
	p := FromWord("abc")

	cases := []struct {
		name  string
		guess string
		want  []Status
	}{
		{"exact", "abc", []Status{ExactMatch, ExactMatch, ExactMatch}},
		{"all absent", "def", []Status{Absent, Absent, Absent}},
		{"all wrong place", "cab", []Status{PresentWrongPosition, PresentWrongPosition, PresentWrongPosition}},
		{"mixed", "bad", []Status{PresentWrongPosition, PresentWrongPosition, Absent}},
		{"trailing absent", "abz", []Status{ExactMatch, ExactMatch, Absent}},
		// each copy of a letter is scored on its own, no multiplicity cap
		{"repeated letter", "aaa", []Status{ExactMatch, PresentWrongPosition, PresentWrongPosition}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wc, err := p.Check(tc.guess)
			require.NoError(t, err)
			assert.Len(t, wc, len(tc.guess))
			assert.Equal(t, tc.guess, wc.Word())
			assert.Equal(t, tc.want, statuses(wc))
		})
	}
}

func TestCheckLowercasesGuess(t *testing.T) {
	p := FromWord("abc")

	upper, err := p.Check("ABC")
	require.NoError(t, err)
	lower, err := p.Check("abc")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	assert.Equal(t, "abc", upper.Word())
	assert.True(t, p.IsSolved(upper))
}

func TestCheckInvalidLength(t *testing.T) {
	p := FromWord("abc")

	_, err := p.Check("abcd")
	assert.True(t, errors.Is(err, ErrInvalidLength))
	_, err = p.Check("ab")
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestCheckCountsRunes(t *testing.T) {
	p := FromWord("ñandú")
	assert.Equal(t, 5, p.Len())

	wc, err := p.Check("NANDU")
	require.NoError(t, err)
	assert.Equal(t, []Status{PresentWrongPosition, ExactMatch, ExactMatch, ExactMatch, Absent}, statuses(wc))
}

func TestIsSolved(t *testing.T) {
	p := FromWord("abc")

	wc, _ := p.Check("abc")
	assert.True(t, p.IsSolved(wc))
	wc, _ = p.Check("abz")
	assert.False(t, p.IsSolved(wc))
	assert.False(t, p.IsSolved(WordCheck{}))
}

func TestNewNoWordsForLength(t *testing.T) {
	d := words.Build([]string{"abc", "def"})

	_, err := New(4, d, NewRand(1))
	assert.ErrorIs(t, err, ErrNoWordsForLength)
}

func TestNewPicksFromBucket(t *testing.T) {
	d := words.Build([]string{"def", "asd", "abc", "xyz", "ab"})
	bucket, _ := d.WordsOfLength(3)

	for i := 0; i < 50; i++ {
		p, err := New(3, d, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Len())
		assert.True(t, bucket.Contains(p.Answer()))
	}
}

func TestNewIsRandom(t *testing.T) {
	d := words.Build([]string{"def", "asd", "abc", "xyz"})

	for i := 0; i < 1000; i++ {
		p1, err := New(3, d, nil)
		require.NoError(t, err)
		p2, err := New(3, d, nil)
		require.NoError(t, err)
		if p1.Answer() != p2.Answer() {
			return
		}
	}
	t.Fatal("two puzzles never differed")
}

func TestNewSeedIsReproducible(t *testing.T) {
	d := words.Build([]string{"def", "asd", "abc", "xyz"})

	p1, _ := New(3, d, NewRand(42))
	p2, _ := New(3, d, NewRand(42))
	assert.Equal(t, p1.Answer(), p2.Answer())
}

func TestWordCheckJSON(t *testing.T) {
	wc, _ := FromWord("abc").Check("abz")

	b, err := json.Marshal(wc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"char":"a","status":"exact"},{"char":"b","status":"exact"},{"char":"z","status":"absent"}]`, string(b))

	var back WordCheck
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, wc, back)
	assert.Equal(t, "==.", back.String())
}
