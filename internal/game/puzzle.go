// internal/game/puzzle.go
//
// A single puzzle: one hidden word and the feedback oracle for guesses.
// Responsibilities:
//   - Pick the hidden word uniformly at random from the dictionary bucket
//     for the requested length.
//   - Score guesses position by position (see Check).
//
// Notes:
//   - A Puzzle is immutable after construction.
//   - Randomness comes from the caller's *rand.Rand so runs can be replayed
//     from a seed; pass nil to get a freshly seeded source.

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	// ErrNoWordsForLength is returned when the dictionary has no bucket for the length.
	ErrNoWordsForLength = errors.New("no words for length")
	// ErrInvalidLength is returned when a guess and the hidden word differ in length.
	ErrInvalidLength = errors.New("invalid guess length")
)

// Puzzle holds the hidden word for one game.
type Puzzle struct {
	word   string
	runes  []rune
	length int
}

// New picks a hidden word of the given length from dict.
func New(length int, dict *words.Dictionary, rng *rand.Rand) (*Puzzle, error) {
	ws, ok := dict.WordsOfLength(length)
	if !ok || ws.Len() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoWordsForLength, length)
	}
	if rng == nil {
		rng = NewRand(RandomSeed())
	}
	list := ws.List()
	return FromWord(list[rng.IntN(len(list))]), nil
}

// FromWord builds a puzzle around a known hidden word (lowercased).
// Used for fixed-answer runs and tests; it does not consult a dictionary.
func FromWord(word string) *Puzzle {
	w := strings.ToLower(word)
	r := []rune(w)
	return &Puzzle{word: w, runes: r, length: len(r)}
}

// Len is the hidden word's character count.
func (p *Puzzle) Len() int { return p.length }

// Answer reveals the hidden word.
func (p *Puzzle) Answer() string { return p.word }

// Check scores guess against the hidden word.
//
// The guess is lowercased first. For each position i, left to right:
//   - guess[i] == hidden[i]           → ExactMatch
//   - hidden contains guess[i] at all → PresentWrongPosition
//   - otherwise                       → Absent
//
// Positions are scored independently: a letter appearing once in the hidden
// word can be reported present for every copy of it in the guess.
func (p *Puzzle) Check(guess string) (WordCheck, error) {
	guess = strings.ToLower(guess)
	if n := utf8.RuneCountInString(guess); n != p.length {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, n, p.length)
	}

	out := make(WordCheck, 0, p.length)
	i := 0
	for _, g := range guess {
		st := Absent
		switch {
		case g == p.runes[i]:
			st = ExactMatch
		case strings.ContainsRune(p.word, g):
			st = PresentWrongPosition
		}
		out = append(out, CharCheck{Char: g, Status: st})
		i++
	}
	return out, nil
}

// IsSolved reports whether check is all exact matches.
func (p *Puzzle) IsSolved(check WordCheck) bool {
	return len(check) == p.length && check.IsSolved()
}
