// internal/solver/chooser.go
//
// Chooser accumulates feedback across rounds and filters candidate words.
//
// Constraints kept:
//   - fixed:    position → letter known to be there (ExactMatch).
//   - excluded: position → letters known NOT to be there (PresentWrongPosition).
//   - required: letters known to occur somewhere (PresentWrongPosition).
//   - absent:   letters known not to occur anywhere (Absent).
//
// Invariant: a letter with a positive fact (fixed or required) is never in
// absent at the same time. Positive facts erase a previous absent entry and an
// absent fact retracts earlier fixed/required entries for that letter.

package solver

import (
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Chooser is owned by a single solve attempt; it is not safe for concurrent use.
type Chooser struct {
	length   int
	fixed    map[int]rune
	excluded map[int]map[rune]struct{}
	required map[rune]struct{}
	absent   map[rune]struct{}
}

// NewChooser returns an empty accumulator for words of the given length.
func NewChooser(length int) *Chooser {
	return &Chooser{
		length:   length,
		fixed:    make(map[int]rune),
		excluded: make(map[int]map[rune]struct{}),
		required: make(map[rune]struct{}),
		absent:   make(map[rune]struct{}),
	}
}

// AddExact records that pos holds ch.
func (c *Chooser) AddExact(pos int, ch rune) {
	c.fixed[pos] = ch
	delete(c.absent, ch)
}

// AddWrongPosition records that ch is in the word but not at pos.
func (c *Chooser) AddWrongPosition(pos int, ch rune) {
	if c.excluded[pos] == nil {
		c.excluded[pos] = make(map[rune]struct{})
	}
	c.excluded[pos][ch] = struct{}{}
	c.required[ch] = struct{}{}
	delete(c.absent, ch)
}

// AddAbsent records that ch does not occur, retracting any fixed position or
// requirement that named it.
func (c *Chooser) AddAbsent(ch rune) {
	for pos, r := range c.fixed {
		if r == ch {
			delete(c.fixed, pos)
		}
	}
	delete(c.required, ch)
	c.absent[ch] = struct{}{}
}

// Fold applies every position of check, left to right.
func (c *Chooser) Fold(check game.WordCheck) {
	for pos, cc := range check {
		switch cc.Status {
		case game.ExactMatch:
			c.AddExact(pos, cc.Char)
		case game.PresentWrongPosition:
			c.AddWrongPosition(pos, cc.Char)
		case game.Absent:
			c.AddAbsent(cc.Char)
		}
	}
}

// Allows reports whether word is consistent with everything folded so far.
func (c *Chooser) Allows(word string) bool {
	if utf8.RuneCountInString(word) != c.length {
		return false
	}
	runes := []rune(word)
	for pos, ch := range c.fixed {
		if pos >= len(runes) || runes[pos] != ch {
			return false
		}
	}
	for pos, chs := range c.excluded {
		if pos >= len(runes) {
			continue
		}
		if _, ok := chs[runes[pos]]; ok {
			return false
		}
	}
	if len(c.required) > 0 || len(c.absent) > 0 {
		has := make(map[rune]struct{}, len(runes))
		for _, r := range runes {
			has[r] = struct{}{}
		}
		for ch := range c.required {
			if _, ok := has[ch]; !ok {
				return false
			}
		}
		for ch := range c.absent {
			if _, ok := has[ch]; ok {
				return false
			}
		}
	}
	return true
}

// Filter returns the candidates that Allows accepts, preserving order.
// The result never grows beyond the input.
func (c *Chooser) Filter(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if c.Allows(w) {
			out = append(out, w)
		}
	}
	return out
}

// Fixed returns a copy of the known positions.
func (c *Chooser) Fixed() map[int]rune {
	out := make(map[int]rune, len(c.fixed))
	for k, v := range c.fixed {
		out[k] = v
	}
	return out
}

// IsAbsent reports whether ch is currently recorded as absent.
func (c *Chooser) IsAbsent(ch rune) bool {
	_, ok := c.absent[ch]
	return ok
}

// IsRequired reports whether ch is currently recorded as present somewhere.
func (c *Chooser) IsRequired(ch rune) bool {
	_, ok := c.required[ch]
	return ok
}

// IsExcludedAt reports whether ch is ruled out at pos.
func (c *Chooser) IsExcludedAt(pos int, ch rune) bool {
	_, ok := c.excluded[pos][ch]
	return ok
}
