// internal/words/dictionary.go
//
// Immutable dictionary of known words, grouped by length.
// Responsibilities:
//   - Normalize raw input (trim, lowercase) and group by character count.
//   - Answer "which words have length L" for the puzzle and the solver.
//   - Keep per-length letter frequencies as an optional scoring aid.
//
// Notes:
//   - Lengths are counted in runes, not bytes, so "ñandú" has length 5.
//   - Nothing mutates a Dictionary after Build; it is safe to share between
//     goroutines without locking.

package words

import (
	"maps"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Words is the set of known words sharing one length.
type Words struct {
	list  []string            // sorted, no duplicates
	set   map[string]struct{} // membership lookup
	freqs map[rune]int        // letter -> occurrences across list
}

func newWords(set map[string]struct{}) *Words {
	list := make([]string, 0, len(set))
	for w := range set {
		list = append(list, w)
	}
	sort.Strings(list)
	return &Words{list: list, set: set, freqs: CountLetters(list)}
}

// List returns a copy of the words in lexical order.
func (w *Words) List() []string { return slices.Clone(w.list) }

// Len reports how many words of this length are known.
func (w *Words) Len() int { return len(w.list) }

// Contains reports whether word (already normalized) is in the set.
func (w *Words) Contains(word string) bool {
	_, ok := w.set[word]
	return ok
}

// Freqs returns a copy of the letter frequency table.
func (w *Words) Freqs() map[rune]int { return maps.Clone(w.freqs) }

// Freq sums the frequency of every character in word, repeats included.
func (w *Words) Freq(word string) int {
	n := 0
	for _, r := range word {
		n += w.freqs[r]
	}
	return n
}

// UniqueFreq is like Freq but counts each distinct character once.
func (w *Words) UniqueFreq(word string) int {
	return UniqueScore(w.freqs, word)
}

// UniqueScore sums freqs over the distinct characters of word.
func UniqueScore(freqs map[rune]int, word string) int {
	seen := make(map[rune]struct{}, len(word))
	n := 0
	for _, r := range word {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		n += freqs[r]
	}
	return n
}

// CountLetters tallies every character across list.
func CountLetters(list []string) map[rune]int {
	freqs := make(map[rune]int)
	for _, w := range list {
		for _, r := range w {
			freqs[r]++
		}
	}
	return freqs
}

// Dictionary maps a word length to the known words of that length.
type Dictionary struct {
	byLen map[int]*Words
}

// Build normalizes raw input and groups it by rune count.
// Each entry is trimmed and lowercased; entries that end up empty are dropped
// and duplicates collapse into one.
func Build(raw []string) *Dictionary {
	grouped := make(map[int]map[string]struct{})
	for _, s := range raw {
		w := Normalize(s)
		if w == "" {
			continue
		}
		n := utf8.RuneCountInString(w)
		if grouped[n] == nil {
			grouped[n] = make(map[string]struct{})
		}
		grouped[n][w] = struct{}{}
	}

	byLen := make(map[int]*Words, len(grouped))
	for n, set := range grouped {
		byLen[n] = newWords(set)
	}
	return &Dictionary{byLen: byLen}
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// WordsOfLength returns the words of the given length, or false if none were supplied.
func (d *Dictionary) WordsOfLength(length int) (*Words, bool) {
	w, ok := d.byLen[length]
	return w, ok
}

// Lengths returns every length with at least one word, ascending.
func (d *Dictionary) Lengths() []int {
	out := make([]int, 0, len(d.byLen))
	for n := range d.byLen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Size is the total number of distinct words across all lengths.
func (d *Dictionary) Size() int {
	n := 0
	for _, w := range d.byLen {
		n += w.Len()
	}
	return n
}
