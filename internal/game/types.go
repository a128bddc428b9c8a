// internal/game/types.go
//
// Feedback types produced by scoring a guess against a hidden word.
// Defines:
//   - Status: per-letter result (exact/present/absent).
//   - CharCheck: one guessed character and its Status.
//   - WordCheck: the ordered feedback for a whole guess.

package game

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "exact":   letter is correct and in the correct position.
//   - "present": letter exists in the hidden word but not at this position.
//   - "absent":  letter does not occur in the hidden word at all.
type Status string

const (
	ExactMatch           Status = "exact"
	PresentWrongPosition Status = "present"
	Absent               Status = "absent"
)

// CharCheck pairs a guessed character with its Status.
type CharCheck struct {
	Char   rune   `json:"char"`
	Status Status `json:"status"`
}

// charCheckJSON is the wire shape: a rune would otherwise encode as a number.
type charCheckJSON struct {
	Char   string `json:"char"`
	Status Status `json:"status"`
}

func (c CharCheck) MarshalJSON() ([]byte, error) {
	return json.Marshal(charCheckJSON{Char: string(c.Char), Status: c.Status})
}

func (c *CharCheck) UnmarshalJSON(b []byte) error {
	var v charCheckJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r, _ := utf8.DecodeRuneInString(v.Char)
	c.Char, c.Status = r, v.Status
	return nil
}

// WordCheck is the per-position feedback for one guess, one entry per character.
type WordCheck []CharCheck

// Word reassembles the (lowercased) guess the feedback was produced for.
func (wc WordCheck) Word() string {
	var b strings.Builder
	for _, c := range wc {
		b.WriteRune(c.Char)
	}
	return b.String()
}

// IsSolved reports whether every position is an exact match.
func (wc WordCheck) IsSolved() bool {
	for _, c := range wc {
		if c.Status != ExactMatch {
			return false
		}
	}
	return true
}

// String renders the feedback as a compact pattern: "=" exact, "~" present, "." absent.
func (wc WordCheck) String() string {
	var b strings.Builder
	for _, c := range wc {
		switch c.Status {
		case ExactMatch:
			b.WriteByte('=')
		case PresentWrongPosition:
			b.WriteByte('~')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}
