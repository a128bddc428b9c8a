// assets/embed.go
//
// Embedded default dictionary used when no WORDS_FILE is configured.
// The list is raw input: the words package trims, lowercases, and groups it.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// DefaultWords returns the raw lines of the embedded word list,
// skipping blank lines and "#" comments.
func DefaultWords() ([]string, error) {
	f, err := FS.Open("words.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines reads one entry per line from r. Blank lines and lines starting
// with "#" are dropped; everything else is returned untouched so the caller
// decides how to normalize.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := sc.Text()
		t := strings.TrimSpace(s)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
