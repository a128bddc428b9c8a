// internal/words/words.go
//
// Dictionary loading.
//
// Sources:
//   1. A file named by the caller (usually WORDS_FILE or --dict-path):
//      one word per line, any case, arbitrary surrounding whitespace.
//   2. The embedded default list from the assets package when no path is set.
//
// The embedded dictionary is built once (sync.Once) and shared.

package words

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Default returns the dictionary built from the embedded word list.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		raw, err := assets.DefaultWords()
		if err != nil {
			defaultErr = fmt.Errorf("words: read embedded list: %w", err)
			return
		}
		defaultDict = Build(raw)
	})
	return defaultDict, defaultErr
}

// Load builds a dictionary from path, or returns Default when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		d, err := Default()
		if err == nil {
			log.Debug().Int("words", d.Size()).Msg("using embedded dictionary")
		}
		return d, err
	}
	raw, err := readWordFile(path)
	if err != nil {
		return nil, err
	}
	d := Build(raw)
	log.Debug().Str("path", path).Int("words", d.Size()).Ints("lengths", d.Lengths()).Msg("dictionary loaded")
	return d, nil
}

// readWordFile returns the raw lines of a word file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return lines, nil
}
