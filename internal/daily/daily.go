// internal/daily/daily.go
//
// Deterministic "puzzle of the day".
// The seed is a keyed BLAKE2b-256 of the UTC date key, so every process
// sharing a salt and dictionary agrees on the day's word without storing it.

package daily

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a 64-bit seed from the date and salt.
func Seed(date time.Time, salt string) uint64 {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// only reachable with an over-long key, which is hashed down above
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}

// Puzzle builds the day's puzzle of the given length.
func Puzzle(date time.Time, salt string, length int, dict *words.Dictionary) (*game.Puzzle, error) {
	p, err := game.New(length, dict, game.NewRand(Seed(date, salt)))
	if err != nil {
		return nil, fmt.Errorf("daily %s: %w", DateKey(date), err)
	}
	return p, nil
}
