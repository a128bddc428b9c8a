// internal/bench/bench.go
//
// Benchmark harness: many independent puzzle + solve attempts.
// Responsibilities:
//   - Fan attempts out over a bounded worker pool (errgroup).
//   - Give every attempt its own puzzle, solver and random sources; only the
//     dictionary is shared, and it is read-only.
//   - Count failed attempts instead of retrying them.
//
// Seeds: attempt i derives its puzzle and picker seeds from Options.Seed, so
// a run with a fixed seed replays exactly regardless of worker count.

package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const (
	defaultTries   = 10
	defaultWorkers = 4
	seedStride     = 0x9e3779b97f4a7c15
)

// Options configures a benchmark run. Zero values get defaults;
// a zero Seed draws a random one (recorded in the Run).
type Options struct {
	Length   int    `json:"length"`
	Tries    int    `json:"tries"`
	Workers  int    `json:"workers"`
	Seed     uint64 `json:"seed"`
	Strategy string `json:"strategy"`
}

// Run is the summary of one benchmark.
type Run struct {
	ID        string    `json:"id"`
	Length    int       `json:"length"`
	Strategy  string    `json:"strategy"`
	Seed      uint64    `json:"seed"`
	Workers   int       `json:"workers"`
	Tries     int       `json:"tries"`
	Solved    int       `json:"solved"`
	Failed    int       `json:"failed"`
	AvgRounds float64   `json:"avgRounds"`
	MaxRounds int       `json:"maxRounds"`
	MsPerTry  float64   `json:"msPerTry"`
	CreatedAt time.Time `json:"createdAt"`
}

// Runner executes benchmarks against one dictionary.
type Runner struct {
	dict *words.Dictionary
}

// NewRunner returns a Runner over dict.
func NewRunner(dict *words.Dictionary) *Runner {
	return &Runner{dict: dict}
}

type attempt struct {
	rounds int
	solved bool
}

// Run executes opts.Tries attempts. Puzzle construction failures (no words of
// that length) abort the run; attempts ending in ErrSolutionNotFound are
// counted as failed. Cancelling ctx stops scheduling new attempts and returns
// ctx's error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Run, error) {
	opts = withDefaults(opts)
	pk, err := solver.NewPicker(opts.Strategy, nil)
	if err != nil {
		return nil, err
	}
	opts.Strategy = pk.Name()
	if _, ok := r.dict.WordsOfLength(opts.Length); !ok {
		return nil, fmt.Errorf("bench: %w: %d", game.ErrNoWordsForLength, opts.Length)
	}

	results := make([]attempt, opts.Tries)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	start := time.Now()
	for i := 0; i < opts.Tries; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := r.attempt(opts, i)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	run := summarize(opts, results, elapsed)
	metrics.BenchRunsTotal.Inc()
	log.Info().
		Str("id", run.ID).
		Int("length", run.Length).
		Str("strategy", run.Strategy).
		Int("tries", run.Tries).
		Int("failed", run.Failed).
		Float64("avgRounds", run.AvgRounds).
		Float64("msPerTry", run.MsPerTry).
		Msg("bench finished")
	return run, nil
}

func (r *Runner) attempt(opts Options, i int) (attempt, error) {
	base := opts.Seed + uint64(i)*seedStride
	p, err := game.New(opts.Length, r.dict, game.NewRand(base))
	if err != nil {
		return attempt{}, err
	}
	picker, err := solver.NewPicker(opts.Strategy, game.NewRand(base+1))
	if err != nil {
		return attempt{}, err
	}
	res, err := solver.New(picker).Solve(p, r.dict)
	switch {
	case err == nil:
		return attempt{rounds: len(res.Rounds), solved: true}, nil
	case errors.Is(err, solver.ErrSolutionNotFound):
		log.Warn().Err(err).Str("answer", p.Answer()).Int("try", i).Msg("attempt failed")
		return attempt{rounds: len(res.Rounds)}, nil
	}
	return attempt{}, err
}

func withDefaults(o Options) Options {
	if o.Length <= 0 {
		o.Length = 5
	}
	if o.Tries <= 0 {
		o.Tries = defaultTries
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.Seed == 0 {
		o.Seed = game.RandomSeed()
	}
	if o.Strategy == "" {
		o.Strategy = solver.StrategyUniform
	}
	return o
}

func summarize(opts Options, results []attempt, elapsed time.Duration) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		Length:    opts.Length,
		Strategy:  opts.Strategy,
		Seed:      opts.Seed,
		Workers:   opts.Workers,
		Tries:     len(results),
		CreatedAt: time.Now().UTC(),
	}
	total := 0
	for _, a := range results {
		if !a.solved {
			run.Failed++
			continue
		}
		run.Solved++
		total += a.rounds
		if a.rounds > run.MaxRounds {
			run.MaxRounds = a.rounds
		}
	}
	if run.Solved > 0 {
		run.AvgRounds = float64(total) / float64(run.Solved)
	}
	if run.Tries > 0 {
		run.MsPerTry = float64(elapsed.Microseconds()) / 1000 / float64(run.Tries)
	}
	return run
}
