package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/auth"
	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var errNotInWordList = errors.New("not in word list")

// app carries the resolved configuration and dictionary shared by every subcommand.
type app struct {
	cfg  config.Config
	dict *words.Dictionary

	// persistent flags
	dictPath string
	length   int
	logLevel string
	pretty   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "wordle-solver",
		Short:        "Solve, benchmark and serve a dictionary-driven Wordle solver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.dictPath, "dict-path", "d", "", "word list file (default: embedded list)")
	pf.IntVarP(&a.length, "length", "l", 5, "word length")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.pretty, "pretty", false, "human-readable console logs")

	root.AddCommand(
		a.solveCmd(),
		a.benchCmd(),
		a.serveCmd(),
		a.tokenCmd(),
		a.statsCmd(),
	)
	return root
}

// init resolves config, lets explicitly set flags override it, and loads the dictionary.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dict-path") {
		cfg.WordsFile = a.dictPath
	}
	if flags.Changed("length") {
		cfg.Length = a.length
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	setupLogging(cfg.LogLevel, a.pretty)

	a.dict, err = words.Load(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	log.Debug().Int("words", a.dict.Size()).Ints("lengths", a.dict.Lengths()).Msg("dictionary ready")
	return nil
}

// openStore opens the configured bench store; "memory" keeps runs in process.
func (a *app) openStore() (store.Store, error) {
	if a.cfg.DBPath == "" || a.cfg.DBPath == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(a.cfg.DBPath)
}

// ------------------------------- solve -------------------------------------

func (a *app) solveCmd() *cobra.Command {
	var (
		seed     uint64
		strategy string
		word     string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Pick a hidden word and solve it, printing every round",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = game.RandomSeed()
			}
			p, err := a.puzzle(word, seed)
			if err != nil {
				return err
			}
			picker, err := solver.NewPicker(strategy, game.NewRand(seed+1))
			if err != nil {
				return err
			}
			res, solveErr := solver.New(picker).Solve(p, a.dict)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				printTrace(out, p, seed, res)
			}
			return solveErr
		},
	}
	f := cmd.Flags()
	f.Uint64Var(&seed, "seed", 0, "random seed (0 draws one)")
	f.StringVar(&strategy, "strategy", solver.StrategyUniform, "guess strategy (uniform, frequency)")
	f.StringVar(&word, "word", "", "fixed hidden word; must be in the dictionary")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func (a *app) puzzle(word string, seed uint64) (*game.Puzzle, error) {
	if word == "" {
		return game.New(a.cfg.Length, a.dict, game.NewRand(seed))
	}
	w := words.Normalize(word)
	ws, ok := a.dict.WordsOfLength(utf8.RuneCountInString(w))
	if !ok || !ws.Contains(w) {
		return nil, fmt.Errorf("%q: %w", w, errNotInWordList)
	}
	return game.FromWord(w), nil
}

func printTrace(out io.Writer, p *game.Puzzle, seed uint64, res *solver.Result) {
	fmt.Fprintf(out, "answer %s (seed %d, %s)\n", p.Answer(), seed, res.Strategy)
	for _, r := range res.Rounds {
		fmt.Fprintf(out, "%3d  %s  %s  %d -> %d\n", r.Number, r.Guess, r.Check, r.Before, r.After)
	}
	if res.Word != "" {
		fmt.Fprintf(out, "solved in %d rounds (%s)\n", len(res.Rounds), res.Duration)
	}
}

// ------------------------------- bench -------------------------------------

func (a *app) benchCmd() *cobra.Command {
	var (
		opts bench.Options
		save bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run many independent solves and summarize them",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Length = a.cfg.Length
			if opts.Workers <= 0 {
				opts.Workers = a.cfg.BenchWorkers
			}
			run, err := bench.NewRunner(a.dict).Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s\n", run.ID)
			fmt.Fprintf(out, "  length=%d strategy=%s seed=%d workers=%d\n", run.Length, run.Strategy, run.Seed, run.Workers)
			fmt.Fprintf(out, "  solved %d/%d, failed %d\n", run.Solved, run.Tries, run.Failed)
			fmt.Fprintf(out, "  rounds avg %.2f max %d, %.3f ms/try\n", run.AvgRounds, run.MaxRounds, run.MsPerTry)

			if !save {
				return nil
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Save(cmd.Context(), run); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			fmt.Fprintf(out, "saved to %s\n", a.cfg.DBPath)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Tries, "tries", 100, "number of puzzles to solve")
	f.IntVar(&opts.Workers, "workers", 0, "concurrent solves (default: BENCH_WORKERS)")
	f.Uint64Var(&opts.Seed, "seed", 0, "base seed (0 draws one)")
	f.StringVar(&opts.Strategy, "strategy", solver.StrategyUniform, "guess strategy (uniform, frequency)")
	f.BoolVar(&save, "save", false, "persist the summary to DB_PATH")
	return cmd
}

// ------------------------------- serve -------------------------------------

func (a *app) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			srv := httpserver.New(a.dict, st, auth.NewSigner(a.cfg.JWTSecret, a.cfg.JWTTTL()), httpserver.Options{
				DefaultLength: a.cfg.Length,
				DailySalt:     a.cfg.DailySalt,
				SolveRPS:      a.cfg.SolveRPS,
				BenchWorkers:  a.cfg.BenchWorkers,
			})
			log.Info().Str("port", port).Str("db", a.cfg.DBPath).Msg("starting go-solver")
			return srv.Start(":" + port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default: PORT)")
	return cmd
}

// ------------------------------- token -------------------------------------

func (a *app) tokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for POST /bench",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, exp, err := auth.NewSigner(a.cfg.JWTSecret, a.cfg.JWTTTL()).Sign(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			log.Info().Str("sub", subject).Time("expires", exp).Msg("token issued")
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "cli", "token subject")
	return cmd
}

// ------------------------------- stats -------------------------------------

func (a *app) statsCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dictionary sizes and letter frequencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d words\n", a.dict.Size())
			for _, n := range a.dict.Lengths() {
				ws, _ := a.dict.WordsOfLength(n)
				fmt.Fprintf(out, "  length %d: %d\n", n, ws.Len())
			}

			ws, ok := a.dict.WordsOfLength(a.cfg.Length)
			if !ok {
				return fmt.Errorf("length %d: %w", a.cfg.Length, game.ErrNoWordsForLength)
			}
			fmt.Fprintf(out, "top letters (length %d): %s\n", a.cfg.Length, topLetters(ws.Freqs(), top))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "number of letters to show")
	return cmd
}

func topLetters(freqs map[rune]int, n int) string {
	letters := make([]rune, 0, len(freqs))
	for r := range freqs {
		letters = append(letters, r)
	}
	sort.Slice(letters, func(i, j int) bool {
		if freqs[letters[i]] != freqs[letters[j]] {
			return freqs[letters[i]] > freqs[letters[j]]
		}
		return letters[i] < letters[j]
	})
	if n > 0 && n < len(letters) {
		letters = letters[:n]
	}
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = fmt.Sprintf("%c=%d", r, freqs[r])
	}
	return strings.Join(parts, " ")
}
