// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle solver.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, panic recovery, timeouts, logging).
//   - Public endpoints: "/", "/health", "/metrics", "/dictionary/{length}".
//   - Solve endpoints: POST /solve (rate limited), GET /daily/{length}.
//   - Bench endpoints: POST /bench (bearer token), GET /bench/runs[/{id}].
//
// Notes:
//   - Every solve is a single stateless attempt; no game state is kept
//     between requests. Only bench summaries are persisted.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/auth"
	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const maxBenchTries = 5000

// Options tunes server behavior; zero values get defaults.
type Options struct {
	DefaultLength int
	DailySalt     string
	SolveRPS      float64
	BenchWorkers  int
	Timeout       time.Duration
	Now           func() time.Time // clock for the daily puzzle
}

// Server bundles router, dictionary, bench store, and token signer.
type Server struct {
	r      *chi.Mux
	dict   *words.Dictionary
	store  store.Store
	signer *auth.Signer
	runner *bench.Runner
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, st store.Store, signer *auth.Signer, opts Options) *Server {
	if opts.DefaultLength <= 0 {
		opts.DefaultLength = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		r:      chi.NewRouter(),
		dict:   dict,
		store:  st,
		signer: signer,
		runner: bench.NewRunner(dict),
		opts:   opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)               // one zerolog line per request
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/metrics","GET /dictionary/{length}","POST /solve","GET /daily/{length}","POST /bench","GET /bench/runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.r.Get("/dictionary/{length}", s.handleDictionary)
	s.r.With(rateLimit(opts.SolveRPS)).Post("/solve", s.handleSolve)
	s.mountDaily(s.r)

	s.r.With(s.signer.RequireToken()).Post("/bench", s.handleBench)
	s.r.Get("/bench/runs", s.handleListRuns)
	s.r.Get("/bench/runs/{id}", s.handleGetRun)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("dur", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("http")
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// decodeOptional decodes a JSON body into v; an empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// lengthParam parses {length}, falling back to the default when absent.
func (s *Server) lengthParam(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "length")
	if raw == "" {
		return s.opts.DefaultLength, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil && n > 0
}

// ---------------------------- DICTIONARY -----------------------------------

type letterFreq struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

type dictionaryRes struct {
	Length  int          `json:"length"`
	Words   int          `json:"words"`
	Letters []letterFreq `json:"letters"` // most frequent first
}

// handleDictionary reports word count and letter frequencies for a length.
func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lengthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	ws, ok := s.dict.WordsOfLength(n)
	if !ok {
		writeError(w, http.StatusNotFound, "no_words_for_length")
		return
	}
	writeJSON(w, dictionaryRes{Length: n, Words: ws.Len(), Letters: sortedFreqs(ws.Freqs())})
}

func sortedFreqs(freqs map[rune]int) []letterFreq {
	out := make([]letterFreq, 0, len(freqs))
	for r, c := range freqs {
		out = append(out, letterFreq{Letter: string(r), Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Letter < out[j].Letter
	})
	return out
}

// ------------------------------ SOLVE --------------------------------------

// solveReq is the payload for POST /solve. All fields are optional.
type solveReq struct {
	Length   int    `json:"length"`
	Seed     uint64 `json:"seed"`
	Strategy string `json:"strategy"` // "uniform" | "frequency"
	Answer   string `json:"answer"`   // fixed hidden word; must be in the dictionary
}

type solveRes struct {
	Answer     string         `json:"answer"`
	Seed       uint64         `json:"seed"`
	Solved     bool           `json:"solved"`
	Word       string         `json:"word,omitempty"`
	Strategy   string         `json:"strategy"`
	Rounds     []solver.Round `json:"rounds"`
	DurationMs float64        `json:"durationMs"`
	Error      string         `json:"error,omitempty"`
}

// handleSolve runs one solve attempt on a random (or fixed) puzzle.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Length <= 0 {
		req.Length = s.opts.DefaultLength
	}
	if req.Seed == 0 {
		req.Seed = game.RandomSeed()
	}

	var p *game.Puzzle
	if req.Answer != "" {
		ans := words.Normalize(req.Answer)
		ws, ok := s.dict.WordsOfLength(utf8.RuneCountInString(ans))
		if !ok || !ws.Contains(ans) {
			writeError(w, http.StatusBadRequest, "not in word list")
			return
		}
		p = game.FromWord(ans)
	} else {
		var err error
		p, err = game.New(req.Length, s.dict, game.NewRand(req.Seed))
		if err != nil {
			writeError(w, http.StatusNotFound, "no_words_for_length")
			return
		}
	}

	picker, err := solver.NewPicker(req.Strategy, game.NewRand(req.Seed+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_strategy")
		return
	}
	res, err := solver.New(picker).Solve(p, s.dict)
	out, status := solveResponse(p, req.Seed, res, err)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	writeJSON(w, out)
}

// solveResponse renders a solve result; failures map to 422 with the trace attached.
func solveResponse(p *game.Puzzle, seed uint64, res *solver.Result, err error) (solveRes, int) {
	out := solveRes{
		Answer:     p.Answer(),
		Seed:       seed,
		Solved:     err == nil,
		Word:       res.Word,
		Strategy:   res.Strategy,
		Rounds:     res.Rounds,
		DurationMs: float64(res.Duration.Microseconds()) / 1000,
	}
	if out.Rounds == nil {
		out.Rounds = []solver.Round{}
	}
	if err == nil {
		return out, http.StatusOK
	}

	log.Error().Err(err).Str("answer", p.Answer()).Msg("solve failed")
	switch {
	case errors.Is(err, solver.ErrEmptyDictionary):
		out.Error = "empty_dictionary"
	case errors.Is(err, solver.ErrSolutionNotFound):
		out.Error = "solution_not_found"
	default:
		out.Error = "solve_failed"
	}
	return out, http.StatusUnprocessableEntity
}

// ------------------------------ BENCH --------------------------------------

// handleBench runs a benchmark and stores its summary.
func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var opts bench.Options
	if err := decodeOptional(r, &opts); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if opts.Length <= 0 {
		opts.Length = s.opts.DefaultLength
	}
	if opts.Workers <= 0 {
		opts.Workers = s.opts.BenchWorkers
	}
	if opts.Tries > maxBenchTries {
		writeError(w, http.StatusBadRequest, "too_many_tries")
		return
	}

	run, err := s.runner.Run(r.Context(), opts)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoWordsForLength):
			writeError(w, http.StatusNotFound, "no_words_for_length")
		case errors.Is(err, solver.ErrUnknownStrategy):
			writeError(w, http.StatusBadRequest, "unknown_strategy")
		default:
			log.Error().Err(err).Msg("bench")
			writeError(w, http.StatusInternalServerError, "bench_failed")
		}
		return
	}
	if sub, ok := auth.Subject(r.Context()); ok {
		log.Info().Str("by", sub).Str("id", run.ID).Msg("bench requested")
	}
	if err := s.store.Save(r.Context(), run); err != nil {
		log.Error().Err(err).Str("id", run.ID).Msg("save bench run")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, run)
}

// handleListRuns returns stored runs, newest first (?limit=, default 20).
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list bench runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, runs)
}

// handleGetRun returns one stored run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, run)
}
