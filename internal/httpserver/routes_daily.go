// internal/httpserver/routes_daily.go
//
// HTTP route for the daily puzzle:
//   - GET /daily/{length}?strategy= → solve trace of today's puzzle
//
// The hidden word is derived from the UTC date and DAILY_SALT, and the
// solver's picker is seeded from the same value, so the trace is stable for
// the whole day.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// dailyRes wraps a solve result with the date it belongs to.
type dailyRes struct {
	Date string `json:"date"`
	solveRes
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/{length}", s.handleDaily)
	})
}

// handleDaily solves today's puzzle for the requested length.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	n, ok := s.lengthParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	now := s.opts.Now()
	p, err := daily.Puzzle(now, s.opts.DailySalt, n, s.dict)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_words_for_length")
		return
	}

	seed := daily.Seed(now, s.opts.DailySalt)
	picker, err := solver.NewPicker(r.URL.Query().Get("strategy"), game.NewRand(seed+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_strategy")
		return
	}
	res, err := solver.New(picker).Solve(p, s.dict)

	out, status := solveResponse(p, seed, res, err)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	writeJSON(w, dailyRes{Date: daily.DateKey(now), solveRes: out})
}
