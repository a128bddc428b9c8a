package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/auth"
	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

type fixture struct {
	srv    *Server
	store  store.Store
	signer *auth.Signer
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	d, err := words.Default()
	require.NoError(t, err)
	st := store.NewMemoryStore()
	signer := auth.NewSigner("test-secret", time.Hour)
	if opts.DailySalt == "" {
		opts.DailySalt = "salt"
	}
	return &fixture{srv: New(d, st, signer, opts), store: st, signer: signer}
}

func (f *fixture) do(t *testing.T, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndIndex(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = f.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDictionary(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodGet, "/dictionary/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res dictionaryRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 5, res.Length)
	assert.NotZero(t, res.Words)
	require.NotEmpty(t, res.Letters)
	for i := 1; i < len(res.Letters); i++ {
		assert.GreaterOrEqual(t, res.Letters[i-1].Count, res.Letters[i].Count)
	}

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/dictionary/42", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/dictionary/x", "", nil).Code)
}

func TestSolve(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodPost, "/solve", `{"length":5,"seed":17,"strategy":"frequency"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res solveRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Solved)
	assert.Equal(t, res.Answer, res.Word)
	assert.Equal(t, uint64(17), res.Seed)
	assert.Equal(t, "frequency", res.Strategy)
	require.NotEmpty(t, res.Rounds)
	last := res.Rounds[len(res.Rounds)-1]
	assert.True(t, last.Check.IsSolved())

	// same seed, same trace
	again := f.do(t, http.MethodPost, "/solve", `{"length":5,"seed":17,"strategy":"frequency"}`, nil)
	var res2 solveRes
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &res2))
	assert.Equal(t, res.Answer, res2.Answer)
	assert.Equal(t, len(res.Rounds), len(res2.Rounds))
}

func TestSolveEmptyBodyUsesDefaults(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodPost, "/solve", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res solveRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Answer, 5)
	assert.Equal(t, "uniform", res.Strategy)
}

func TestSolveFixedAnswer(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodPost, "/solve", `{"answer":"  CRANE "}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res solveRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "crane", res.Word)

	rec = f.do(t, http.MethodPost, "/solve", `{"answer":"zzzzz"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveErrors(t *testing.T) {
	f := newFixture(t, Options{})

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/solve", `{`, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/solve", `{"length":42}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/solve", `{"strategy":"entropy"}`, nil).Code)
}

func TestSolveRateLimited(t *testing.T) {
	f := newFixture(t, Options{SolveRPS: 1})

	first := f.do(t, http.MethodPost, "/solve", "", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	second := f.do(t, http.MethodPost, "/solve", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestDaily(t *testing.T) {
	day := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, Options{Now: func() time.Time { return day }})

	rec := f.do(t, http.MethodGet, "/daily/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res dailyRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "2026-10-18", res.Date)
	assert.True(t, res.Solved)
	assert.Equal(t, res.Answer, res.Word)

	var res2 dailyRes
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/daily/5", "", nil).Body.Bytes(), &res2))
	assert.Equal(t, res.Answer, res2.Answer)
	assert.Equal(t, len(res.Rounds), len(res2.Rounds))

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/daily/42", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/daily/5?strategy=nope", "", nil).Code)
}

func TestBenchRequiresToken(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(t, http.MethodPost, "/bench", `{"tries":3}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBenchRunAndList(t *testing.T) {
	f := newFixture(t, Options{BenchWorkers: 2})
	tok, _, err := f.signer.Sign("ops")
	require.NoError(t, err)
	authz := map[string]string{"Authorization": "Bearer " + tok}

	rec := f.do(t, http.MethodPost, "/bench", `{"tries":5,"seed":3}`, authz)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var run bench.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 5, run.Tries)
	assert.Equal(t, 2, run.Workers)
	assert.Equal(t, 5, run.Length)

	stored, err := f.store.Get(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Solved, stored.Solved)

	rec = f.do(t, http.MethodGet, "/bench/runs?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []bench.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)

	rec = f.do(t, http.MethodGet, "/bench/runs/"+run.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, "/bench/runs/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBenchValidation(t *testing.T) {
	f := newFixture(t, Options{})
	tok, _, err := f.signer.Sign("ops")
	require.NoError(t, err)
	authz := map[string]string{"Authorization": "Bearer " + tok}

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/bench", `{"tries":999999}`, authz).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/bench", `{"length":42}`, authz).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/bench", `{"strategy":"x"}`, authz).Code)
}

func TestMetricsExposed(t *testing.T) {
	f := newFixture(t, Options{})
	f.do(t, http.MethodPost, "/solve", "", nil)

	rec := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordle_solves_total")
}
