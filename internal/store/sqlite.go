// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Reading and writing bench_runs rows.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

//go:embed sql/*.sql
var migrations embed.FS

// fixed-width so lexical order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB opens a SQLite database file.
//
//   - Ensures parent directory exists for relative DSNs (e.g. ./data/solver.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from fsys in lexical order, each in its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save upserts a run.
func (s *sqliteStore) Save(ctx context.Context, r *bench.Run) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO bench_runs
            (id, length, strategy, seed, workers, tries, solved, failed,
             avg_rounds, max_rounds, ms_per_try, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Length, r.Strategy, strconv.FormatUint(r.Seed, 10), r.Workers, r.Tries,
		r.Solved, r.Failed, r.AvgRounds, r.MaxRounds, r.MsPerTry,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

const runColumns = `id, length, strategy, seed, workers, tries, solved, failed,
                    avg_rounds, max_rounds, ms_per_try, created_at`

// Get fetches one run by ID.
func (s *sqliteStore) Get(ctx context.Context, id string) (*bench.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM bench_runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return r, err
}

// List fetches the newest runs.
func (s *sqliteStore) List(ctx context.Context, limit int) ([]bench.Run, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+runColumns+`
        FROM bench_runs
        ORDER BY created_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bench.Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*bench.Run, error) {
	var r bench.Run
	var seed, created string
	if err := row.Scan(&r.ID, &r.Length, &r.Strategy, &seed, &r.Workers, &r.Tries,
		&r.Solved, &r.Failed, &r.AvgRounds, &r.MaxRounds, &r.MsPerTry, &created); err != nil {
		return nil, err
	}
	r.Seed, _ = strconv.ParseUint(seed, 10, 64)
	r.CreatedAt, _ = time.Parse(timeLayout, created)
	return &r, nil
}
