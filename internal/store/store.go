// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typetest/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store wraps SQLite access for session results.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == MemoryPath {
		// Each pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			target TEXT NOT NULL,
			category TEXT NOT NULL,
			punctuation INTEGER NOT NULL,
			numbers INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			raw_wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			consistency INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			total_chars INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			elapsed_s INTEGER NOT NULL,
			wpm_history TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_ended_at ON results(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_category_wpm ON results(category, wpm);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// InsertResult stores a finished session. An empty ID is filled with a new
// UUID; the stored ID is returned.
func (s *Store) InsertResult(ctx context.Context, rec model.Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = s.now()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.EndedAt
	}
	history, err := json.Marshal(nonNilHistory(rec.WPMHistory))
	if err != nil {
		return "", fmt.Errorf("failed to encode wpm history: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, started_at, ended_at, mode, target, category, punctuation, numbers,
			wpm, raw_wpm, accuracy, consistency, correct_chars, total_chars, errors, elapsed_s, wpm_history)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.EndedAt.UTC().Format(time.RFC3339Nano),
		string(rec.Mode),
		rec.Target,
		rec.Category(),
		rec.Punctuation,
		rec.Numbers,
		rec.WPM,
		rec.RawWPM,
		rec.Accuracy,
		rec.Consistency,
		rec.CorrectChars,
		rec.TotalChars,
		rec.Errors,
		rec.Elapsed,
		string(history),
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func nonNilHistory(h []int) []int {
	if h == nil {
		return []int{}
	}
	return h
}

const selectColumns = `id, started_at, ended_at, mode, target, punctuation, numbers,
	wpm, raw_wpm, accuracy, consistency, correct_chars, total_chars, errors, elapsed_s, wpm_history`

// ListResults returns results filtered by stats config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.Record, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT %s FROM results WHERE %s ORDER BY ended_at ASC`,
		selectColumns, strings.Join(clauses, " AND "))
	records, err := s.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	return records, nil
}

// Leaderboard returns the best results of a category, fastest first.
func (s *Store) Leaderboard(ctx context.Context, category string, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, wpm, accuracy, ended_at FROM results
		 WHERE category = ?
		 ORDER BY wpm DESC, accuracy DESC, ended_at ASC
		 LIMIT ?`, category, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		var endedAt string
		if err := rows.Scan(&e.Category, &e.WPM, &e.Accuracy, &endedAt); err != nil {
			return nil, err
		}
		if e.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Categories lists every category that has results, most played first.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM results GROUP BY category ORDER BY COUNT(*) DESC, category ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		var startedAt, endedAt, mode, history string
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &mode, &rec.Target, &rec.Punctuation, &rec.Numbers,
			&rec.WPM, &rec.RawWPM, &rec.Accuracy, &rec.Consistency, &rec.CorrectChars, &rec.TotalChars,
			&rec.Errors, &rec.Elapsed, &history); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Mode = model.Mode(mode)
		if err := json.Unmarshal([]byte(history), &rec.WPMHistory); err != nil {
			return nil, fmt.Errorf("failed to decode wpm history for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
