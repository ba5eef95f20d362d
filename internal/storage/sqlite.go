// Package storage persists high scores in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database unless --db says otherwise.
const DefaultPath = "~/.flappish/scores.db"

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is a finished play-through to be recorded.
type Run struct {
	Variant string
	Score   int
	Ticks   uint64 // Ticks survived
	Seed    int64  // Seed of the run, so it can be replayed
}

// ScoreEntry is a stored run.
type ScoreEntry struct {
	ID        int64
	Variant   string
	Score     int
	Ticks     uint64
	Seed      int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// A leading ~ is expanded to the home directory, parent directories are
// created, and the schema is migrated.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(variant, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run and returns its ID.
func (s *Store) SaveScore(run Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (variant, score, ticks, seed) VALUES (?, ?, ?, ?)",
		run.Variant, run.Score, int64(run.Ticks), run.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best runs of a variant, highest score first.
// Ties go to the run that survived longer. A limit of zero or less means 10.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, ticks, seed, created_at
		 FROM scores
		 WHERE variant = ?
		 ORDER BY score DESC, ticks DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e         ScoreEntry
			ticks     int64
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.Variant, &e.Score, &ticks, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a variant, or 0 if none is stored.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE variant = ?",
		variant,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores of a variant.
func (s *Store) ClearScores(variant string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a variant.
type GameStats struct {
	Variant    string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a variant.
func (s *Store) Stats(variant string) (*GameStats, error) {
	stats := &GameStats{Variant: variant}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0)
		 FROM scores WHERE variant = ?`,
		variant,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE variant = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		variant,
	).Scan(&lastPlayed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	default:
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both driver-decoded times and raw SQLite timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
