// Package storage provides SQLite-based persistence for birdrush scores
// and per-mode play metrics. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished-run score record.
type ScoreEntry struct {
	ID         int64
	PlayerName string
	Mode       string
	Score      int
	CreatedAt  time.Time
}

// ModeMetrics holds the aggregate play counters for one game mode.
// Exactly one row per mode; RecordGame upserts it atomically.
type ModeMetrics struct {
	Mode              string
	GamesPlayed       int
	TotalScore        int64
	HighScore         int
	TotalPlayMS       int64
	LongestSurvivalMS int64
}

// AvgScore returns the mean score across all recorded games.
func (m ModeMetrics) AvgScore() float64 {
	if m.GamesPlayed == 0 {
		return 0
	}
	return float64(m.TotalScore) / float64(m.GamesPlayed)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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
			player_name TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS metrics (
			mode TEXT PRIMARY KEY,
			games_played INTEGER NOT NULL DEFAULT 0,
			total_score INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			total_play_ms INTEGER NOT NULL DEFAULT 0,
			longest_survival_ms INTEGER NOT NULL DEFAULT 0
		);
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

// SaveScore records a finished run for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(playerName, mode string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player_name, mode, score) VALUES (?, ?, ?)",
		playerName, mode, score,
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

// TopScores retrieves the top N scores for the given mode, ordered by
// score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player_name, mode, score, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

// AllScores retrieves all scores for the given mode (no limit).
func (s *Store) AllScores(mode string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, player_name, mode, score, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

// scanScores reads score rows into entries.
func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Mode, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string datetime columns, which
// vary by driver configuration.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// survivalMode is the mode id whose runs feed the longest-survival metric.
const survivalMode = "survival"

// RecordGame folds one finished run into the mode's metrics row: counter
// increments plus conditional high-score and longest-run updates, in a
// single atomic upsert.
func (s *Store) RecordGame(mode string, score int, playTime time.Duration) error {
	playMS := playTime.Milliseconds()

	// Other modes must not feed longest_survival_ms, or it degrades into
	// a longest-play-time figure.
	survivalMS := int64(0)
	if mode == survivalMode {
		survivalMS = playMS
	}

	_, err := s.db.Exec(
		`INSERT INTO metrics
		 (mode, games_played, total_score, high_score, total_play_ms, longest_survival_ms)
		 VALUES (?, 1, ?, ?, ?, ?)
		 ON CONFLICT(mode) DO UPDATE SET
			games_played = games_played + 1,
			total_score = total_score + excluded.total_score,
			high_score = MAX(high_score, excluded.high_score),
			total_play_ms = total_play_ms + excluded.total_play_ms,
			longest_survival_ms = MAX(longest_survival_ms, excluded.longest_survival_ms)`,
		mode, score, score, playMS, survivalMS,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record game: %w", err)
	}
	return nil
}

// MetricsFor retrieves the metrics row for one mode.
// Returns a zeroed row (not an error) if the mode was never played.
func (s *Store) MetricsFor(mode string) (ModeMetrics, error) {
	m := ModeMetrics{Mode: mode}
	err := s.db.QueryRow(
		`SELECT games_played, total_score, high_score, total_play_ms, longest_survival_ms
		 FROM metrics
		 WHERE mode = ?`,
		mode,
	).Scan(&m.GamesPlayed, &m.TotalScore, &m.HighScore, &m.TotalPlayMS, &m.LongestSurvivalMS)

	if err == sql.ErrNoRows {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("storage: cannot query metrics: %w", err)
	}

	return m, nil
}

// AllMetrics retrieves the metrics rows for every mode that has been
// played, keyed by mode.
func (s *Store) AllMetrics() (map[string]ModeMetrics, error) {
	rows, err := s.db.Query(
		`SELECT mode, games_played, total_score, high_score, total_play_ms, longest_survival_ms
		 FROM metrics`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query metrics: %w", err)
	}
	defer rows.Close()

	metrics := make(map[string]ModeMetrics)
	for rows.Next() {
		var m ModeMetrics
		if err := rows.Scan(&m.Mode, &m.GamesPlayed, &m.TotalScore, &m.HighScore, &m.TotalPlayMS, &m.LongestSurvivalMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan metrics row: %w", err)
		}
		metrics[m.Mode] = m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return metrics, nil
}

// GameStats contains score-table statistics for one mode.
type GameStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated score statistics for a mode.
func (s *Store) GetGameStats(mode string) (*GameStats, error) {
	stats := &GameStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE mode = ? ORDER BY created_at DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}
