// ABOUTME: Local SQLite journal of emitted corrections
// ABOUTME: Provides the audit trail and lets a session resume where it left off

// Package journal persists every correction the reviewer emits to a local
// SQLite database, independent of whether the backend submission succeeded.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"ad-review/review"
)

const schema = `
CREATE TABLE IF NOT EXISTS corrections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	podcast_slug TEXT NOT NULL,
	episode_id TEXT NOT NULL,
	type TEXT NOT NULL,
	original_start REAL NOT NULL,
	original_end REAL NOT NULL,
	adjusted_start REAL,
	adjusted_end REAL,
	notes TEXT NOT NULL DEFAULT '',
	created_at REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_corrections_episode
	ON corrections (podcast_slug, episode_id);
`

// Entry is one journaled correction
type Entry struct {
	ID            int64
	PodcastSlug   string
	EpisodeID     string
	Type          string
	OriginalStart float64
	OriginalEnd   float64
	AdjustedStart *float64
	AdjustedEnd   *float64
	Notes         string
	CreatedAt     time.Time
}

// Store provides read/write access to the journal database
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the journal database.
// Pass ":memory:" for an ephemeral journal.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one emitted correction for an episode
func (s *Store) Append(podcastSlug, episodeID string, corr review.Correction) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO corrections
			(podcast_slug, episode_id, type, original_start, original_end,
			 adjusted_start, adjusted_end, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, podcastSlug, episodeID, string(corr.Type),
		corr.Original.Start, corr.Original.End,
		nullableFloat(corr.AdjustedStart), nullableFloat(corr.AdjustedEnd),
		corr.Notes, float64(time.Now().UnixMilli())/1000.0)
	if err != nil {
		return 0, fmt.Errorf("append correction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append correction id: %w", err)
	}

	return id, nil
}

// EpisodeEntries returns all journaled corrections for an episode, oldest first
func (s *Store) EpisodeEntries(podcastSlug, episodeID string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, podcast_slug, episode_id, type, original_start, original_end,
		       adjusted_start, adjusted_end, notes, created_at
		FROM corrections
		WHERE podcast_slug = ? AND episode_id = ?
		ORDER BY id ASC
	`, podcastSlug, episodeID)
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry
		var adjStart, adjEnd sql.NullFloat64
		var createdAt float64

		if err := rows.Scan(&e.ID, &e.PodcastSlug, &e.EpisodeID, &e.Type,
			&e.OriginalStart, &e.OriginalEnd, &adjStart, &adjEnd,
			&e.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}

		if adjStart.Valid {
			v := adjStart.Float64
			e.AdjustedStart = &v
		}

		if adjEnd.Valid {
			v := adjEnd.Float64
			e.AdjustedEnd = &v
		}

		e.CreatedAt = time.UnixMilli(int64(createdAt * 1000))
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// BoundsKey identifies a candidate by its original bounds, rounded to
// milliseconds so float formatting differences cannot split identities
func BoundsKey(start, end float64) string {
	return fmt.Sprintf("%.3f:%.3f", start, end)
}

// ReviewedBounds returns the set of original candidate bounds already
// journaled for an episode, keyed by BoundsKey
func (s *Store) ReviewedBounds(podcastSlug, episodeID string) (map[string]bool, error) {
	entries, err := s.EpisodeEntries(podcastSlug, episodeID)
	if err != nil {
		return nil, err
	}

	reviewed := make(map[string]bool, len(entries))
	for _, e := range entries {
		reviewed[BoundsKey(e.OriginalStart, e.OriginalEnd)] = true
	}

	return reviewed, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}

	return *v
}
