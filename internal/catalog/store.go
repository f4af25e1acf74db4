package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cuemill/internal/config"
)

// ErrNotFound indicates the requested track does not exist.
var ErrNotFound = errors.New("track not found")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

// Open initializes or connects to the catalog database inside the configured
// data directory and acquires its file lock.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "catalog.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, errors.New("catalog is locked by another process")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the file lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("release catalog lock: %w", err)
		}
	}
	return closeErr
}

// Save inserts a track record. A missing ID or creation timestamp is filled
// in, and the stored track is returned.
func (s *Store) Save(ctx context.Context, track Track) (*Track, error) {
	if track.ID == "" {
		track.ID = uuid.NewString()
	}
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now().UTC()
	}
	if track.Speakers == nil {
		track.Speakers = []string{}
	}

	speakersJSON, err := json.Marshal(track.Speakers)
	if err != nil {
		return nil, fmt.Errorf("marshal speakers: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO tracks (
            id, source, format, language, cue_count, word_count,
            duration_seconds, speakers, destination, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		track.ID,
		track.Source,
		track.Format,
		track.Language,
		track.CueCount,
		track.WordCount,
		track.Duration,
		string(speakersJSON),
		track.Destination,
		track.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert track: %w", err)
	}

	return s.Get(ctx, track.ID)
}

// Get returns the track with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Track, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, format, language, cue_count, word_count,
            duration_seconds, speakers, destination, created_at
         FROM tracks WHERE id = ?`, id)
	track, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return track, nil
}

// List returns tracks ordered newest first. A non-positive limit returns all
// tracks.
func (s *Store) List(ctx context.Context, limit int) ([]*Track, error) {
	query := `SELECT id, source, format, language, cue_count, word_count,
            duration_seconds, speakers, destination, created_at
         FROM tracks ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*Track, error) {
	var track Track
	var speakersJSON string
	var createdAt string
	err := row.Scan(
		&track.ID,
		&track.Source,
		&track.Format,
		&track.Language,
		&track.CueCount,
		&track.WordCount,
		&track.Duration,
		&speakersJSON,
		&track.Destination,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(speakersJSON), &track.Speakers); err != nil {
		return nil, fmt.Errorf("unmarshal speakers: %w", err)
	}
	track.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &track, nil
}
