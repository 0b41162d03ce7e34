// Package cache persists the last fetched owned-game library as a JSON file
// and serves it back while it is fresh.
//
// Freshness is judged by the file's modification time, never by anything
// stored in the payload. The clock is the Store's Now field so tests can move
// time forward without touching the filesystem.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

// DefaultMaxAge is how long a cached library is served before a refetch.
const DefaultMaxAge = 5 * time.Minute

// Store reads and writes the cached library at Path.
type Store struct {
	Path   string
	MaxAge time.Duration
	Now    func() time.Time
}

// New creates a Store for path. A non-positive maxAge selects DefaultMaxAge.
func New(path string, maxAge time.Duration) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Store{
		Path:   path,
		MaxAge: maxAge,
		Now:    time.Now,
	}
}

// Load returns the cached games, or nil when there is no usable cache: the
// file is missing, older than MaxAge, empty, unparseable or holds no games. Failures are
// logged and reported as a miss.
func (s *Store) Load() []steam.Game {
	info, err := os.Stat(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to stat games cache", slog.String("path", s.Path), slog.Any("error", err))
		}
		return nil
	}

	age := s.now().Sub(info.ModTime())
	if age > s.MaxAge {
		slog.Debug("games cache is stale", slog.Duration("age", age), slog.Duration("max_age", s.MaxAge))
		return nil
	}

	if info.Size() == 0 {
		return nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		slog.Warn("failed to read games cache", slog.String("path", s.Path), slog.Any("error", err))
		return nil
	}

	var games []steam.Game
	if err := json.Unmarshal(data, &games); err != nil {
		slog.Warn("failed to load games from cache", slog.String("path", s.Path), slog.Any("error", err))
		return nil
	}

	if len(games) == 0 {
		return nil
	}

	slog.Debug("loaded games from cache", slog.Int("count", len(games)), slog.Duration("age", age))
	return games
}

// Save overwrites the cache with games. The snapshot is written to a temp
// file in the same directory and renamed into place.
func (s *Store) Save(games []steam.Game) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if games == nil {
		games = []steam.Game{}
	}

	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal games: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".games-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace games cache: %w", err)
	}

	return nil
}

// Age reports how long ago the cache was written. The error wraps
// fs.ErrNotExist when there is no cache file.
func (s *Store) Age() (time.Duration, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return 0, err
	}
	return s.now().Sub(info.ModTime()), nil
}

// Clear removes the cache file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove games cache: %w", err)
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
