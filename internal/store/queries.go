package store

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

// Fetch operations

// RecordFetch stores one fetch and a playtime sample for every game in a
// single transaction, returning the fetch ID. Duplicate app ids within a
// fetch keep the last record.
func (s *Store) RecordFetch(games []steam.Game, at time.Time) (int64, error) {
	total := 0
	for _, g := range games {
		total += g.PlaytimeForever
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO fetches (fetched_at, game_count, total_minutes) VALUES (?, ?, ?)`,
		at.UTC().Format(time.RFC3339),
		len(games),
		total,
	)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("failed to insert fetch: %w", classify(err))
	}

	fetchID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("failed to get fetch ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO playtime_samples
		(fetch_id, appid, name, minutes_total, minutes_windows, minutes_mac, minutes_linux, minutes_deck, last_played)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("failed to prepare sample insert: %w", classify(err))
	}
	defer stmt.Close()

	for _, g := range games {
		if _, err := stmt.Exec(
			fetchID,
			g.AppID,
			g.Name,
			g.PlaytimeForever,
			g.PlaytimeWindows,
			g.PlaytimeMac,
			g.PlaytimeLinux,
			g.PlaytimeDeck,
			g.LastPlayed,
		); err != nil {
			tx.Rollback() //nolint:errcheck
			return 0, fmt.Errorf("failed to insert sample for app %d: %w", g.AppID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit fetch: %w", err)
	}

	return fetchID, nil
}

// ListFetches returns recorded fetches, newest first. A limit of 0 or less
// returns all of them.
func (s *Store) ListFetches(limit int) ([]*Fetch, error) {
	query := `
		SELECT id, fetched_at, game_count, total_minutes
		FROM fetches
		ORDER BY id DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list fetches: %w", classify(err))
	}
	defer rows.Close()

	var fetches []*Fetch
	for rows.Next() {
		var f Fetch
		var fetchedAt string

		if err := rows.Scan(&f.ID, &fetchedAt, &f.GameCount, &f.TotalMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan fetch row: %w", err)
		}

		f.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at for fetch %d: %w", f.ID, err)
		}

		fetches = append(fetches, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetches: %w", err)
	}

	return fetches, nil
}

// LatestFetch returns the most recent fetch, or nil if none was recorded.
func (s *Store) LatestFetch() (*Fetch, error) {
	fetches, err := s.ListFetches(1)
	if err != nil {
		return nil, err
	}
	if len(fetches) == 0 {
		return nil, nil
	}
	return fetches[0], nil
}

// GetFetchCount returns the number of recorded fetches.
func (s *Store) GetFetchCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM fetches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get fetch count: %w", classify(err))
	}
	return count, nil
}

// Sample operations

// GameHistory returns the samples recorded for appID, newest first. A limit
// of 0 or less returns all of them.
func (s *Store) GameHistory(appID int, limit int) ([]*Sample, error) {
	query := `
		SELECT s.fetch_id, f.fetched_at, s.appid, s.name, s.minutes_total,
		       s.minutes_windows, s.minutes_mac, s.minutes_linux, s.minutes_deck, s.last_played
		FROM playtime_samples s
		JOIN fetches f ON f.id = s.fetch_id
		WHERE s.appid = ?
		ORDER BY s.fetch_id DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(query, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for app %d: %w", appID, classify(err))
	}
	defer rows.Close()

	var samples []*Sample
	for rows.Next() {
		var sample Sample
		var fetchedAt string

		err := rows.Scan(
			&sample.FetchID,
			&fetchedAt,
			&sample.AppID,
			&sample.Name,
			&sample.Total,
			&sample.Windows,
			&sample.Mac,
			&sample.Linux,
			&sample.Deck,
			&sample.LastPlayed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}

		sample.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at for fetch %d: %w", sample.FetchID, err)
		}

		samples = append(samples, &sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}

	return samples, nil
}

// DeleteFetchesBefore removes fetches (and their samples) recorded before
// cutoff and returns how many were deleted.
func (s *Store) DeleteFetchesBefore(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM fetches WHERE fetched_at < ?`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old fetches: %w", classify(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
