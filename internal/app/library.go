package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackwell-systems/steamstats/internal/cache"
	"github.com/blackwell-systems/steamstats/internal/config"
	"github.com/blackwell-systems/steamstats/internal/output"
	"github.com/blackwell-systems/steamstats/internal/steam"
	"github.com/blackwell-systems/steamstats/internal/store"
)

type gameCache interface {
	Load() []steam.Game
	Save(games []steam.Game) error
	Clear() error
}

type gameFetcher interface {
	FetchOwnedGames(ctx context.Context, apiKey string, steamID uint64) ([]steam.Game, error)
}

type historyRecorder interface {
	RecordFetch(games []steam.Game, at time.Time) (int64, error)
	Close() error
}

// libraryLoader reads the library cache-aside: the cache when it is fresh,
// otherwise the Steam Web API. Credentials and the history database are only
// touched on a cache miss.
type libraryLoader struct {
	cache       gameCache
	fetcher     gameFetcher
	credentials func() (*config.Credentials, error)
	openHistory func() (historyRecorder, error)
	now         func() time.Time
	refresh     bool
}

func newLibraryLoader() (*libraryLoader, error) {
	cachePath, err := getCachePath()
	if err != nil {
		return nil, err
	}

	return &libraryLoader{
		cache:   cache.New(cachePath, cache.DefaultMaxAge),
		fetcher: steam.NewClient(),
		credentials: func() (*config.Credentials, error) {
			return config.LoadCredentials(envFilePath)
		},
		openHistory: func() (historyRecorder, error) {
			path, err := getHistoryDBPath()
			if err != nil {
				return nil, err
			}
			return store.Open(path)
		},
		now:     time.Now,
		refresh: refresh,
	}, nil
}

func (l *libraryLoader) load(ctx context.Context) ([]steam.Game, error) {
	if l.refresh {
		if err := l.cache.Clear(); err != nil {
			return nil, err
		}
	} else if games := l.cache.Load(); len(games) > 0 {
		slog.Debug("using cached library", slog.Int("games", len(games)))
		return games, nil
	}

	creds, err := l.credentials()
	if err != nil {
		return nil, err
	}

	spinner := output.NewSpinner("Fetching your Steam library...")
	spinner.Start()
	games, err := l.fetcher.FetchOwnedGames(ctx, creds.APIKey, creds.SteamID)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	if err := l.cache.Save(games); err != nil {
		return nil, fmt.Errorf("failed to cache library: %w", err)
	}

	l.record(games)
	return games, nil
}

// record stores a history sample for a fresh fetch. Failures are logged and
// never fail the command.
func (l *libraryLoader) record(games []steam.Game) {
	if l.openHistory == nil {
		return
	}

	h, err := l.openHistory()
	if err != nil {
		slog.Warn("failed to open history database", slog.Any("error", err))
		return
	}
	defer h.Close()

	id, err := h.RecordFetch(games, l.now())
	if err != nil {
		slog.Warn("failed to record playtime history", slog.Any("error", err))
		return
	}
	slog.Debug("recorded playtime history", slog.Int64("fetch_id", id), slog.Int("games", len(games)))
}
