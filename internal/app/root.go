package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/config"
)

// dataDirName is created under the user's home directory and holds the games
// cache and the history database.
const dataDirName = ".steam-platform-stats"

var (
	dataDir     string
	verbose     bool
	envFilePath string
	refresh     bool

	// RootCmd is the root command for steamstats. Without a subcommand it
	// prints the platform banner and the games table.
	RootCmd = &cobra.Command{
		Use:   "steamstats",
		Short: "Per-platform playtime statistics for your Steam library",
		Long: `steamstats fetches the games you own on Steam and shows how much you
played each of them on Windows, macOS, Linux and the Steam Deck.

The library is cached for five minutes, so repeated invocations (for example
the previews of interactive mode) do not hit the Steam Web API again.

Credentials are read from an env file, by default
~/.config/steam-platform-stats/.env:

  STEAM_API_KEY=<your web API key>
  STEAM_ID=<your 64-bit Steam ID>

Variables already set in the environment take precedence over the file.`,
		Example: `  # Top 10 games on Linux
  steamstats --platform linux --limit 10

  # Only games played for more than two hours, without the banner
  steamstats --min-playtime-hours 2 --no-stats

  # Details for a single game
  steamstats --game-stats 440

  # Browse the library with fzf
  steamstats --interactive

  # Playtime recorded over time
  steamstats history --game 440`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: configureLogging,
		RunE:              runShow,
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the games cache and history (default: ~/"+dataDirName+")")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging on stderr")
	RootCmd.PersistentFlags().StringVar(&envFilePath, "env-file-path", "", "path to the .env file with STEAM_API_KEY and STEAM_ID")
	RootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "ignore the cached library and fetch it from Steam")

	registerShowFlags(RootCmd)

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which is passed down to the
// Steam API request.
func ExecuteContext(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

// configureLogging installs the process-wide slog handler. Logs go to stderr
// so they never mix with table output.
func configureLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// getDataDir returns the data directory, using the flag value or default.
func getDataDir() (string, error) {
	if dataDir != "" {
		return config.ExpandHome(dataDir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, dataDirName), nil
}

// getCachePath returns the path of the games cache file.
func getCachePath() (string, error) {
	dir, err := getDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "games.json"), nil
}

// getHistoryDBPath returns the history database path, creating the data
// directory if it doesn't exist.
func getHistoryDBPath() (string, error) {
	dir, err := getDataDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dir, "history.db"), nil
}
