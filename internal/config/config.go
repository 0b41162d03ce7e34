// Package config locates and loads the Steam credentials used by steamstats.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// AppName is the directory name used under the user's config home.
const AppName = "steam-platform-stats"

// Credential keys read from the env file or the process environment.
const (
	KeyAPIKey  = "STEAM_API_KEY"
	KeySteamID = "STEAM_ID"
)

var (
	ErrEnvFileNotFound = errors.New(".env file not found")
	ErrMissingAPIKey   = errors.New(KeyAPIKey + " variable is missing")
	ErrMissingSteamID  = errors.New(KeySteamID + " variable is missing")
	ErrInvalidSteamID  = errors.New(KeySteamID + " must be a numeric 64-bit Steam ID")
)

// Dir returns the steamstats config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/steam-platform-stats if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// DefaultEnvPath returns {Dir}/.env.
func DefaultEnvPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Credentials are the values needed to query the owned-games endpoint.
type Credentials struct {
	APIKey      string
	SteamID     uint64
	EnvFilePath string
}

// LoadCredentials reads credentials from the env file at path, or from
// DefaultEnvPath when path is empty. Variables already set in the process
// environment take precedence over the file.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		var err error
		path, err = DefaultEnvPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve env file path: %w", err)
		}
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrEnvFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	apiKey := strings.TrimSpace(v.GetString(KeyAPIKey))
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	rawID := strings.TrimSpace(v.GetString(KeySteamID))
	if rawID == "" {
		return nil, ErrMissingSteamID
	}

	steamID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || steamID == 0 {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidSteamID, rawID)
	}

	return &Credentials{
		APIKey:      apiKey,
		SteamID:     steamID,
		EnvFilePath: path,
	}, nil
}
