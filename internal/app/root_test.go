package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/blackwell-systems/steamstats/internal/cache"
	"github.com/blackwell-systems/steamstats/internal/steam"
)

// resetFlags restores every root and subcommand flag to its default so that
// tests executing RootCmd do not leak state into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	RootCmd.PersistentFlags().VisitAll(reset)
	RootCmd.Flags().VisitAll(reset)
	for _, cmd := range RootCmd.Commands() {
		cmd.Flags().VisitAll(reset)
	}
}

// seedLibrary writes a fresh games cache into a temp data dir and points
// --data-dir at it, so commands never reach the network.
func seedLibrary(t *testing.T, games []steam.Game) string {
	t.Helper()
	dir := t.TempDir()
	if err := cache.New(filepath.Join(dir, "games.json"), 0).Save(games); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return dir
}

func libraryFixture() []steam.Game {
	return []steam.Game{
		{AppID: 440, Name: "Team Fortress 2", PlaytimeForever: 600, PlaytimeWindows: 480, PlaytimeLinux: 120},
		{AppID: 620, Name: "Portal 2", PlaytimeForever: 90, PlaytimeMac: 90},
		{AppID: 570, Name: "Dota 2", PlaytimeForever: 300, PlaytimeLinux: 200, PlaytimeDeck: 100, LastPlayed: time.Now().Add(-48 * time.Hour).Unix()},
		{AppID: 10, Name: "Counter-Strike"},
	}
}

// runRoot executes RootCmd with args and returns what it wrote to stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	defer func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	}()

	err := RootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "steamstats" {
		t.Errorf("expected Use to be 'steamstats', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	if !RootCmd.SilenceUsage || !RootCmd.SilenceErrors {
		t.Error("expected usage and errors to be silenced; main prints errors")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	expectedCommands := []string{"history", "export", "doctor"}
	foundCommands := make(map[string]bool)

	for _, cmd := range RootCmd.Commands() {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	for _, name := range []string{"data-dir", "verbose", "env-file-path", "refresh"} {
		flag := RootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag to be registered", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s flag to have usage text", name)
		}
	}
}

func TestRootCommandFlagDefaults(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"platform", "p", "all"},
		{"limit", "l", "0"},
		{"min-playtime-minutes", "", "0"},
		{"min-playtime-hours", "", "0"},
		{"no-stats", "", "false"},
		{"no-table", "", "false"},
		{"no-color", "", "false"},
		{"game-stats", "", "0"},
		{"fzf-table", "", "false"},
		{"interactive", "i", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := RootCmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("flag --%s not defined", tt.name)
			}
			if flag.DefValue != tt.def {
				t.Errorf("--%s default: got %s, want %s", tt.name, flag.DefValue, tt.def)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand: got %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestGetDataDir(t *testing.T) {
	old := dataDir
	defer func() { dataDir = old }()

	dataDir = "/tmp/steamstats-test"
	got, err := getDataDir()
	if err != nil {
		t.Fatalf("getDataDir() error: %v", err)
	}
	if got != "/tmp/steamstats-test" {
		t.Errorf("getDataDir() = %q, want flag value", got)
	}

	dataDir = ""
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err = getDataDir()
	if err != nil {
		t.Fatalf("getDataDir() error: %v", err)
	}
	if want := filepath.Join(home, dataDirName); got != want {
		t.Errorf("getDataDir() = %q, want %q", got, want)
	}
}

func TestDataPaths(t *testing.T) {
	old := dataDir
	defer func() { dataDir = old }()
	dataDir = filepath.Join(t.TempDir(), "nested")

	cachePath, err := getCachePath()
	if err != nil {
		t.Fatalf("getCachePath() error: %v", err)
	}
	if cachePath != filepath.Join(dataDir, "games.json") {
		t.Errorf("getCachePath() = %q", cachePath)
	}

	dbPath, err := getHistoryDBPath()
	if err != nil {
		t.Fatalf("getHistoryDBPath() error: %v", err)
	}
	if dbPath != filepath.Join(dataDir, "history.db") {
		t.Errorf("getHistoryDBPath() = %q", dbPath)
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("expected data dir to be created: %v", err)
	}
}

func TestConfigureLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	old := verbose
	defer func() { verbose = old }()

	verbose = false
	if err := configureLogging(RootCmd, nil); err != nil {
		t.Fatalf("configureLogging() error: %v", err)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info logs to be disabled by default")
	}

	verbose = true
	if err := configureLogging(RootCmd, nil); err != nil {
		t.Fatalf("configureLogging() error: %v", err)
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logs with --verbose")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	_, err := runRoot(t, "unexpected")
	if err == nil {
		t.Fatal("expected an error for a positional argument")
	}
}

func TestRootCommand_HelpMentionsCredentials(t *testing.T) {
	out, err := runRoot(t, "--help")
	if err != nil {
		t.Fatalf("--help error: %v", err)
	}
	for _, want := range []string{"STEAM_API_KEY", "STEAM_ID", "--platform"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}
