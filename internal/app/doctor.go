package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/cache"
	"github.com/blackwell-systems/steamstats/internal/config"
	"github.com/blackwell-systems/steamstats/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common setup issues",
	Long: `Runs diagnostic checks on your steamstats setup.

Checks:
  • Credentials file exists and holds STEAM_API_KEY and STEAM_ID
  • Cached library is present and fresh
  • History database is readable
  • bash and fzf are available for interactive mode

Missing credentials are critical and make the command fail. Everything else
is reported as a warning.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

// doctorReport counts issues by severity while checks print their results.
type doctorReport struct {
	w        io.Writer
	critical int
	warnings int
}

func (r *doctorReport) ok(format string, a ...any) {
	fmt.Fprintf(r.w, "✓ "+format+"\n", a...)
}

func (r *doctorReport) warn(format string, a ...any) {
	fmt.Fprintf(r.w, "⚠ "+format+"\n", a...)
	r.warnings++
}

func (r *doctorReport) fail(format string, a ...any) {
	fmt.Fprintf(r.w, "✗ "+format+"\n", a...)
	r.critical++
}

func (r *doctorReport) action(format string, a ...any) {
	fmt.Fprintf(r.w, "  Action: "+format+"\n", a...)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Running steamstats diagnostics...")
	fmt.Fprintln(out)

	r := &doctorReport{w: out}

	checkCredentials(r)
	checkCache(r)
	checkHistory(r)
	checkTools(r)

	fmt.Fprintln(out)
	if r.critical == 0 && r.warnings == 0 {
		fmt.Fprintln(out, "✓ All checks passed!")
		return nil
	}

	if r.critical > 0 {
		fmt.Fprintf(out, "Found %d critical issue(s) and %d warning(s).\n", r.critical, r.warnings)
		return fmt.Errorf("diagnostics failed")
	}

	fmt.Fprintf(out, "Found %d warning(s). steamstats will still work.\n", r.warnings)
	return nil
}

// Check 1: credentials, critical
func checkCredentials(r *doctorReport) {
	creds, err := config.LoadCredentials(envFilePath)
	switch {
	case errors.Is(err, config.ErrEnvFileNotFound):
		r.fail("%v", err)
		r.action("Create it with STEAM_API_KEY=<key> and STEAM_ID=<id>, or pass --env-file-path")
	case err != nil:
		r.fail("Credentials invalid: %v", err)
	default:
		r.ok("Credentials loaded from %s (Steam ID %d)", creds.EnvFilePath, creds.SteamID)
	}
}

// Check 2: cache freshness, warning only
func checkCache(r *doctorReport) {
	cachePath, err := getCachePath()
	if err != nil {
		r.warn("Cannot resolve cache path: %v", err)
		return
	}

	age, err := cache.New(cachePath, cache.DefaultMaxAge).Age()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.warn("No cached library at %s", cachePath)
		fmt.Fprintln(r.w, "  The next run fetches it from Steam")
	case err != nil:
		r.warn("Cannot read cache: %v", err)
	case age > cache.DefaultMaxAge:
		r.warn("Cached library is stale (fetched %s)", humanize.Time(timeAgo(age)))
		fmt.Fprintln(r.w, "  The next run fetches it from Steam")
	default:
		r.ok("Cached library is fresh (fetched %s)", humanize.Time(timeAgo(age)))
	}
}

// Check 3: history database, warning only
func checkHistory(r *doctorReport) {
	dbPath, err := getHistoryDBPath()
	if err != nil {
		r.warn("Cannot resolve history database path: %v", err)
		return
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		r.warn("No history database yet at %s", dbPath)
		fmt.Fprintln(r.w, "  It is created on the next fetch from Steam")
		return
	}

	st, err := store.New(dbPath)
	if err != nil {
		r.warn("Cannot open history database: %v", err)
		return
	}
	defer st.Close()

	latest, err := st.LatestFetch()
	if err != nil {
		r.warn("Cannot read history: %v", err)
		return
	}
	if latest == nil {
		r.warn("History database has no fetches yet")
		return
	}

	count, err := st.GetFetchCount()
	if err != nil {
		r.warn("Cannot count fetches: %v", err)
		return
	}
	r.ok("%s fetch(es) recorded, latest %s", humanize.Comma(int64(count)), humanize.Time(latest.FetchedAt))
}

// Check 4: interactive mode tools, warning only
func checkTools(r *doctorReport) {
	for _, tool := range requiredTools {
		path, err := exec.LookPath(tool)
		if err != nil {
			r.warn("%s not found in PATH (needed for --interactive)", tool)
			continue
		}
		r.ok("%s found: %s", tool, path)
	}
}
