package app

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/cache"
)

//go:embed interactive.sh
var interactiveScript string

// requiredTools must be on PATH for interactive mode.
var requiredTools = []string{"bash", "fzf"}

// runInteractive hands the terminal to the embedded fzf script. The script
// calls this executable back for the list and for each preview.
func runInteractive(cmd *cobra.Command) error {
	if err := checkInteractiveTools(); err != nil {
		return err
	}

	bash, _ := exec.LookPath("bash")

	if refresh {
		cachePath, err := getCachePath()
		if err != nil {
			return err
		}
		if err := cache.New(cachePath, cache.DefaultMaxAge).Clear(); err != nil {
			return err
		}
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate steamstats executable: %w", err)
	}

	// With -c, the first argument after the script becomes $0.
	shArgs := append([]string{"-c", interactiveScript, "steamstats-interactive"}, interactiveArgs(cmd)...)
	c := exec.CommandContext(cmd.Context(), bash, shArgs...) //nolint:gosec
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = append(os.Environ(), "STEAMSTATS_BIN="+self)

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && isQuietFzfExit(exitErr.ExitCode()) {
			return nil
		}
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}

func checkInteractiveTools() error {
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("interactive mode requires %s, which was not found in PATH", tool)
		}
	}
	return nil
}

// isQuietFzfExit reports whether fzf ended without a selection: 1 for no
// match, 130 for Esc or Ctrl-C.
func isQuietFzfExit(code int) bool {
	return code == 1 || code == 130
}

// interactiveArgs forwards the flags that shape the list and locate the data
// to the nested steamstats invocations.
func interactiveArgs(cmd *cobra.Command) []string {
	var args []string
	flags := cmd.Flags()

	if flags.Changed("platform") {
		args = append(args, "--platform", platformFlag)
	}
	if flags.Changed("limit") {
		args = append(args, "--limit", strconv.Itoa(limitFlag))
	}
	if flags.Changed("min-playtime-minutes") {
		args = append(args, "--min-playtime-minutes", strconv.Itoa(minMinutesFlag))
	}
	if flags.Changed("min-playtime-hours") {
		args = append(args, "--min-playtime-hours", strconv.FormatFloat(minHoursFlag, 'f', -1, 64))
	}
	if noColor {
		args = append(args, "--no-color")
	}
	if dataDir != "" {
		args = append(args, "--data-dir", dataDir)
	}
	if envFilePath != "" {
		args = append(args, "--env-file-path", envFilePath)
	}
	return args
}
