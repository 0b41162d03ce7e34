package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/output"
	"github.com/blackwell-systems/steamstats/internal/playtime"
)

// resolveMinPlaytime returns the minimum playtime threshold in minutes from
// whichever of --min-playtime-minutes and --min-playtime-hours was given.
func resolveMinPlaytime(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("min-playtime-hours") {
		if minHoursFlag < 0 {
			return 0, fmt.Errorf("invalid min-playtime-hours: %g (must be 0 or positive)", minHoursFlag)
		}
		return playtime.MinMinutesFromHours(minHoursFlag), nil
	}
	if minMinutesFlag < 0 {
		return 0, fmt.Errorf("invalid min-playtime-minutes: %d (must be 0 or positive)", minMinutesFlag)
	}
	return minMinutesFlag, nil
}

// colorMode maps the color flags to an output mode. The fzf table and the
// game panel are read by fzf --ansi, so they keep colors even when piped.
func colorMode(cmd *cobra.Command) output.ColorMode {
	switch {
	case noColor:
		return output.ColorNever
	case fzfTable, cmd.Flags().Changed("game-stats"):
		return output.ColorAlways
	default:
		return output.ColorAuto
	}
}

// timeAgo returns the instant that lies d in the past.
func timeAgo(d time.Duration) time.Time {
	return time.Now().Add(-d)
}
