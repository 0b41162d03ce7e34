package app

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/output"
	"github.com/blackwell-systems/steamstats/internal/playtime"
	"github.com/blackwell-systems/steamstats/internal/steam"
)

var (
	platformFlag   string
	limitFlag      int
	minMinutesFlag int
	minHoursFlag   float64
	noStats        bool
	noTable        bool
	noColor        bool
	gameStatsFlag  int
	fzfTable       bool
	interactive    bool
)

func registerShowFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&platformFlag, "platform", "p", string(playtime.All), "platform to rank by: windows, mac, linux, deck or all")
	f.IntVarP(&limitFlag, "limit", "l", 0, "show at most N games (0 = all)")
	f.IntVar(&minMinutesFlag, "min-playtime-minutes", 0, "only show games played for more than N minutes")
	f.Float64Var(&minHoursFlag, "min-playtime-hours", 0, "only show games played for more than N hours")
	f.BoolVar(&noStats, "no-stats", false, "hide the platform banner (only show games)")
	f.BoolVar(&noTable, "no-table", false, "hide the games table (only show the banner)")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	f.IntVar(&gameStatsFlag, "game-stats", 0, "show the detail panel for the game with this AppID")
	f.BoolVar(&fzfTable, "fzf-table", false, "render the table for fzf: no header or borders, forced colors, AppID column")
	f.BoolVarP(&interactive, "interactive", "i", false, "browse the library with fzf")

	cmd.MarkFlagsMutuallyExclusive("min-playtime-minutes", "min-playtime-hours")
	cmd.MarkFlagsMutuallyExclusive("no-stats", "no-table")
}

func runShow(cmd *cobra.Command, args []string) error {
	if interactive {
		return runInteractive(cmd)
	}

	platform, err := playtime.ParsePlatform(platformFlag)
	if err != nil {
		return err
	}
	if limitFlag < 0 {
		return fmt.Errorf("invalid limit: %d (must be 0 or positive)", limitFlag)
	}
	minMinutes, err := resolveMinPlaytime(cmd)
	if err != nil {
		return err
	}

	loader, err := newLibraryLoader()
	if err != nil {
		return err
	}
	games, err := loader.load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	th := output.NewTheme(out, colorMode(cmd))

	if cmd.Flags().Changed("game-stats") {
		return showGame(out, th, games, gameStatsFlag, time.Now())
	}

	showLibrary(out, th, games, platform, minMinutes, limitFlag)
	return nil
}

// showGame prints the detail panel for one game. A missing game is reported
// in the output, not as an error, so an fzf preview stays readable.
func showGame(w io.Writer, th *output.Theme, games []steam.Game, appID int, now time.Time) error {
	game, ok := playtime.Find(games, appID)
	if !ok {
		fmt.Fprint(w, output.RenderGameNotFound(th, appID))
		return nil
	}
	fmt.Fprint(w, output.RenderGamePanel(th, game, now))
	return nil
}

// showLibrary ranks games on platform and prints the banner and table the
// show flags ask for.
func showLibrary(w io.Writer, th *output.Theme, games []steam.Game, platform playtime.Platform, minMinutes, limit int) {
	playtime.SortByPlatform(games, platform)

	if !noStats {
		fmt.Fprint(w, output.RenderPlatformStats(th, platform, playtime.Summarize(games, platform)))
	}

	if noTable {
		return
	}

	rows := playtime.BuildRows(games, platform, minMinutes, limit)
	if fzfTable {
		fmt.Fprint(w, output.RenderFzfTable(th, rows))
		return
	}
	fmt.Fprint(w, output.RenderGamesTable(th, rows))
}
