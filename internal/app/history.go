package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/steamstats/internal/output"
	"github.com/blackwell-systems/steamstats/internal/store"
)

var (
	historyGame      int
	historyLimit     int
	historyPruneDays int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show playtime recorded across past fetches",
	Long: `Every time steamstats fetches your library from Steam it records a
sample of each game's playtime per platform. The history command lists
those fetches, or the samples of a single game with the playtime gained
since the previous sample.

Samples are only recorded on a real fetch, not when the cached library is
used.`,
	Example: `  # List recent fetches
  steamstats history

  # Playtime of Team Fortress 2 over time
  steamstats history --game 440

  # Drop fetches older than 90 days
  steamstats history --prune-days 90`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyGame, "game", 0, "show the samples recorded for this AppID")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "show at most N rows (0 = all)")
	historyCmd.Flags().IntVar(&historyPruneDays, "prune-days", 0, "delete fetches older than N days before listing")
	historyCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("invalid limit: %d (must be 0 or positive)", historyLimit)
	}
	if historyPruneDays < 0 {
		return fmt.Errorf("invalid prune-days: %d (must be positive)", historyPruneDays)
	}

	dbPath, err := getHistoryDBPath()
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	th := output.NewTheme(out, colorMode(cmd))
	now := time.Now()

	if historyPruneDays > 0 {
		cutoff := now.AddDate(0, 0, -historyPruneDays)
		deleted, err := st.DeleteFetchesBefore(cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d fetch(es) older than %d days.\n\n", deleted, historyPruneDays)
	}

	if cmd.Flags().Changed("game") {
		samples, err := st.GameHistory(historyGame, historyLimit)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			fmt.Fprintf(out, "No history recorded for AppID %d.\n", historyGame)
			return nil
		}
		fmt.Fprint(out, output.RenderGameHistory(th, samples))
		return nil
	}

	fetches, err := st.ListFetches(historyLimit)
	if err != nil {
		return err
	}
	fmt.Fprint(out, output.RenderFetchHistory(th, fetches, now))
	return nil
}
