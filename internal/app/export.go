package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the owned-games library as JSON or YAML",
	Long: `Prints every game in the library with its per-platform playtime in
minutes. The library is loaded the same way as for the stats view: from the
cache when it is fresh, otherwise from Steam.`,
	Example: `  steamstats export > games.json
  steamstats export --format yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "yaml" {
		return fmt.Errorf("invalid format %q (must be json or yaml)", exportFormat)
	}

	loader, err := newLibraryLoader()
	if err != nil {
		return err
	}
	games, err := loader.load(cmd.Context())
	if err != nil {
		return err
	}

	return writeExport(cmd.OutOrStdout(), games, exportFormat)
}

func writeExport(w io.Writer, games []steam.Game, format string) error {
	if games == nil {
		games = []steam.Game{}
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(games); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(games); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}
}
