package cli

import (
	"encoding/json"
	"fmt"

	"braintrainer/internal/results"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the result log as JSON",
		Long:  "Export the full result log as a JSON array. Filter by game with -g.",
		Run:   runExport,
	}

	cmd.Flags().StringP("game", "g", "", "Filter by game type")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	game, _ := cmd.Flags().GetString("game")

	l, err := loadLog(cmd.Context())
	if err != nil {
		exitErr("load results", err)
	}
	if game != "" {
		gt, err := results.ParseGameType(game)
		if err != nil {
			exitErr("export", err)
		}
		l = l.Filter(gt)
	}
	if l == nil {
		l = results.Log{}
	}

	b, _ := json.MarshalIndent(l, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
