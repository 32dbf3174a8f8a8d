package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"braintrainer/internal/results"
	"braintrainer/internal/stats"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent results, newest first",
		Run:   runHistory,
	}

	cmd.Flags().IntP("limit", "l", 10, "Max results")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	l, err := loadLog(cmd.Context())
	if err != nil {
		exitErr("load results", err)
	}
	writeHistory(cmd.OutOrStdout(), l, limit, formatFlag, time.Now())
}

func writeHistory(w io.Writer, l results.Log, limit int, format string, now time.Time) {
	recent := slices.Clone(l.Last(limit))
	slices.Reverse(recent)

	if format == "json" {
		if recent == nil {
			recent = results.Log{}
		}
		b, _ := json.MarshalIndent(recent, "", "  ")
		fmt.Fprintln(w, string(b))
		return
	}

	if len(recent) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return
	}
	for _, r := range recent {
		fmt.Fprintf(w, "%-20s %10s  %s (%s)\n",
			r.GameType.Title(),
			stats.FormatScore(r.GameType, r.Score),
			r.Date,
			humanize.RelTime(r.Timestamp, now, "ago", "from now"),
		)
	}
}
