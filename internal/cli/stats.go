package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"braintrainer/internal/results"
	"braintrainer/internal/stats"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats [game]",
		Short: "Show per-game statistics",
		Long:  "Show the dashboard, or the statistics of a single game (memory, reaction, pattern, focus).",
		Args:  cobra.MaximumNArgs(1),
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	l, err := loadLog(cmd.Context())
	if err != nil {
		exitErr("load results", err)
	}
	game := ""
	if len(args) == 1 {
		game = args[0]
	}
	if err := writeStats(cmd.OutOrStdout(), l, game, formatFlag); err != nil {
		exitErr("stats", err)
	}
}

func writeStats(w io.Writer, l results.Log, game, format string) error {
	var out any
	var summaries []stats.Stats
	var badges []stats.Badge
	if game != "" {
		gt, err := results.ParseGameType(game)
		if err != nil {
			return err
		}
		summaries = []stats.Stats{}
		if s := stats.Summarize(l, gt); s != nil {
			summaries = append(summaries, *s)
		}
		out = summaries
	} else {
		d := stats.BuildDashboard(l)
		summaries, badges = d.Games, d.Badges
		out = d
	}

	if format == "json" {
		b, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(b))
		return nil
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return nil
	}
	if game == "" {
		fmt.Fprintf(w, "Total games: %d\n\n", len(l))
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\n", s.Title)
		fmt.Fprintf(w, "  plays:   %d\n", s.TotalPlays)
		fmt.Fprintf(w, "  average: %s\n", stats.FormatScore(s.GameType, s.AverageScore))
		fmt.Fprintf(w, "  best:    %s\n", stats.FormatScore(s.GameType, s.BestScore))
		fmt.Fprintf(w, "  recent:  %s (last %d)\n", stats.FormatScore(s.GameType, s.RecentAverage), s.RecentCount)
		fmt.Fprintf(w, "  trend:   %s\n", s.TrendLabel)
	}
	if len(badges) > 0 {
		fmt.Fprintln(w, "\nBadges")
		for _, b := range badges {
			fmt.Fprintf(w, "  %s %s: %s\n", b.Icon, b.Name, b.Description)
		}
	}
	return nil
}
