// Package stats aggregates the result log into per-game summaries and the
// progress dashboard.
package stats

import (
	"fmt"
	"math"
	"slices"

	"braintrainer/internal/results"
)

// RecentWindow is how many of the latest results feed RecentAverage.
const RecentWindow = 10

type Stats struct {
	GameType      results.GameType `json:"gameType"`
	Title         string           `json:"title"`
	Unit          string           `json:"unit"`
	TotalPlays    int              `json:"totalPlays"`
	AverageScore  float64          `json:"averageScore"`
	BestScore     float64          `json:"bestScore"`
	RecentAverage float64          `json:"recentAverage"`
	RecentCount   int              `json:"recentCount"`
	Trend         float64          `json:"trend"`
	TrendLabel    string           `json:"trendLabel"`
}

// Summarize computes the statistics for one game type, or nil when the log
// holds no results of that type.
//
// BestScore is the maximum score for every type, including reaction where a
// lower latency is better. Trend compares only the latest score with the
// first one.
func Summarize(log results.Log, gt results.GameType) *Stats {
	matching := log.Filter(gt)
	if len(matching) == 0 {
		return nil
	}
	scores := matching.Scores()
	recent := matching.Last(RecentWindow).Scores()

	var trend float64
	if len(scores) > 1 {
		trend = scores[len(scores)-1] - scores[0]
	}

	return &Stats{
		GameType:      gt,
		Title:         gt.Title(),
		Unit:          gt.Unit(),
		TotalPlays:    len(scores),
		AverageScore:  round1(mean(scores)),
		BestScore:     round1(slices.Max(scores)),
		RecentAverage: round1(mean(recent)),
		RecentCount:   len(recent),
		Trend:         trend,
		TrendLabel:    TrendLabel(trend),
	}
}

func TrendLabel(trend float64) string {
	switch {
	case trend > 0:
		return "improving"
	case trend < 0:
		return "needs practice"
	default:
		return "stable"
	}
}

// FormatScore renders a score with one decimal and its unit, e.g. "287.6ms".
func FormatScore(gt results.GameType, score float64) string {
	return fmt.Sprintf("%.1f%s", score, gt.Unit())
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
