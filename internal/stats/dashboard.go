package stats

import (
	"time"

	"braintrainer/internal/results"
)

// Entry is one line of recent activity.
type Entry struct {
	ID        string           `json:"id"`
	GameType  results.GameType `json:"gameType"`
	Title     string           `json:"title"`
	Score     float64          `json:"score"`
	Display   string           `json:"display"`
	Date      string           `json:"date"`
	Timestamp time.Time        `json:"timestamp"`
}

type Dashboard struct {
	TotalGames int     `json:"totalGames"`
	Games      []Stats `json:"games"`
	Recent     []Entry `json:"recent"`
	Badges     []Badge `json:"badges"`
}

// BuildDashboard summarizes every game type that has been played, in menu
// order, along with the latest results newest first.
func BuildDashboard(log results.Log) Dashboard {
	d := Dashboard{
		TotalGames: len(log),
		Games:      []Stats{},
		Recent:     []Entry{},
		Badges:     EvaluateBadges(log),
	}
	if d.Badges == nil {
		d.Badges = []Badge{}
	}
	for _, gt := range results.GameTypes {
		if s := Summarize(log, gt); s != nil {
			d.Games = append(d.Games, *s)
		}
	}
	recent := log.Last(RecentWindow)
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		d.Recent = append(d.Recent, Entry{
			ID:        r.ID,
			GameType:  r.GameType,
			Title:     r.GameType.Title(),
			Score:     r.Score,
			Display:   FormatScore(r.GameType, r.Score),
			Date:      r.Date,
			Timestamp: r.Timestamp,
		})
	}
	return d
}
