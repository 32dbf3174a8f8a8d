package stats

import "braintrainer/internal/results"

type BadgeID string

const (
	BadgeVeteran       BadgeID = "veteran"
	BadgeSpeedDemon    BadgeID = "speed_demon"
	BadgePerfectionist BadgeID = "perfectionist"
	BadgeElephant      BadgeID = "elephant_memory"
	BadgeZenMaster     BadgeID = "zen_master"
)

type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

var AllBadges = map[BadgeID]Badge{
	BadgeVeteran:       {ID: BadgeVeteran, Name: "Veteran", Description: "Played 10+ games", Icon: "🏅"},
	BadgeSpeedDemon:    {ID: BadgeSpeedDemon, Name: "Speed Demon", Description: "Average reaction time under 300ms", Icon: "⚡"},
	BadgePerfectionist: {ID: BadgePerfectionist, Name: "Perfectionist", Description: "100% accuracy in pattern recognition", Icon: "✨"},
	BadgeElephant:      {ID: BadgeElephant, Name: "Elephant Memory", Description: "Reached level 10 in memory sequence", Icon: "🐘"},
	BadgeZenMaster:     {ID: BadgeZenMaster, Name: "Zen Master", Description: "Perfect focus score", Icon: "🧘"},
}

// badgeOrder is the display order of earned badges.
var badgeOrder = []BadgeID{BadgeVeteran, BadgeSpeedDemon, BadgePerfectionist, BadgeElephant, BadgeZenMaster}

// EvaluateBadges checks which badges the whole history has earned.
func EvaluateBadges(log results.Log) []Badge {
	earned := map[BadgeID]bool{}

	// Veteran: 10+ games of any type
	if len(log) >= 10 {
		earned[BadgeVeteran] = true
	}

	// Speed Demon: reaction average < 300ms
	if s := Summarize(log, results.Reaction); s != nil && s.AverageScore < 300 {
		earned[BadgeSpeedDemon] = true
	}

	for _, r := range log {
		switch {
		case r.GameType == results.Pattern && r.Score >= 100:
			earned[BadgePerfectionist] = true
		case r.GameType == results.Memory && r.Score >= 10:
			earned[BadgeElephant] = true
		case r.GameType == results.Focus && r.Score >= 100:
			earned[BadgeZenMaster] = true
		}
	}

	var badges []Badge
	for _, id := range badgeOrder {
		if earned[id] {
			badges = append(badges, AllBadges[id])
		}
	}
	return badges
}
