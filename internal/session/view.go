package session

import (
	"fmt"

	"braintrainer/internal/results"
	"braintrainer/internal/stats"
)

type View string

const (
	ViewMenu      View = "menu"
	ViewDashboard View = "dashboard"
	ViewMemory    View = View(results.Memory)
	ViewReaction  View = View(results.Reaction)
	ViewPattern   View = View(results.Pattern)
	ViewFocus     View = View(results.Focus)
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewMenu, ViewDashboard, ViewMemory, ViewReaction, ViewPattern, ViewFocus:
		return v, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownView)
}

type MenuItem struct {
	ID          results.GameType `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

type Menu struct {
	Games      []MenuItem `json:"games"`
	TotalGames int        `json:"totalGames"`
}

// Snapshot is what the player currently sees. Exactly one of Menu, Dashboard
// and Game is set, depending on View.
type Snapshot struct {
	View      View             `json:"view"`
	Menu      *Menu            `json:"menu,omitempty"`
	Dashboard *stats.Dashboard `json:"dashboard,omitempty"`
	Game      any              `json:"game,omitempty"`
}

func buildMenu(log results.Log) *Menu {
	m := &Menu{TotalGames: len(log)}
	for _, gt := range results.GameTypes {
		m.Games = append(m.Games, MenuItem{ID: gt, Title: gt.Title(), Description: gt.Description()})
	}
	return m
}
