// Package results holds the append-only log of finished game sessions and the
// store that persists it.
package results

import (
	"encoding/json"
	"fmt"
	"time"
)

type GameType string

const (
	Memory   GameType = "memory"
	Reaction GameType = "reaction"
	Pattern  GameType = "pattern"
	Focus    GameType = "focus"
)

// GameTypes lists every game in menu order.
var GameTypes = []GameType{Memory, Reaction, Pattern, Focus}

type gameInfo struct {
	title       string
	description string
	unit        string
}

var catalog = map[GameType]gameInfo{
	Memory:   {title: "Memory Sequence", description: "Remember and repeat sequences", unit: " lvl"},
	Reaction: {title: "Reaction Time", description: "Test your reflexes", unit: "ms"},
	Pattern:  {title: "Pattern Recognition", description: "Identify matching patterns", unit: "%"},
	Focus:    {title: "Focus Timer", description: "Sustain attention over time", unit: "%"},
}

func ParseGameType(s string) (GameType, error) {
	t := GameType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown game type: %s", s)
	}
	return t, nil
}

func (t GameType) Valid() bool {
	_, ok := catalog[t]
	return ok
}

func (t GameType) Title() string       { return catalog[t].title }
func (t GameType) Description() string { return catalog[t].description }

// Unit is the display suffix appended to scores of this type.
func (t GameType) Unit() string { return catalog[t].unit }

// LowerIsBetter reports whether smaller scores are better (reaction latency).
func (t GameType) LowerIsBetter() bool { return t == Reaction }

// Result is one completed session. It is never modified after creation.
type Result struct {
	ID        string          `json:"id"`
	GameType  GameType        `json:"gameType"`
	Score     float64         `json:"score"`
	Details   json.RawMessage `json:"details"`
	Timestamp time.Time       `json:"timestamp"`
	Date      string          `json:"date"`
}

// DecodeDetails unmarshals the game-specific payload into v.
func (r Result) DecodeDetails(v any) error {
	if err := json.Unmarshal(r.Details, v); err != nil {
		return fmt.Errorf("decoding %s details: %w", r.GameType, err)
	}
	return nil
}

// Draft is what a game hands over when a session ends; the store assigns
// the identity and timestamps.
type Draft struct {
	GameType GameType
	Score    float64
	Details  any
}

type MemoryDetails struct {
	FinalLevel     int `json:"finalLevel"`
	SequenceLength int `json:"sequenceLength"`
}

type ReactionDetails struct {
	Attempts []int64 `json:"attempts"`
	Best     int64   `json:"best"`
}

type PatternDetails struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type FocusDetails struct {
	Duration            float64 `json:"duration"`
	DistractionsClicked int     `json:"distractionsClicked"`
	TotalDistractions   int     `json:"totalDistractions"`
}

// Log is the chronological result history. Appends never reuse the backing
// array of an existing Log, so a Log value handed out stays unchanged.
type Log []Result

func (l Log) Filter(t GameType) Log {
	var out Log
	for _, r := range l {
		if r.GameType == t {
			out = append(out, r)
		}
	}
	return out
}

// Last returns the trailing n results (all of them if fewer exist).
func (l Log) Last(n int) Log {
	if n <= 0 {
		return nil
	}
	if len(l) <= n {
		return l
	}
	return l[len(l)-n:]
}

func (l Log) Scores() []float64 {
	scores := make([]float64, len(l))
	for i, r := range l {
		scores[i] = r.Score
	}
	return scores
}

func (l Log) with(r Result) Log {
	return append(l[:len(l):len(l)], r)
}

// Encode serializes the log as a JSON array; an empty log encodes as [].
func Encode(l Log) ([]byte, error) {
	if l == nil {
		l = Log{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding log: %w", err)
	}
	return b, nil
}

func Decode(b []byte) (Log, error) {
	var l Log
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("decoding log: %w", err)
	}
	return l, nil
}
