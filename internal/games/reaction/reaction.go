// Package reaction implements the reaction time test: five rounds of waiting
// for a stimulus after a random delay and responding as fast as possible.
package reaction

import (
	"slices"
	"sync"
	"time"

	"braintrainer/internal/games"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
)

const (
	Rounds      = 5
	MinDelay    = 2 * time.Second
	DelaySpread = 3 * time.Second
)

// State is one of Ready, Waiting, Click, Result or Complete.
type State interface{ state() }

// Ready waits for the player to begin a round. FalseStart is set when the
// player got here by pressing too early.
type Ready struct {
	FalseStart bool
}

// Waiting holds the randomized delay before the stimulus.
type Waiting struct{}

// Click shows the stimulus; the next press is timed from StimulusAt.
type Click struct {
	StimulusAt time.Time
}

// Result shows the latency of the round just played.
type Result struct {
	Last int64
}

type Complete struct {
	Last    int64
	Average float64
	Best    int64
}

func (Ready) state()    {}
func (Waiting) state()  {}
func (Click) state()    {}
func (Result) state()   {}
func (Complete) state() {}

type Game struct {
	mu       sync.Mutex
	deps     games.Deps
	slot     *scheduler.Slot
	state    State
	attempts []int64
	saveErr  string
	closed   bool
}

func New(deps games.Deps) *Game {
	deps = deps.WithDefaults()
	return &Game{
		deps:  deps,
		slot:  scheduler.NewSlot(deps.Scheduler),
		state: Ready{},
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Attempts returns the latencies recorded in the current session, in
// milliseconds.
func (g *Game) Attempts() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.attempts)
}

// Press is the single player interaction. Pressing before the stimulus is a
// false start and returns the game to Ready without recording an attempt.
func (g *Game) Press() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return games.ErrNotAccepted
	}

	switch s := g.state.(type) {
	case Ready:
		g.startWaiting()
	case Waiting:
		g.slot.Cancel()
		g.state = Ready{FalseStart: true}
	case Click:
		elapsed := g.slot.Now().Sub(s.StimulusAt).Milliseconds()
		g.attempts = append(g.attempts[:len(g.attempts):len(g.attempts)], elapsed)
		if len(g.attempts) < Rounds {
			g.state = Result{Last: elapsed}
			break
		}
		c := Complete{Last: elapsed, Average: mean(g.attempts), Best: slices.Min(g.attempts)}
		g.state = c
		err := g.deps.Recorder.Record(results.Draft{
			GameType: results.Reaction,
			Score:    c.Average,
			Details:  results.ReactionDetails{Attempts: slices.Clone(g.attempts), Best: c.Best},
		})
		g.saveErr = games.SaveError(err)
	default:
		return games.ErrNotAccepted
	}
	g.notifyLocked()
	return nil
}

// Next starts the following round after a result.
func (g *Game) Next() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.state.(Result); !ok || g.closed {
		return games.ErrNotAccepted
	}
	g.startWaiting()
	g.notifyLocked()
	return nil
}

// Reset discards the session and returns to Ready from any state.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.slot.Cancel()
	g.attempts = nil
	g.saveErr = ""
	g.state = Ready{}
	g.notifyLocked()
}

func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.slot.Cancel()
}

func (g *Game) startWaiting() {
	delay := MinDelay + time.Duration(g.deps.Rand.Float64()*float64(DelaySpread))
	g.state = Waiting{}
	g.slot.Arm(delay, func(gen uint64) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed || !g.slot.Take(gen) {
			return
		}
		g.state = Click{StimulusAt: g.slot.Now()}
		g.notifyLocked()
	})
}

func (g *Game) notifyLocked() {
	g.deps.Notify(g.viewLocked())
}

// Label grades a single latency in milliseconds.
func Label(ms int64) string {
	switch {
	case ms < 200:
		return "lightning fast"
	case ms < 300:
		return "excellent"
	case ms < 400:
		return "good"
	default:
		return "keep practicing"
	}
}

func mean(xs []int64) float64 {
	var sum int64
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}
