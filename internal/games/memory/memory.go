// Package memory implements the sequence recall game. Each round the sequence
// grows by one random cell, is revealed cell by cell, and must then be
// repeated in order. The first wrong press ends the game.
package memory

import (
	"fmt"
	"sync"
	"time"

	"braintrainer/internal/games"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
)

const (
	Cells     = 4
	LeadIn    = 500 * time.Millisecond
	Highlight = 600 * time.Millisecond
	Gap       = 300 * time.Millisecond
	Pause     = time.Second
)

// State is one of Idle, Showing, AwaitingInput, Advancing or GameOver.
type State interface{ state() }

type Idle struct{}

// Showing reveals Sequence. Step is the element being shown or about to be
// shown; Lit is true while it is highlighted.
type Showing struct {
	Level    int
	Sequence []int
	Step     int
	Lit      bool
}

type AwaitingInput struct {
	Level    int
	Sequence []int
	Entered  int
}

// Advancing is the pause after a fully repeated sequence. Level is already
// the next level.
type Advancing struct {
	Level    int
	Sequence []int
}

type GameOver struct {
	Level    int
	Sequence []int
}

func (Idle) state()          {}
func (Showing) state()       {}
func (AwaitingInput) state() {}
func (Advancing) state()     {}
func (GameOver) state()      {}

type Game struct {
	mu      sync.Mutex
	deps    games.Deps
	slot    *scheduler.Slot
	state   State
	saveErr string
	closed  bool
}

func New(deps games.Deps) *Game {
	deps = deps.WithDefaults()
	return &Game{
		deps:  deps,
		slot:  scheduler.NewSlot(deps.Scheduler),
		state: Idle{},
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Start begins a new game at level 1 from any state, abandoning a game in
// progress.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.slot.Cancel()
	g.saveErr = ""
	g.beginRound(nil, 1)
	g.notifyLocked()
}

// Press enters cell as the next element of the player's repetition.
func (g *Game) Press(cell int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.state.(AwaitingInput)
	if !ok || g.closed {
		return games.ErrNotAccepted
	}
	if cell < 0 || cell >= Cells {
		return fmt.Errorf("cell %d: %w", cell, games.ErrNotAccepted)
	}

	if s.Sequence[s.Entered] != cell {
		g.state = GameOver{Level: s.Level, Sequence: s.Sequence}
		err := g.deps.Recorder.Record(results.Draft{
			GameType: results.Memory,
			Score:    float64(s.Level),
			Details:  results.MemoryDetails{FinalLevel: s.Level, SequenceLength: len(s.Sequence)},
		})
		g.saveErr = games.SaveError(err)
		g.notifyLocked()
		return nil
	}

	s.Entered++
	if s.Entered < len(s.Sequence) {
		g.state = s
		g.notifyLocked()
		return nil
	}

	g.state = Advancing{Level: s.Level + 1, Sequence: s.Sequence}
	g.arm(Pause, func() {
		a := g.state.(Advancing)
		g.beginRound(a.Sequence, a.Level)
	})
	g.notifyLocked()
	return nil
}

// Close cancels pending reveal steps. A closed game ignores all input.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.slot.Cancel()
}

func (g *Game) beginRound(prev []int, level int) {
	seq := make([]int, len(prev), len(prev)+1)
	copy(seq, prev)
	seq = append(seq, g.deps.Rand.IntN(Cells))
	g.state = Showing{Level: level, Sequence: seq}
	g.arm(LeadIn, g.lightNext)
}

func (g *Game) lightNext() {
	s := g.state.(Showing)
	if s.Step >= len(s.Sequence) {
		g.state = AwaitingInput{Level: s.Level, Sequence: s.Sequence}
		return
	}
	s.Lit = true
	g.state = s
	g.arm(Highlight, g.unlight)
}

func (g *Game) unlight() {
	s := g.state.(Showing)
	s.Lit = false
	s.Step++
	g.state = s
	g.arm(Gap, g.lightNext)
}

// arm schedules step to run under the game lock unless it has been
// superseded or the game closed in the meantime.
func (g *Game) arm(d time.Duration, step func()) {
	g.slot.Arm(d, func(gen uint64) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed || !g.slot.Take(gen) {
			return
		}
		step()
		g.notifyLocked()
	})
}

func (g *Game) notifyLocked() {
	g.deps.Notify(g.viewLocked())
}
