// Package focus implements the sustained attention task: the player keeps
// still for a chosen duration while distractors pop up, and every distractor
// clicked costs focus score.
package focus

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"braintrainer/internal/games"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
)

const (
	Tick          = 100 * time.Millisecond
	SpawnChance   = 0.02
	DefaultTarget = 60
	ticksPerSec   = int(time.Second / Tick)
)

// Durations are the selectable session lengths in seconds.
var Durations = []int{30, 60, 90}

// State is one of Idle, Running or Complete.
type State interface{ state() }

type Idle struct {
	Target int
}

type Running struct {
	Target int
	Ticks  int
	Clicks int
}

type Complete struct {
	Target  int
	Clicks  int
	Spawned int
	Score   float64
}

func (Idle) state()     {}
func (Running) state()  {}
func (Complete) state() {}

type Game struct {
	mu          sync.Mutex
	deps        games.Deps
	slot        *scheduler.Slot
	state       State
	distractors *Distractors
	saveErr     string
	closed      bool
}

func New(deps games.Deps) *Game {
	deps = deps.WithDefaults()
	return &Game{
		deps:        deps,
		slot:        scheduler.NewSlot(deps.Scheduler),
		state:       Idle{Target: DefaultTarget},
		distractors: NewDistractors(),
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Distractors returns the distractors currently on screen.
func (g *Game) Distractors() []Distractor {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.distractors.Active()
}

// SelectDuration sets the session length. It is only accepted between
// sessions.
func (g *Game) SelectDuration(seconds int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return games.ErrNotAccepted
	}
	switch g.state.(type) {
	case Idle, Complete:
	default:
		return games.ErrNotAccepted
	}
	if !slices.Contains(Durations, seconds) {
		return fmt.Errorf("duration %ds: %w", seconds, games.ErrNotAccepted)
	}
	g.state = Idle{Target: seconds}
	g.notifyLocked()
	return nil
}

// Start begins a session with the selected duration, restarting one that is
// already running.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.slot.Cancel()
	g.distractors.Clear()
	g.saveErr = ""
	g.state = Running{Target: g.targetLocked()}
	g.armTick()
	g.notifyLocked()
}

// Click dismisses distractor id and counts it against the score.
func (g *Game) Click(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.state.(Running)
	if !ok || g.closed {
		return games.ErrNotAccepted
	}
	if !g.distractors.Dismiss(id) {
		return fmt.Errorf("distractor %d: %w", id, games.ErrNotAccepted)
	}
	s.Clicks++
	g.state = s
	g.notifyLocked()
	return nil
}

func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.slot.Cancel()
}

func (g *Game) armTick() {
	g.slot.Arm(Tick, func(gen uint64) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed || !g.slot.Take(gen) {
			return
		}
		g.tick()
		g.notifyLocked()
	})
}

func (g *Game) tick() {
	s := g.state.(Running)
	s.Ticks++
	limit := s.Target * ticksPerSec

	if g.deps.Rand.Float64() < SpawnChance && s.Ticks < limit {
		x := g.deps.Rand.Float64()*80 + 10
		y := g.deps.Rand.Float64()*60 + 20
		g.distractors.Add(x, y, g.slot.Now())
	}

	if s.Ticks < limit {
		g.state = s
		g.armTick()
		return
	}

	c := Complete{
		Target:  s.Target,
		Clicks:  s.Clicks,
		Spawned: g.distractors.Spawned(),
		Score:   Score(s.Target, s.Clicks),
	}
	g.state = c
	g.distractors.Clear()
	err := g.deps.Recorder.Record(results.Draft{
		GameType: results.Focus,
		Score:    c.Score,
		Details: results.FocusDetails{
			Duration:            float64(c.Target),
			DistractionsClicked: c.Clicks,
			TotalDistractions:   c.Spawned,
		},
	})
	g.saveErr = games.SaveError(err)
}

func (g *Game) targetLocked() int {
	switch s := g.state.(type) {
	case Idle:
		return s.Target
	case Running:
		return s.Target
	case Complete:
		return s.Target
	}
	return DefaultTarget
}

func (g *Game) notifyLocked() {
	g.deps.Notify(g.viewLocked())
}

// Score is the focus percentage for a session of target seconds with the
// given number of distractor clicks, floored at zero.
func Score(target, clicks int) float64 {
	return math.Max(0, float64(target-clicks)*100/float64(target))
}
