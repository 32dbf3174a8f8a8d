// Package pattern implements the pattern recognition quiz. Each of ten rounds
// shows a 3x3 target pattern among three near-duplicate decoys and the player
// picks the one that matches.
package pattern

import (
	"fmt"
	"sync"
	"time"

	"braintrainer/internal/games"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
)

const (
	Rounds  = 10
	Size    = 9
	Options = 4
	Pause   = time.Second
)

// maxDecoyDraws bounds the redraws spent looking for a decoy that differs
// from the ones already chosen.
const maxDecoyDraws = 32

type Pattern [Size]bool

// State is one of NotStarted, RoundActive, Feedback or Finished.
type State interface{ state() }

type NotStarted struct{}

// RoundActive waits for a selection. Round counts rounds already played.
type RoundActive struct {
	Round   int
	Correct int
	Target  Pattern
	Options [Options]Pattern
}

// Feedback shows the outcome of the last selection until the next round
// starts. Selections are rejected meanwhile.
type Feedback struct {
	Round       int
	Correct     int
	Target      Pattern
	Options     [Options]Pattern
	Chosen      int
	LastCorrect bool
}

type Finished struct {
	Correct     int
	LastCorrect bool
}

func (NotStarted) state()  {}
func (RoundActive) state() {}
func (Feedback) state()    {}
func (Finished) state()    {}

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
		state: NotStarted{},
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Start begins a fresh ten-round quiz from any state.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.slot.Cancel()
	g.saveErr = ""
	g.beginRound(0, 0)
	g.notifyLocked()
}

// Select picks the option at index i of the current round.
func (g *Game) Select(i int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.state.(RoundActive)
	if !ok || g.closed {
		return games.ErrNotAccepted
	}
	if i < 0 || i >= Options {
		return fmt.Errorf("option %d: %w", i, games.ErrNotAccepted)
	}

	hit := s.Options[i] == s.Target
	correct := s.Correct
	if hit {
		correct++
	}
	played := s.Round + 1

	if played >= Rounds {
		g.state = Finished{Correct: correct, LastCorrect: hit}
		err := g.deps.Recorder.Record(results.Draft{
			GameType: results.Pattern,
			Score:    Accuracy(correct),
			Details:  results.PatternDetails{Correct: correct, Total: Rounds},
		})
		g.saveErr = games.SaveError(err)
		g.notifyLocked()
		return nil
	}

	g.state = Feedback{
		Round:       played,
		Correct:     correct,
		Target:      s.Target,
		Options:     s.Options,
		Chosen:      i,
		LastCorrect: hit,
	}
	g.slot.Arm(Pause, func(gen uint64) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed || !g.slot.Take(gen) {
			return
		}
		f := g.state.(Feedback)
		g.beginRound(f.Round, f.Correct)
		g.notifyLocked()
	})
	g.notifyLocked()
	return nil
}

func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.slot.Cancel()
}

func (g *Game) beginRound(round, correct int) {
	target, options := Generate(g.deps.Rand)
	g.state = RoundActive{Round: round, Correct: correct, Target: target, Options: options}
}

func (g *Game) notifyLocked() {
	g.deps.Notify(g.viewLocked())
}

// Accuracy converts a correct count into a percentage of all rounds.
func Accuracy(correct int) float64 {
	return float64(correct) * 100 / Rounds
}

// Generate draws a target and returns it shuffled among three decoys. Each
// decoy flips one or two distinct cells of the target and differs from the
// other decoys.
func Generate(r games.Rand) (Pattern, [Options]Pattern) {
	var target Pattern
	for i := range target {
		target[i] = r.Float64() > 0.5
	}

	options := [Options]Pattern{target}
	for n := 1; n < Options; n++ {
		d := decoy(r, target)
		for draws := 1; draws < maxDecoyDraws && contains(options[:n], d); draws++ {
			d = decoy(r, target)
		}
		options[n] = d
	}

	for i := Options - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		options[i], options[j] = options[j], options[i]
	}
	return target, options
}

func decoy(r games.Rand, target Pattern) Pattern {
	d := target
	first := r.IntN(Size)
	d[first] = !d[first]
	if r.IntN(2) == 1 {
		second := r.IntN(Size - 1)
		if second >= first {
			second++
		}
		d[second] = !d[second]
	}
	return d
}

func contains(ps []Pattern, p Pattern) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}
