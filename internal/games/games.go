// Package games holds what the four training games share: how a finished
// session reaches the result log, where randomness and time come from, and
// how a game announces that its view changed.
package games

import (
	"errors"
	"math/rand/v2"

	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
)

// ErrNotAccepted is returned when an input arrives in a state that does not
// take it, such as a cell press while a sequence is still being shown.
var ErrNotAccepted = errors.New("input not accepted in current state")

// Recorder receives the result of every finished session.
type Recorder interface {
	Record(d results.Draft) error
}

type RecorderFunc func(d results.Draft) error

func (f RecorderFunc) Record(d results.Draft) error { return f(d) }

// Rand is the subset of *rand.Rand the games draw from.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Notifier is called with the game's new view after every transition. It runs
// while the game is locked and must not call back into the game.
type Notifier func(view any)

// Deps are the collaborators every game is built with. Nil fields fall back
// to the wall clock, the global random source and no-op callbacks.
type Deps struct {
	Scheduler scheduler.Scheduler
	Rand      Rand
	Recorder  Recorder
	Notify    Notifier
}

func (d Deps) WithDefaults() Deps {
	if d.Scheduler == nil {
		d.Scheduler = scheduler.New(nil)
	}
	if d.Rand == nil {
		d.Rand = globalRand{}
	}
	if d.Recorder == nil {
		d.Recorder = RecorderFunc(func(results.Draft) error { return nil })
	}
	if d.Notify == nil {
		d.Notify = func(any) {}
	}
	return d
}

// SaveError renders a failed Record for the player.
func SaveError(err error) string {
	if err == nil {
		return ""
	}
	return "result could not be saved: " + err.Error()
}
