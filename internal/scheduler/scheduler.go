// Package scheduler runs delayed callbacks that can be cancelled. Games own
// their pending callbacks through a Slot and release them on every transition
// out of the state that armed them.
package scheduler

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Task is a pending callback.
type Task interface {
	// Cancel stops the callback if it has not run yet and reports whether it
	// was stopped.
	Cancel() bool
}

type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Task
}

// Clock schedules callbacks on a clockwork clock.
type Clock struct {
	clock clockwork.Clock
}

// New returns a scheduler backed by c, or by the wall clock when c is nil.
func New(c clockwork.Clock) *Clock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Clock{clock: c}
}

func (s *Clock) Now() time.Time {
	return s.clock.Now()
}

// After runs fn on its own goroutine once d has elapsed.
func (s *Clock) After(d time.Duration, fn func()) Task {
	return timerTask{timer: s.clock.AfterFunc(d, fn)}
}

type timerTask struct {
	timer clockwork.Timer
}

func (t timerTask) Cancel() bool {
	return t.timer.Stop()
}
