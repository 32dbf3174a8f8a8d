package scheduler

import "time"

// Slot holds at most one pending task. Every Arm and Cancel bumps a
// generation counter; a callback that fires with an older generation is
// stale and must be dropped by the caller.
//
// Slot has no lock of its own. The owner calls Arm, Take and Cancel while
// holding the lock that guards the state the callback mutates.
type Slot struct {
	sched Scheduler
	task  Task
	gen   uint64
}

func NewSlot(s Scheduler) *Slot {
	return &Slot{sched: s}
}

// Arm cancels any pending task and schedules fire to run after d with the
// new generation.
func (s *Slot) Arm(d time.Duration, fire func(gen uint64)) {
	s.Cancel()
	gen := s.gen
	s.task = s.sched.After(d, func() { fire(gen) })
}

// Take claims the pending task for a firing callback. It returns false when
// gen is stale, in which case the callback must do nothing.
func (s *Slot) Take(gen uint64) bool {
	if s.task == nil || gen != s.gen {
		return false
	}
	s.task = nil
	return true
}

func (s *Slot) Cancel() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
	s.gen++
}

// Armed reports whether a task is pending.
func (s *Slot) Armed() bool {
	return s.task != nil
}

func (s *Slot) Now() time.Time {
	return s.sched.Now()
}
