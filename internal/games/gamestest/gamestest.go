// Package gamestest provides scripted collaborators for game tests.
package gamestest

import (
	"sync"

	"braintrainer/internal/results"
)

// Rand replays fixed values. IntN takes the next value from Ints modulo n and
// Float64 the next value from Floats; both wrap around when exhausted and
// return zero when empty.
type Rand struct {
	Ints   []int
	Floats []float64
	i, f   int
}

func (r *Rand) IntN(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[r.i%len(r.Ints)]
	r.i++
	return v % n
}

func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[r.f%len(r.Floats)]
	r.f++
	return v
}

// Recorder collects drafts and fails with Err when it is set.
type Recorder struct {
	mu     sync.Mutex
	Drafts []results.Draft
	Err    error
}

func (r *Recorder) Record(d results.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Drafts = append(r.Drafts, d)
	return r.Err
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Drafts)
}

func (r *Recorder) Last() results.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Drafts) == 0 {
		return results.Draft{}
	}
	return r.Drafts[len(r.Drafts)-1]
}

// Views records every view a game announces.
type Views struct {
	mu    sync.Mutex
	Items []any
}

func (v *Views) Notify(view any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Items = append(v.Items, view)
}

func (v *Views) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.Items)
}
