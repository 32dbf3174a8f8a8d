package focus

import (
	"sort"
	"time"
)

type Distractor struct {
	ID        int       `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	SpawnedAt time.Time `json:"-"`
	Dismissed bool      `json:"-"`
}

// Distractors tracks the markers spawned during one focus session. It is
// guarded by the owning game's lock.
type Distractors struct {
	items  map[int]*Distractor
	nextID int
}

func NewDistractors() *Distractors {
	return &Distractors{
		items:  make(map[int]*Distractor),
		nextID: 1,
	}
}

func (s *Distractors) Add(x, y float64, at time.Time) *Distractor {
	id := s.nextID
	s.nextID++
	d := &Distractor{ID: id, X: x, Y: y, SpawnedAt: at}
	s.items[id] = d
	return d
}

// Dismiss marks a visible distractor as clicked. It reports false for
// unknown or already dismissed ids.
func (s *Distractors) Dismiss(id int) bool {
	d, ok := s.items[id]
	if !ok || d.Dismissed {
		return false
	}
	d.Dismissed = true
	return true
}

// Active returns the visible distractors ordered by id.
func (s *Distractors) Active() []Distractor {
	list := make([]Distractor, 0, len(s.items))
	for _, d := range s.items {
		if !d.Dismissed {
			list = append(list, *d)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Spawned is the number of distractors added since the last Clear.
func (s *Distractors) Spawned() int {
	return s.nextID - 1
}

func (s *Distractors) Clear() {
	s.items = make(map[int]*Distractor)
	s.nextID = 1
}
