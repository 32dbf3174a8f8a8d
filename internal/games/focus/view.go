package focus

type View struct {
	Game        string       `json:"game"`
	State       string       `json:"state"`
	Target      int          `json:"target"`
	Durations   []int        `json:"durations"`
	Elapsed     float64      `json:"elapsed"`
	Clicks      int          `json:"clicks"`
	Distractors []Distractor `json:"distractors"`
	Spawned     int          `json:"spawned"`
	Score       float64      `json:"score,omitempty"`
	SaveError   string       `json:"saveError,omitempty"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	v := View{
		Game:        "focus",
		Target:      g.targetLocked(),
		Durations:   Durations,
		Distractors: g.distractors.Active(),
		Spawned:     g.distractors.Spawned(),
		SaveError:   g.saveErr,
	}
	switch s := g.state.(type) {
	case Idle:
		v.State = "idle"
	case Running:
		v.State = "running"
		v.Elapsed = float64(s.Ticks) / float64(ticksPerSec)
		v.Clicks = s.Clicks
	case Complete:
		v.State = "complete"
		v.Elapsed = float64(s.Target)
		v.Clicks = s.Clicks
		v.Spawned = s.Spawned
		v.Score = s.Score
	}
	return v
}
