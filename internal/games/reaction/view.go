package reaction

import "slices"

type View struct {
	Game       string  `json:"game"`
	State      string  `json:"state"`
	Round      int     `json:"round"`
	Rounds     int     `json:"rounds"`
	Attempts   []int64 `json:"attempts"`
	Last       int64   `json:"last,omitempty"`
	Label      string  `json:"label,omitempty"`
	FalseStart bool    `json:"falseStart,omitempty"`
	Average    float64 `json:"average,omitempty"`
	Best       int64   `json:"best,omitempty"`
	SaveError  string  `json:"saveError,omitempty"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	v := View{
		Game:      "reaction",
		Round:     len(g.attempts),
		Rounds:    Rounds,
		Attempts:  slices.Clone(g.attempts),
		SaveError: g.saveErr,
	}
	if v.Attempts == nil {
		v.Attempts = []int64{}
	}
	switch s := g.state.(type) {
	case Ready:
		v.State = "ready"
		v.FalseStart = s.FalseStart
	case Waiting:
		v.State = "waiting"
	case Click:
		v.State = "click"
	case Result:
		v.State = "result"
		v.Last = s.Last
		v.Label = Label(s.Last)
	case Complete:
		v.State = "complete"
		v.Last = s.Last
		v.Label = Label(s.Last)
		v.Average = s.Average
		v.Best = s.Best
	}
	return v
}
