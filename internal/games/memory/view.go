package memory

type View struct {
	Game           string `json:"game"`
	State          string `json:"state"`
	Level          int    `json:"level"`
	SequenceLength int    `json:"sequenceLength"`
	Highlighted    int    `json:"highlighted"`
	Entered        int    `json:"entered"`
	PlayerTurn     bool   `json:"playerTurn"`
	SaveError      string `json:"saveError,omitempty"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	v := View{Game: "memory", Level: 1, Highlighted: -1, SaveError: g.saveErr}
	switch s := g.state.(type) {
	case Idle:
		v.State = "idle"
	case Showing:
		v.State = "showing"
		v.Level = s.Level
		v.SequenceLength = len(s.Sequence)
		if s.Lit {
			v.Highlighted = s.Sequence[s.Step]
		}
	case AwaitingInput:
		v.State = "input"
		v.Level = s.Level
		v.SequenceLength = len(s.Sequence)
		v.Entered = s.Entered
		v.PlayerTurn = true
	case Advancing:
		v.State = "advancing"
		v.Level = s.Level
		v.SequenceLength = len(s.Sequence)
		v.Entered = len(s.Sequence)
	case GameOver:
		v.State = "over"
		v.Level = s.Level
		v.SequenceLength = len(s.Sequence)
	}
	return v
}
