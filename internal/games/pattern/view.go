package pattern

type View struct {
	Game      string    `json:"game"`
	State     string    `json:"state"`
	Round     int       `json:"round"`
	Rounds    int       `json:"rounds"`
	Correct   int       `json:"correct"`
	Target    *Pattern  `json:"target,omitempty"`
	Options   []Pattern `json:"options,omitempty"`
	Chosen    *int      `json:"chosen,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	SaveError string    `json:"saveError,omitempty"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	v := View{Game: "pattern", Rounds: Rounds, SaveError: g.saveErr}
	switch s := g.state.(type) {
	case NotStarted:
		v.State = "not_started"
	case RoundActive:
		v.State = "active"
		v.Round = s.Round + 1
		v.Correct = s.Correct
		v.Target = &s.Target
		v.Options = s.Options[:]
	case Feedback:
		v.State = "feedback"
		v.Round = s.Round
		v.Correct = s.Correct
		v.Target = &s.Target
		v.Options = s.Options[:]
		v.Chosen = &s.Chosen
		v.Feedback = feedback(s.LastCorrect)
	case Finished:
		v.State = "finished"
		v.Round = Rounds
		v.Correct = s.Correct
		v.Feedback = feedback(s.LastCorrect)
		v.Accuracy = Accuracy(s.Correct)
	}
	return v
}

func feedback(hit bool) string {
	if hit {
		return "correct"
	}
	return "wrong"
}
