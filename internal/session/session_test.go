package session

import (
	"errors"
	"testing"
	"time"

	"braintrainer/internal/events"
	"braintrainer/internal/games"
	"braintrainer/internal/games/focus"
	"braintrainer/internal/games/gamestest"
	"braintrainer/internal/games/memory"
	"braintrainer/internal/games/pattern"
	"braintrainer/internal/games/reaction"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
	"braintrainer/internal/stats"
)

type staticHistory results.Log

func (h staticHistory) Log() results.Log { return results.Log(h) }

type fixture struct {
	sess  *Session
	clock *scheduler.Manual
	rec   *gamestest.Recorder
}

func newFixture(history results.Log) *fixture {
	f := &fixture{
		clock: scheduler.NewManual(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)),
		rec:   &gamestest.Recorder{},
	}
	f.sess = New("player-1", Config{
		Scheduler: f.clock,
		Rand:      &gamestest.Rand{Ints: []int{2}, Floats: []float64{0.5}},
		Recorder:  f.rec,
		History:   staticHistory(history),
	})
	return f
}

func TestNew_StartsAtMenu(t *testing.T) {
	f := newFixture(results.Log{{GameType: results.Memory, Score: 4}})
	snap := f.sess.Snapshot()
	if snap.View != ViewMenu || snap.Menu == nil {
		t.Fatalf("Snapshot() = %+v, want menu", snap)
	}
	if len(snap.Menu.Games) != 4 || snap.Menu.Games[0].ID != results.Memory {
		t.Errorf("menu games = %+v", snap.Menu.Games)
	}
	if snap.Menu.TotalGames != 1 {
		t.Errorf("TotalGames = %d, want 1", snap.Menu.TotalGames)
	}
}

func TestNavigate_GameViews(t *testing.T) {
	f := newFixture(nil)
	tests := []struct {
		view View
		want string
	}{
		{ViewMemory, "memory"},
		{ViewReaction, "reaction"},
		{ViewPattern, "pattern"},
		{ViewFocus, "focus"},
	}
	for _, tt := range tests {
		snap, err := f.sess.Navigate(tt.view)
		if err != nil {
			t.Fatalf("Navigate(%s) error: %v", tt.view, err)
		}
		var got string
		switch v := snap.Game.(type) {
		case memory.View:
			got = v.Game
		case reaction.View:
			got = v.Game
		case pattern.View:
			got = v.Game
		case focus.View:
			got = v.Game
		}
		if got != tt.want {
			t.Errorf("Navigate(%s) game view = %#v", tt.view, snap.Game)
		}
	}
}

func TestNavigate_Dashboard(t *testing.T) {
	f := newFixture(results.Log{
		{GameType: results.Memory, Score: 4},
		{GameType: results.Memory, Score: 7},
	})
	snap, err := f.sess.Navigate(ViewDashboard)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Dashboard == nil || snap.Game != nil || snap.Menu != nil {
		t.Fatalf("Snapshot() = %+v, want dashboard only", snap)
	}
	want := stats.Summarize(results.Log{{GameType: results.Memory, Score: 4}, {GameType: results.Memory, Score: 7}}, results.Memory)
	if got := snap.Dashboard.Games[0]; got.Trend != want.Trend || got.BestScore != 7 {
		t.Errorf("dashboard memory stats = %+v", got)
	}
}

func TestNavigate_UnknownView(t *testing.T) {
	f := newFixture(nil)
	if _, err := f.sess.Navigate("chess"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("Navigate(chess) = %v, want ErrUnknownView", err)
	}
	if f.sess.View() != ViewMenu {
		t.Errorf("View() = %s, want menu", f.sess.View())
	}
}

func TestNavigate_CancelsGameTimers(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewReaction)
	f.sess.Dispatch(Action{Type: "press"})
	if f.clock.Pending() != 1 {
		t.Fatalf("pending callbacks = %d, want 1", f.clock.Pending())
	}

	f.sess.Navigate(ViewMenu)
	if f.clock.Pending() != 0 {
		t.Errorf("pending callbacks after leaving = %d, want 0", f.clock.Pending())
	}
	f.clock.Advance(10 * time.Second)
}

func TestNavigate_FreshGame(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewPattern)
	f.sess.Dispatch(Action{Type: "start"})
	snap, _ := f.sess.Navigate(ViewPattern)

	if v := snap.Game.(pattern.View); v.State != "not_started" {
		t.Errorf("re-entered pattern state = %q, want not_started", v.State)
	}
}

func TestDispatch_NoActiveGame(t *testing.T) {
	f := newFixture(nil)
	if _, err := f.sess.Dispatch(Action{Type: "press"}); !errors.Is(err, ErrNoActiveGame) {
		t.Errorf("Dispatch() on menu = %v, want ErrNoActiveGame", err)
	}
}

func TestDispatch_UnknownAction(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewMemory)
	if _, err := f.sess.Dispatch(Action{Type: "select"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Dispatch(select) on memory = %v, want ErrUnknownAction", err)
	}
}

func TestDispatch_RejectedInput(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewMemory)
	if _, err := f.sess.Dispatch(Action{Type: "press", Cell: 1}); !errors.Is(err, games.ErrNotAccepted) {
		t.Errorf("press before start = %v, want ErrNotAccepted", err)
	}
}

func TestDispatch_MemoryGameRecords(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewMemory)
	f.sess.Dispatch(Action{Type: "start"})
	f.clock.Advance(memory.LeadIn + memory.Highlight + memory.Gap)

	snap, err := f.sess.Dispatch(Action{Type: "press", Cell: 0})
	if err != nil {
		t.Fatalf("Dispatch(press) error: %v", err)
	}
	if v := snap.Game.(memory.View); v.State != "over" {
		t.Errorf("state = %q, want over", v.State)
	}
	if f.rec.Count() != 1 || f.rec.Last().GameType != results.Memory {
		t.Errorf("recorded = %+v", f.rec.Drafts)
	}
}

func TestDispatch_FocusActions(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewFocus)
	if _, err := f.sess.Dispatch(Action{Type: "duration", Seconds: 30}); err != nil {
		t.Fatalf("duration error: %v", err)
	}
	snap, err := f.sess.Dispatch(Action{Type: "start"})
	if err != nil {
		t.Fatal(err)
	}
	if v := snap.Game.(focus.View); v.State != "running" || v.Target != 30 {
		t.Errorf("focus view = %+v", v)
	}
	if _, err := f.sess.Dispatch(Action{Type: "click", ID: 42}); !errors.Is(err, games.ErrNotAccepted) {
		t.Errorf("click unknown distractor = %v, want ErrNotAccepted", err)
	}
}

func TestEvents_Published(t *testing.T) {
	f := newFixture(nil)
	ch := f.sess.Broadcaster.Subscribe()
	defer f.sess.Broadcaster.Unsubscribe(ch)

	f.sess.Navigate(ViewMemory)
	f.sess.Dispatch(Action{Type: "start"})

	want := []string{events.TypeNavigate, events.TypeView}
	for _, typ := range want {
		select {
		case ev := <-ch:
			if ev.Type != typ {
				t.Errorf("event type = %q, want %q", ev.Type, typ)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", typ)
		}
	}
}

func TestEvents_ResultNotice(t *testing.T) {
	f := newFixture(nil)
	f.rec.Err = errors.New("disk full")
	ch := f.sess.Broadcaster.Subscribe()
	defer f.sess.Broadcaster.Unsubscribe(ch)

	f.sess.Navigate(ViewMemory)
	f.sess.Dispatch(Action{Type: "start"})
	f.clock.Advance(memory.LeadIn + memory.Highlight + memory.Gap)
	f.sess.Dispatch(Action{Type: "press", Cell: 0})

	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Type != events.TypeResult {
				continue
			}
			n := ev.Data.(ResultNotice)
			if n.GameType != results.Memory || n.Saved {
				t.Errorf("notice = %+v, want unsaved memory result", n)
			}
			return
		case <-deadline:
			t.Fatal("no result event")
		}
	}
}

func TestClose(t *testing.T) {
	f := newFixture(nil)
	f.sess.Navigate(ViewFocus)
	f.sess.Dispatch(Action{Type: "start"})
	f.sess.Close()
	f.sess.Close()

	if f.clock.Pending() != 0 {
		t.Errorf("pending callbacks = %d, want 0", f.clock.Pending())
	}
	if _, err := f.sess.Navigate(ViewMenu); !errors.Is(err, ErrClosed) {
		t.Errorf("Navigate() after Close = %v, want ErrClosed", err)
	}
	select {
	case <-f.sess.Broadcaster.Done():
	case <-time.After(time.Second):
		t.Fatal("broadcaster still running after Close")
	}
}
