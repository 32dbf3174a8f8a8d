// Package session is the per-player view selector. A session shows the menu,
// the dashboard or exactly one game, and routes player actions to that game.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"braintrainer/internal/broadcast"
	"braintrainer/internal/events"
	"braintrainer/internal/games"
	"braintrainer/internal/games/focus"
	"braintrainer/internal/games/memory"
	"braintrainer/internal/games/pattern"
	"braintrainer/internal/games/reaction"
	"braintrainer/internal/results"
	"braintrainer/internal/scheduler"
	"braintrainer/internal/stats"
)

var (
	ErrUnknownView   = errors.New("unknown view")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoActiveGame  = errors.New("no active game")
	ErrClosed        = errors.New("session closed")
)

// History gives read access to the result log.
type History interface {
	Log() results.Log
}

type Config struct {
	Scheduler scheduler.Scheduler
	Rand      games.Rand
	Recorder  games.Recorder
	History   History
}

type emptyHistory struct{}

func (emptyHistory) Log() results.Log { return results.Log{} }

func (c Config) withDefaults() Config {
	if c.Scheduler == nil {
		c.Scheduler = scheduler.New(nil)
	}
	if c.History == nil {
		c.History = emptyHistory{}
	}
	if c.Recorder == nil {
		c.Recorder = games.RecorderFunc(func(results.Draft) error { return nil })
	}
	return c
}

// Action is a player input for the active game.
type Action struct {
	Type    string `json:"type"`
	Cell    int    `json:"cell,omitempty"`
	Option  int    `json:"option,omitempty"`
	ID      int    `json:"id,omitempty"`
	Seconds int    `json:"seconds,omitempty"`
}

// ResultNotice is published when a game hands in a finished session.
type ResultNotice struct {
	GameType results.GameType `json:"gameType"`
	Score    float64          `json:"score"`
	Saved    bool             `json:"saved"`
}

type Session struct {
	ID          string
	Broadcaster *broadcast.Broadcaster

	mu       sync.Mutex
	cfg      Config
	bus      *events.Bus
	view     View
	game     any
	lastSeen time.Time
	closed   bool
}

func New(id string, cfg Config) *Session {
	cfg = cfg.withDefaults()
	bus := events.NewBus()
	return &Session{
		ID:          id,
		Broadcaster: broadcast.NewBroadcaster(bus),
		cfg:         cfg,
		bus:         bus,
		view:        ViewMenu,
		lastSeen:    cfg.Scheduler.Now(),
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate leaves the current view, tearing down its game, and enters v. Game
// views always start from a fresh game.
func (s *Session) Navigate(v View) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}
	if _, err := ParseView(string(v)); err != nil {
		return s.snapshotLocked(), err
	}

	s.closeGameLocked()
	s.view = v
	deps := games.Deps{
		Scheduler: s.cfg.Scheduler,
		Rand:      s.cfg.Rand,
		Recorder:  games.RecorderFunc(s.record),
		Notify:    s.notify,
	}
	switch v {
	case ViewMemory:
		s.game = memory.New(deps)
	case ViewReaction:
		s.game = reaction.New(deps)
	case ViewPattern:
		s.game = pattern.New(deps)
	case ViewFocus:
		s.game = focus.New(deps)
	}
	s.bus.Emit(events.Event{Type: events.TypeNavigate, Data: v})
	return s.snapshotLocked(), nil
}

// Dispatch routes a to the active game.
func (s *Session) Dispatch(a Action) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Snapshot{}, ErrClosed
	}

	var err error
	switch g := s.game.(type) {
	case *memory.Game:
		switch a.Type {
		case "start":
			g.Start()
		case "press":
			err = g.Press(a.Cell)
		default:
			err = s.unknownLocked(a)
		}
	case *reaction.Game:
		switch a.Type {
		case "press":
			err = g.Press()
		case "next":
			err = g.Next()
		case "reset":
			g.Reset()
		default:
			err = s.unknownLocked(a)
		}
	case *pattern.Game:
		switch a.Type {
		case "start":
			g.Start()
		case "select":
			err = g.Select(a.Option)
		default:
			err = s.unknownLocked(a)
		}
	case *focus.Game:
		switch a.Type {
		case "duration":
			err = g.SelectDuration(a.Seconds)
		case "start":
			g.Start()
		case "click":
			err = g.Click(a.ID)
		default:
			err = s.unknownLocked(a)
		}
	default:
		err = fmt.Errorf("%s on %s: %w", a.Type, s.view, ErrNoActiveGame)
	}
	return s.snapshotLocked(), err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close tears down the active game and ends the event stream.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closeGameLocked()
	s.closed = true
	s.bus.Close()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{View: s.view}
	switch s.view {
	case ViewMenu:
		snap.Menu = buildMenu(s.cfg.History.Log())
	case ViewDashboard:
		d := stats.BuildDashboard(s.cfg.History.Log())
		snap.Dashboard = &d
	default:
		snap.Game = gameView(s.game)
	}
	return snap
}

func gameView(g any) any {
	switch g := g.(type) {
	case *memory.Game:
		return g.View()
	case *reaction.Game:
		return g.View()
	case *pattern.Game:
		return g.View()
	case *focus.Game:
		return g.View()
	}
	return nil
}

func (s *Session) closeGameLocked() {
	if c, ok := s.game.(interface{ Close() }); ok {
		c.Close()
	}
	s.game = nil
}

func (s *Session) unknownLocked(a Action) error {
	return fmt.Errorf("%q on %s: %w", a.Type, s.view, ErrUnknownAction)
}

// notify and record run under a game's lock and must not take s.mu.
func (s *Session) notify(view any) {
	s.bus.Emit(events.Event{Type: events.TypeView, Data: view})
}

func (s *Session) record(d results.Draft) error {
	err := s.cfg.Recorder.Record(d)
	s.bus.Emit(events.Event{Type: events.TypeResult, Data: ResultNotice{
		GameType: d.GameType,
		Score:    d.Score,
		Saved:    err == nil,
	}})
	return err
}
