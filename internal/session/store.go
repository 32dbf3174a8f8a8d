package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

const DefaultTTL = 1 * time.Hour

// Store keeps one session per player and evicts those left idle.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      Config
	clock    clockwork.Clock
	ttl      time.Duration
	onEvict  func(id string)
	onCount  func(n int)
	cron     gocron.Scheduler
}

type StoreOption func(*Store)

func WithClock(c clockwork.Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// OnEvict runs after a swept session has been closed.
func OnEvict(fn func(id string)) StoreOption {
	return func(s *Store) { s.onEvict = fn }
}

// OnCount receives the number of live sessions whenever it changes.
func OnCount(fn func(n int)) StoreOption {
	return func(s *Store) { s.onCount = fn }
}

func NewStore(cfg Config, opts ...StoreOption) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		ttl:      DefaultTTL,
		onEvict:  func(string) {},
		onCount:  func(int) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the session for id, creating it on first use, and marks it as
// seen now.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = New(id, s.cfg)
		s.sessions[id] = sess
	}
	sess.touch(s.clock.Now())
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		s.onCount(n)
	}
	return sess
}

// Lookup returns the session for id without creating or touching it.
func (s *Store) Lookup(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and removes every session idle for longer than the TTL. It
// returns the number evicted.
func (s *Store) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
		s.onEvict(sess.ID)
	}
	if len(stale) > 0 {
		log.Printf("[Sessions] swept %d idle sessions, %d active\n", len(stale), n)
		s.onCount(n)
	}
	return len(stale)
}

// StartSweeper runs Sweep every interval until Close.
func (s *Store) StartSweeper(interval time.Duration) error {
	cron, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return fmt.Errorf("creating sweeper: %w", err)
	}
	_, err = cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.Sweep() }),
	)
	if err != nil {
		return fmt.Errorf("scheduling sweep: %w", err)
	}
	cron.Start()

	s.mu.Lock()
	s.cron = cron
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper and closes every session.
func (s *Store) Close() {
	s.mu.Lock()
	cron := s.cron
	s.cron = nil
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	if cron != nil {
		if err := cron.Shutdown(); err != nil {
			log.Printf("[Sessions] sweeper shutdown: %v\n", err)
		}
	}
	for _, sess := range sessions {
		sess.Close()
	}
	s.onCount(0)
}
