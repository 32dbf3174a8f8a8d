package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"braintrainer/internal/kv"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"
)

const (
	DefaultKey        = "brain_training_history"
	DefaultDateLayout = "1/2/2006"
)

// ErrPersist marks an append that is held in memory but could not be written
// to the backend. Flush retries the write.
var ErrPersist = errors.New("persisting result log")

// Store owns the result log. Appends are serialized and each one rewrites the
// whole log under a single key.
type Store struct {
	mu         sync.Mutex
	backend    kv.Store
	key        string
	clock      clockwork.Clock
	dateLayout string
	entropy    *ulid.MonotonicEntropy
	observe    func(Result, error)
	log        Log
	dirty      bool
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithDateLayout(layout string) Option {
	return func(s *Store) { s.dateLayout = layout }
}

// WithObserver registers fn to run after every append with the persistence
// outcome.
func WithObserver(fn func(Result, error)) Option {
	return func(s *Store) { s.observe = fn }
}

// Open creates a store over backend and loads whatever log it already holds.
func Open(ctx context.Context, backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		key:        DefaultKey,
		clock:      clockwork.NewRealClock(),
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entropy = ulid.Monotonic(rand.New(rand.NewSource(s.clock.Now().UnixNano())), 0)
	s.log = Load(ctx, backend, s.key)
	return s
}

// Load reads the persisted log. A missing key or unreadable content yields an
// empty log.
func Load(ctx context.Context, backend kv.Store, key string) Log {
	b, err := backend.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Log{}
	}
	if err != nil {
		log.Printf("[Results] load %s failed, starting empty: %v\n", key, err)
		return Log{}
	}
	l, err := Decode(b)
	if err != nil {
		log.Printf("[Results] stored log %s is corrupt, starting empty: %v\n", key, err)
		return Log{}
	}
	if l == nil {
		l = Log{}
	}
	return l
}

// Log returns the current history.
func (s *Store) Log() Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log
}

// Pending reports whether the in-memory log has records the backend is missing.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Append records a finished session and rewrites the persisted log. The new
// result is kept even if the write fails; the returned error then wraps
// ErrPersist.
func (s *Store) Append(ctx context.Context, d Draft) (Log, error) {
	if !d.GameType.Valid() {
		return nil, fmt.Errorf("appending result: unknown game type %q", d.GameType)
	}
	details, err := json.Marshal(d.Details)
	if err != nil {
		return nil, fmt.Errorf("encoding details: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	r := Result{
		ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		GameType:  d.GameType,
		Score:     d.Score,
		Details:   details,
		Timestamp: now.UTC().Truncate(time.Millisecond),
		Date:      now.Local().Format(s.dateLayout),
	}
	s.log = s.log.with(r)

	err = s.persistLocked(ctx)
	if s.observe != nil {
		s.observe(r, err)
	}
	return s.log, err
}

// Flush rewrites the full log, retrying a previously failed append.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	b, err := Encode(s.log)
	if err != nil {
		s.dirty = true
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.backend.Put(ctx, s.key, b); err != nil {
		s.dirty = true
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.dirty = false
	return nil
}
