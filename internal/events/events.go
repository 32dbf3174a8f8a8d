// Package events carries a player session's state changes to whoever streams
// them.
package events

import "sync"

const (
	TypeView     = "view"
	TypeNavigate = "navigate"
	TypeResult   = "result"
)

// BufferSize is how many events a bus holds before Emit starts dropping.
const BufferSize = 32

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Bus struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func NewBus() *Bus {
	return &Bus{
		ch: make(chan Event, BufferSize),
	}
}

// Emit queues ev without blocking. It reports false when the bus is full or
// closed and the event was dropped.
func (b *Bus) Emit(ev Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	select {
	case b.ch <- ev:
		return true
	default:
		return false
	}
}

// Events is drained by exactly one consumer and is closed by Close.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
