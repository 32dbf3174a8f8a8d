package broadcast

import (
	"sync"

	"braintrainer/internal/events"
)

// Broadcaster fans the events of one bus out to every subscriber.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan events.Event]bool
	done    chan struct{}
}

func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		clients: make(map[chan events.Event]bool),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		for ev := range bus.Events() {
			b.Broadcast(ev)
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan events.Event {
	ch := make(chan events.Event, 10)
	b.mu.Lock()
	b.clients[ch] = true
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[ch] {
		delete(b.clients, ch)
		close(ch)
	}
}

func (b *Broadcaster) Broadcast(ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- ev:
		default:
			// skip clients with full data channels
		}
	}
}

// Count returns the number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Done is closed once the bus has been closed and drained.
func (b *Broadcaster) Done() <-chan struct{} {
	return b.done
}
