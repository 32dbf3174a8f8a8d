package broadcast

import (
	"testing"
	"time"

	"braintrainer/internal/events"
)

func TestNewBroadcaster(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	if b == nil {
		t.Fatal("NewBroadcaster() returned nil")
	}
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch := b.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe() returned nil")
	}
	if b.Count() != 1 {
		t.Errorf("clients count = %d, want 1", b.Count())
	}

	b.Unsubscribe(ch)
	if b.Count() != 0 {
		t.Errorf("clients count after unsubscribe = %d, want 0", b.Count())
	}
	if _, ok := <-ch; ok {
		t.Error("unsubscribed channel should be closed")
	}

	// Unsubscribing twice must not panic
	b.Unsubscribe(ch)
}

func TestBroadcaster_Broadcast(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Broadcast(events.Event{Type: events.TypeView, Data: "hello"})

	for i, ch := range []chan events.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != events.TypeView || ev.Data != "hello" {
				t.Errorf("ch%d got %+v", i+1, ev)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("ch%d timed out", i+1)
		}
	}

	b.Unsubscribe(ch1)
	b.Unsubscribe(ch2)
}

func TestBroadcaster_SkipsFullChannels(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch := b.Subscribe()

	// Fill the channel buffer (capacity 10)
	for i := 0; i < 10; i++ {
		b.Broadcast(events.Event{Type: "fill"})
	}

	// This should not block even though channel is full
	done := make(chan bool)
	go func() {
		b.Broadcast(events.Event{Type: "overflow"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Broadcast blocked on full channel")
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_ForwardsBusEvents(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)

	ch := b.Subscribe()
	bus.Emit(events.Event{Type: events.TypeNavigate, Data: "focus"})

	select {
	case ev := <-ch:
		if ev.Type != events.TypeNavigate || ev.Data != "focus" {
			t.Errorf("got %+v, want navigate focus", ev)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for bus event")
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_DoneAfterBusClose(t *testing.T) {
	bus := events.NewBus()
	b := NewBroadcaster(bus)
	bus.Close()

	select {
	case <-b.Done():
	case <-time.After(1 * time.Second):
		t.Fatal("Done() not closed after bus close")
	}
}
