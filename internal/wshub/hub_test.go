package wshub

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(sessionID string) *Client {
	return &Client{SessionID: sessionID, Send: make(chan []byte, 16)}
}

func TestRegisterAndSendTo(t *testing.T) {
	h := NewHub()

	c1 := newTestClient("s1")
	c2 := newTestClient("s1")
	c3 := newTestClient("s2")

	h.Register(c1)
	h.Register(c2)
	h.Register(c3)

	if h.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", h.Count())
	}

	h.SendTo("s1", ServerMessage{Type: "view", Data: map[string]int{"level": 3}})

	// both connections of s1 receive the message, s2 does not
	for i, c := range []*Client{c1, c2} {
		select {
		case data := <-c.Send:
			var got struct {
				Type string         `json:"t"`
				Data map[string]int `json:"d"`
			}
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "view" || got.Data["level"] != 3 {
				t.Fatalf("unexpected message: %+v", got)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("c%d did not receive message", i+1)
		}
	}

	select {
	case <-c3.Send:
		t.Fatal("c3 should not receive another session's message")
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	c := newTestClient("s1")
	h.Register(c)

	h.Unregister(c)
	if _, ok := <-c.Send; ok {
		t.Fatal("c.Send should be closed")
	}
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}

	// Unregistering twice must not panic
	h.Unregister(c)
}

func TestDropSession(t *testing.T) {
	h := NewHub()
	c1 := newTestClient("s1")
	c2 := newTestClient("s2")
	h.Register(c1)
	h.Register(c2)

	h.DropSession("s1")

	if _, ok := <-c1.Send; ok {
		t.Error("c1.Send should be closed")
	}
	if h.Count() != 1 {
		t.Errorf("Count() = %d, want 1", h.Count())
	}
}

func TestSendTo_DropsWhenFull(t *testing.T) {
	h := NewHub()
	c := &Client{SessionID: "s1", Send: make(chan []byte, 1)}
	h.Register(c)

	h.SendTo("s1", ServerMessage{Type: "a"})

	done := make(chan struct{})
	go func() {
		h.SendTo("s1", ServerMessage{Type: "b"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendTo blocked on a full channel")
	}
}

func TestClientMessage_ShortKeys(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"t":"act","a":"press","c":2}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "act" || msg.Action != "press" || msg.Cell != 2 {
		t.Errorf("decoded = %+v", msg)
	}
}

func TestSend_SingleClient(t *testing.T) {
	h := NewHub()
	c1 := newTestClient("s1")
	c2 := newTestClient("s1")
	h.Register(c1)
	h.Register(c2)

	if !h.Send(c1, ServerMessage{Type: "snapshot"}) {
		t.Fatal("Send() to registered client = false")
	}
	if len(c1.Send) != 1 || len(c2.Send) != 0 {
		t.Errorf("queued = %d/%d, want 1/0", len(c1.Send), len(c2.Send))
	}

	h.Unregister(c1)
	if h.Send(c1, ServerMessage{Type: "snapshot"}) {
		t.Error("Send() after Unregister should report false")
	}
}
