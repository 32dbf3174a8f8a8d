package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"braintrainer/internal/events"
	"braintrainer/internal/session"
	"braintrainer/internal/wshub"

	"github.com/coder/websocket"
)

// snapshotEvent carries a full Snapshot, sent when a stream opens and in
// reply to every websocket message.
const snapshotEvent = "snapshot"

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}
	sess := s.session(w, r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := sess.Broadcaster.Subscribe()
	defer sess.Broadcaster.Unsubscribe(msgChan)
	s.Metrics.StreamClients.Inc()
	defer s.Metrics.StreamClients.Dec()

	writeEvent(w, events.Event{Type: snapshotEvent, Data: sess.Snapshot()})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.Broadcaster.Done():
			return
		case ev := <-msgChan:
			writeEvent(w, ev)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev events.Event) {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		log.Printf("[SSE] marshal %s: %v\n", ev.Type, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] accept: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := wshub.NewClient(sess.ID, conn)
	s.Hub.Register(client)
	defer s.Hub.Unregister(client)
	s.Metrics.StreamClients.Inc()
	defer s.Metrics.StreamClients.Dec()

	go func() {
		client.WritePump(ctx)
		cancel()
	}()
	sub := sess.Broadcaster.Subscribe()
	go s.forward(ctx, cancel, client, sess, sub)

	s.Hub.Send(client, wshub.ServerMessage{Type: snapshotEvent, Data: sess.Snapshot()})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Hub.Send(client, wshub.ServerMessage{Type: "error", Error: "invalid message"})
			continue
		}
		// Any message counts as activity for the idle sweep.
		s.Sessions.Get(client.SessionID)

		snap, err := apply(sess, msg)
		reply := wshub.ServerMessage{Type: snapshotEvent, Data: snap}
		if err != nil {
			reply.Error = err.Error()
		}
		s.Hub.Send(client, reply)
	}
}

// forward relays the session's events to one connection until the
// connection or the session ends.
func (s *Server) forward(ctx context.Context, cancel context.CancelFunc, c *wshub.Client, sess *session.Session, sub chan events.Event) {
	defer cancel()
	defer sess.Broadcaster.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.Broadcaster.Done():
			return
		case ev := <-sub:
			s.Hub.Send(c, wshub.ServerMessage{Type: ev.Type, Data: ev.Data})
		}
	}
}

func apply(sess *session.Session, msg wshub.ClientMessage) (session.Snapshot, error) {
	switch msg.Type {
	case "nav":
		return sess.Navigate(session.View(msg.View))
	case "act":
		return sess.Dispatch(session.Action{
			Type:    msg.Action,
			Cell:    msg.Cell,
			Option:  msg.Option,
			ID:      msg.ID,
			Seconds: msg.Seconds,
		})
	case "snap":
		return sess.Snapshot(), nil
	}
	return sess.Snapshot(), fmt.Errorf("message %q: %w", msg.Type, session.ErrUnknownAction)
}
