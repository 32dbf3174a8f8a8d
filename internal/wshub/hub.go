package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// ClientMessage is the JSON structure received from clients. Type "nav"
// switches views; "act" carries a game action.
type ClientMessage struct {
	Type    string `json:"t"`
	View    string `json:"v,omitempty"`
	Action  string `json:"a,omitempty"`
	Cell    int    `json:"c,omitempty"`
	Option  int    `json:"o,omitempty"`
	ID      int    `json:"id,omitempty"`
	Seconds int    `json:"s,omitempty"`
}

// ServerMessage is the JSON structure sent to clients.
type ServerMessage struct {
	Type  string `json:"t"`
	Data  any    `json:"d,omitempty"`
	Error string `json:"e,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
}

func NewClient(sessionID string, conn *websocket.Conn) *Client {
	return &Client{SessionID: sessionID, Conn: conn, Send: make(chan []byte, 16)}
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub tracks the open WebSocket connections of every player session. A
// player may hold several connections at once.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		close(c.Send)
		delete(h.clients, c)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo delivers msg to every connection of a session. Non-blocking: drops if
// a channel is full.
func (h *Hub) SendTo(sessionID string, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.SessionID != sessionID {
			continue
		}
		select {
		case c.Send <- data:
		default:
			// Drop message if channel full
		}
	}
}

// Send delivers msg to a single client. It reports false if the client is no
// longer registered or its channel is full.
func (h *Hub) Send(c *Client, msg ServerMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// DropSession unregisters every connection of a session, ending their write
// pumps.
func (h *Hub) DropSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.SessionID == sessionID {
			close(c.Send)
			delete(h.clients, c)
		}
	}
}
