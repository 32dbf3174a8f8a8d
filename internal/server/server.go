// Package server is the HTTP surface: JSON endpoints for each player's
// session, live SSE and websocket streams, health and metrics.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"braintrainer/internal/games"
	"braintrainer/internal/metrics"
	"braintrainer/internal/results"
	"braintrainer/internal/session"
	"braintrainer/internal/wshub"

	"github.com/google/uuid"
)

const playerCookie = "player_id"

type Server struct {
	Sessions *session.Store
	Results  *results.Store
	Hub      *wshub.Hub
	Metrics  *metrics.Metrics
	Ping     func() error // nil if the backend has no health check
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("POST /api/navigate", s.handleNavigate)
	mux.HandleFunc("POST /api/action", s.handleAction)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/results", s.handleResults)
	mux.HandleFunc("POST /api/results/flush", s.handleFlush)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	return mux
}

// session resolves the player's session from the player_id cookie, issuing a
// new id when the cookie is missing or malformed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(playerCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     playerCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.Sessions.Get(id)
}

type snapshotResponse struct {
	session.Snapshot
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a session error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, games.ErrNotAccepted):
		return http.StatusConflict
	case errors.Is(err, session.ErrClosed):
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}
