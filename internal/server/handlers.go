package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"braintrainer/internal/results"
	"braintrainer/internal/session"
	"braintrainer/internal/stats"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, snapshotResponse{Snapshot: sess.Snapshot()})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var body struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	snap, err := sess.Navigate(session.View(body.View))
	if err != nil {
		writeJSON(w, statusFor(err), snapshotResponse{Snapshot: snap, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Snapshot: snap})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var a session.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	snap, err := sess.Dispatch(a)
	if err != nil {
		writeJSON(w, statusFor(err), snapshotResponse{Snapshot: snap, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Snapshot: snap})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.BuildDashboard(s.Results.Log()))
}

// handleResults returns the raw log, optionally narrowed by ?game= and
// ?limit= (trailing results).
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	l := s.Results.Log()

	if g := r.URL.Query().Get("game"); g != "" {
		gt, err := results.ParseGameType(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		l = l.Filter(gt)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		l = l.Last(n)
	}

	b, err := results.Encode(l)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *Server) handleFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.Results.Flush(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"pending": true, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": false})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pending := s.Results.Pending()
	if s.Ping != nil {
		if err := s.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"db_error","error":%q,"pending":%t}`, err.Error(), pending)
			return
		}
	}
	fmt.Fprintf(w, `{"status":"ok","pending":%t}`, pending)
}
