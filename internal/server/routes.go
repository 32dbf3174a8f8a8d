package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"braintrainer/internal/config"
	"braintrainer/internal/kv"
	"braintrainer/internal/metrics"
	"braintrainer/internal/results"
	"braintrainer/internal/session"
	"braintrainer/internal/wshub"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API over backend until ctx is cancelled, then flushes the
// result log.
func Run(ctx context.Context, cfg config.Config, backend kv.Store) error {
	m := metrics.New()
	store := results.Open(ctx, backend,
		results.WithKey(cfg.StoreKey),
		results.WithDateLayout(cfg.DateLayout),
		results.WithObserver(m.ObserveResult),
	)
	log.Printf("[Results] loaded %d results from %s\n", len(store.Log()), cfg.StoreBackend)

	hub := wshub.NewHub()
	sessions := session.NewStore(
		session.Config{Recorder: NewRecorder(store), History: store},
		session.WithTTL(cfg.SessionTTL),
		session.OnCount(m.SetSessions),
		session.OnEvict(func(id string) {
			hub.SendTo(id, wshub.ServerMessage{Type: "evicted"})
			hub.DropSession(id)
		}),
	)
	if err := sessions.StartSweeper(cfg.SweepInterval); err != nil {
		return err
	}

	srv := &Server{
		Sessions: sessions,
		Results:  store,
		Hub:      hub,
		Metrics:  m,
	}
	if p, ok := backend.(interface{ Ping() error }); ok {
		srv.Ping = p.Ping
	}

	httpSrv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)

	select {
	case err := <-errCh:
		sessions.Close()
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	log.Println("[Server] shutting down")
	// Closing sessions ends every open event stream so Shutdown can drain.
	sessions.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[Server] shutdown: %v\n", err)
	}
	if store.Pending() {
		if err := store.Flush(shutdownCtx); err != nil {
			return fmt.Errorf("flushing results on shutdown: %w", err)
		}
	}
	return nil
}
