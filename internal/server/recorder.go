package server

import (
	"context"
	"log"
	"time"

	"braintrainer/internal/games"
	"braintrainer/internal/results"
)

const recordTimeout = 5 * time.Second

type storeRecorder struct {
	store *results.Store
}

// NewRecorder appends every finished game to store.
func NewRecorder(store *results.Store) games.Recorder {
	return storeRecorder{store: store}
}

func (r storeRecorder) Record(d results.Draft) error {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if _, err := r.store.Append(ctx, d); err != nil {
		log.Printf("[Results] append %s: %v\n", d.GameType, err)
		return err
	}
	return nil
}
