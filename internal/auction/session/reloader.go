package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// InitFunc fetches the category metadata (normally the REST client's Init).
type InitFunc func(ctx context.Context) ([]string, models.CategoryInfo, error)

// ApplyFunc receives freshly fetched category metadata.
type ApplyFunc func(categories []string, info models.CategoryInfo)

// CategoryReloader re-fetches category metadata on demand. Every dispatched
// request carries a generation token, and a response is applied only if no
// newer request has been dispatched since. A slow response can never
// clobber a fresher one, even when reloads overlap across goroutines.
type CategoryReloader struct {
	load  InitFunc
	apply ApplyFunc
	log   zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	applied uint64
}

// NewCategoryReloader creates a reloader that feeds results to apply.
func NewCategoryReloader(load InitFunc, apply ApplyFunc, log zerolog.Logger) *CategoryReloader {
	return &CategoryReloader{load: load, apply: apply, log: log}
}

// Reload fetches the metadata and applies it unless a newer reload was
// dispatched while this one was in flight.
func (r *CategoryReloader) Reload(ctx context.Context) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	categories, info, err := r.load(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to refresh categories")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen <= r.applied {
		r.log.Debug().Uint64("generation", gen).Msg("discarding stale category refresh")
		return
	}
	r.applied = gen
	r.apply(categories, info)
}
