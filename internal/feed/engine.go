package feed

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"notifeed/internal/api"
	"notifeed/internal/model"
	"notifeed/internal/view"
)

// Backend is the slice of the REST client the engine depends on.
type Backend interface {
	ListNotifications(ctx context.Context, q api.ListQuery) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	GetStats(ctx context.Context, userID string) (model.Stats, error)
}

// ReloadResult reports the outcome of one reload attempt.
type ReloadResult struct {
	// Gen is the generation number of this attempt. A result whose Gen
	// is older than the engine's latest is reported Stale and has not
	// touched the store.
	Gen uint64

	// Records is the store content after the attempt.
	Records []model.Notification

	// FromFallback is set when the attempt failed and the built-in
	// dataset was seeded into an empty store.
	FromFallback bool

	// Stale is set when a newer reload was issued while this one was in
	// flight; the result was discarded.
	Stale bool

	// Err is the fetch error, if any. A non-nil Err with a non-empty
	// Records means existing (or fallback) data is still on display.
	Err error
}

// Engine synchronizes the store with the backend. Every call is an
// independent best-effort attempt; there is no retry loop and no queue.
type Engine struct {
	backend Backend
	store   *Store
	log     zerolog.Logger
	limit   int
	gen     atomic.Uint64
}

// NewEngine creates an engine that reloads at most limit records per
// page into the given store.
func NewEngine(b Backend, s *Store, limit int, log zerolog.Logger) *Engine {
	if limit <= 0 {
		limit = 100
	}
	return &Engine{
		backend: b,
		store:   s,
		log:     log,
		limit:   limit,
	}
}

// Reload fetches one page of notifications matching the filter and
// replaces the store contents. On failure the store is left untouched
// unless it is empty, in which case the built-in fallback dataset is
// seeded so the feed is never blank.
//
// Each reload gets a fresh generation number and only the latest
// generation may touch the store, so a slow response superseded by a
// newer reload cannot overwrite newer data with stale data.
func (e *Engine) Reload(ctx context.Context, filter model.Filter) ReloadResult {
	gen := e.gen.Add(1)

	q := api.ListQuery{Limit: e.limit}
	if filter.Type != model.FilterAll {
		q.Type = filter.Type
	}
	if filter.Manager != model.FilterAll {
		q.UserID = filter.Manager
	}

	records, err := e.backend.ListNotifications(ctx, q)
	if err != nil {
		e.log.Error().Err(err).Uint64("gen", gen).Msg("reload failed")

		if e.gen.Load() != gen {
			return ReloadResult{Gen: gen, Stale: true}
		}
		if e.store.Len() == 0 {
			e.store.ReplaceAll(FallbackNotifications(time.Now()))
			return ReloadResult{
				Gen:          gen,
				Records:      e.store.Records(),
				FromFallback: true,
				Err:          err,
			}
		}
		// Stale-but-present beats empty: keep what we have.
		return ReloadResult{Gen: gen, Records: e.store.Records(), Err: err}
	}

	if e.gen.Load() != gen {
		e.log.Debug().Uint64("gen", gen).Msg("discarding superseded reload")
		return ReloadResult{Gen: gen, Stale: true}
	}

	e.store.ReplaceAll(records)
	e.log.Info().Int("count", len(records)).Uint64("gen", gen).Msg("reloaded")
	return ReloadResult{Gen: gen, Records: e.store.Records()}
}

// MarkRead marks a notification read locally and confirms it to the
// backend. The local flag is flipped whether or not the confirmation
// succeeds, so an item the user acted on never snaps back to unread.
// An ID absent from the store is a no-op, not an error. The returned
// error only signals that the remote confirmation failed and aggregate
// counts should be recomputed locally.
func (e *Engine) MarkRead(ctx context.Context, id string) error {
	if !e.store.MarkRead(id) {
		return nil
	}

	if err := e.backend.MarkRead(ctx, id); err != nil {
		e.log.Warn().Err(err).Str("id", id).Msg("read confirmation failed")
		return err
	}
	return nil
}

// FetchStats returns aggregate counts for the current filter. The
// backend's snapshot is preferred verbatim; when it cannot be fetched
// the counts are recomputed locally from the store through the same
// projection used for rendering, so the two paths agree in method. The
// result's Origin says which path produced it; the two are never mixed.
func (e *Engine) FetchStats(ctx context.Context, filter model.Filter) model.Stats {
	userID := ""
	if filter.Manager != model.FilterAll {
		userID = filter.Manager
	}

	stats, err := e.backend.GetStats(ctx, userID)
	if err == nil {
		return stats
	}
	e.log.Warn().Err(err).Msg("stats fetch failed, recomputing locally")

	return e.LocalStats(filter)
}

// LocalStats recomputes aggregate counts from the store.
func (e *Engine) LocalStats(filter model.Filter) model.Stats {
	projection := view.Project(e.store.Records(), filter, time.Now())
	return projection.Stats
}
