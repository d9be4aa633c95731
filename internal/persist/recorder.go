// Package persist records finished generations off the response path.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// Record is one unit of deferred persistence: the generation row plus, for
// free-plan users, the usage increment.
type Record struct {
	UserID         string
	Notes          string
	Mode           domain.GenerationMode
	Style          string
	RequestedCount int
	Deck           domain.Deck
	Locale         string
	Country        string
	FreePlan       bool
	CardLimit      int
}

// Recorder runs a single worker over a bounded queue. The caller receives its
// response before (and regardless of whether) the writes land; failures are
// logged, never surfaced.
type Recorder struct {
	sql    infra.SQLExecutor
	logger zerolog.Logger
	queue  chan Record
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

const recordTimeout = 10 * time.Second

func NewRecorder(sql infra.SQLExecutor, logger zerolog.Logger, queueSize int) *Recorder {
	if queueSize <= 0 {
		queueSize = 128
	}
	r := &Recorder{
		sql:    sql,
		logger: logger,
		queue:  make(chan Record, queueSize),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue hands a record to the worker without blocking. A full or closed
// queue drops the record with a log line; requests still in flight during
// shutdown must not panic here.
func (r *Recorder) Enqueue(rec Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.logger.Warn().Str("user_id", rec.UserID).Msg("recorder closed, generation dropped")
		return false
	}
	select {
	case r.queue <- rec:
		return true
	default:
		r.logger.Error().Str("user_id", rec.UserID).Msg("recorder queue full, generation dropped")
		return false
	}
}

// Close stops accepting records and waits for the queue to drain. Safe to
// call more than once.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for rec := range r.queue {
		r.record(rec)
	}
}

func (r *Recorder) record(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	output, err := json.Marshal(rec.Deck)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("marshal generation output failed")
		return
	}
	title := domain.DeriveTitle(rec.Deck.Title, rec.Notes)
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertGeneration,
		rec.UserID, rec.Notes, string(rec.Mode), rec.Style, rec.RequestedCount,
		title, output, rec.Locale, rec.Country,
	); err != nil {
		r.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("generation insert failed")
	}

	if !rec.FreePlan || len(rec.Deck.Flashcards) == 0 {
		return
	}
	row := r.sql.QueryRow(ctx, sqlinline.QIncrementCardsUsed, rec.UserID, len(rec.Deck.Flashcards), rec.CardLimit)
	var used int
	if err := row.Scan(&used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The ceiling predicate rejected the increment: a concurrent
			// request already consumed the remaining quota.
			r.logger.Warn().Str("user_id", rec.UserID).Msg("usage increment skipped at ceiling")
			return
		}
		r.logger.Error().Err(err).Str("user_id", rec.UserID).Msg("usage increment failed")
	}
}
