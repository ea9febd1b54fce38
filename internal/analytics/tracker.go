// Package analytics records candidate views and searches without blocking
// the request that caused them.
package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"talent-search/internal/events"
	"talent-search/internal/storage"
)

const writeTimeout = 5 * time.Second

// EventStore is the append side of the analytics tables.
type EventStore interface {
	InsertCandidateView(ctx context.Context, v storage.CandidateView) error
	InsertSearch(ctx context.Context, s storage.SearchEvent) error
}

type job struct {
	view   *storage.CandidateView
	search *storage.SearchEvent
	queued time.Time
}

// Tracker queues analytics events for a single background worker. Track
// calls never block and never fail; a full queue drops the event.
type Tracker struct {
	store     EventStore
	publisher events.Publisher
	logger    *zap.Logger

	queue chan job
	done  chan struct{}

	mu      sync.RWMutex
	closed  bool
	started bool
	dropped int64
}

func NewTracker(store EventStore, publisher events.Publisher, queueSize int, logger *zap.Logger) *Tracker {
	if queueSize <= 0 {
		queueSize = 1
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Tracker{
		store:     store,
		publisher: publisher,
		logger:    logger,
		queue:     make(chan job, queueSize),
		done:      make(chan struct{}),
	}
}

// Start launches the worker. It is safe to call more than once.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.closed {
		return
	}
	t.started = true
	go t.worker()
	t.logger.Info("Analytics worker started", zap.Int("queue_size", cap(t.queue)))
}

// Stop closes the queue and waits for queued events to be written or for
// ctx to expire.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	started := t.started
	close(t.queue)
	t.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-t.done:
		t.logger.Info("Analytics worker drained")
		return nil
	case <-ctx.Done():
		t.logger.Warn("Analytics worker did not drain before shutdown", zap.Int("pending", len(t.queue)))
		return ctx.Err()
	}
}

func (t *Tracker) TrackView(ctx context.Context, candidateID int64, meta storage.RequestMeta) {
	t.enqueue(job{view: &storage.CandidateView{CandidateID: candidateID, Meta: meta}})
}

func (t *Tracker) TrackSearch(ctx context.Context, query, searchType string, resultsCount int, meta storage.RequestMeta) {
	t.enqueue(job{search: &storage.SearchEvent{
		Query:        query,
		SearchType:   searchType,
		ResultsCount: resultsCount,
		Meta:         meta,
	}})
}

// Dropped returns how many events were discarded because the queue was full
// or closed.
func (t *Tracker) Dropped() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dropped
}

func (t *Tracker) enqueue(j job) {
	j.queued = time.Now()

	t.mu.RLock()
	if t.closed {
		t.mu.RUnlock()
		t.drop("closed")
		return
	}
	// Non-blocking send
	select {
	case t.queue <- j:
		t.mu.RUnlock()
	default:
		t.mu.RUnlock()
		t.drop("queue full")
	}
}

func (t *Tracker) drop(reason string) {
	t.mu.Lock()
	t.dropped++
	t.mu.Unlock()
	t.logger.Warn("Dropping analytics event", zap.String("reason", reason))
}

func (t *Tracker) worker() {
	defer close(t.done)
	for j := range t.queue {
		t.process(j)
	}
}

func (t *Tracker) process(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	switch {
	case j.view != nil:
		if err := t.store.InsertCandidateView(ctx, *j.view); err != nil {
			t.logger.Error("Failed to record candidate view",
				zap.Int64("candidate_id", j.view.CandidateID),
				zap.Error(err))
		}
		if err := t.publisher.PublishCandidateViewed(ctx, events.CandidateViewedEvent{
			CandidateID: j.view.CandidateID,
			UserAgent:   j.view.Meta.UserAgent,
			IPAddress:   j.view.Meta.IPAddress,
			OccurredAt:  j.queued,
		}); err != nil {
			t.logger.Warn("Failed to publish candidate view", zap.Error(err))
		}

	case j.search != nil:
		if err := t.store.InsertSearch(ctx, *j.search); err != nil {
			t.logger.Error("Failed to record search",
				zap.String("query", j.search.Query),
				zap.Error(err))
		}
		if err := t.publisher.PublishSearchPerformed(ctx, events.SearchPerformedEvent{
			Query:        j.search.Query,
			SearchType:   j.search.SearchType,
			ResultsCount: j.search.ResultsCount,
			UserAgent:    j.search.Meta.UserAgent,
			IPAddress:    j.search.Meta.IPAddress,
			OccurredAt:   j.queued,
		}); err != nil {
			t.logger.Warn("Failed to publish search", zap.Error(err))
		}
	}
}
