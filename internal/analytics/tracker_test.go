package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"talent-search/internal/events"
	"talent-search/internal/storage"
)

type fakeStore struct {
	mu       sync.Mutex
	views    []storage.CandidateView
	searches []storage.SearchEvent
	err      error
	block    chan struct{}
}

func (f *fakeStore) InsertCandidateView(ctx context.Context, v storage.CandidateView) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, v)
	return f.err
}

func (f *fakeStore) InsertSearch(ctx context.Context, s storage.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, s)
	return f.err
}

type fakePublisher struct {
	mu       sync.Mutex
	views    []events.CandidateViewedEvent
	searches []events.SearchPerformedEvent
}

func (p *fakePublisher) PublishCandidateViewed(ctx context.Context, e events.CandidateViewedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, e)
	return nil
}

func (p *fakePublisher) PublishSearchPerformed(ctx context.Context, e events.SearchPerformedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searches = append(p.searches, e)
	return nil
}

func (p *fakePublisher) Close() {}

func TestTrackerWritesAndPublishes(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	tr := NewTracker(store, pub, 10, zap.NewNop())
	tr.Start()

	meta := storage.RequestMeta{UserAgent: "test-agent", IPAddress: "10.0.0.1"}
	tr.TrackView(context.Background(), 42, meta)
	tr.TrackSearch(context.Background(), "react", "general", 3, meta)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if len(store.views) != 1 || store.views[0].CandidateID != 42 {
		t.Errorf("views = %+v", store.views)
	}
	if len(store.searches) != 1 || store.searches[0].ResultsCount != 3 {
		t.Errorf("searches = %+v", store.searches)
	}
	if len(pub.views) != 1 || pub.views[0].UserAgent != "test-agent" {
		t.Errorf("published views = %+v", pub.views)
	}
	if len(pub.searches) != 1 || pub.searches[0].Query != "react" {
		t.Errorf("published searches = %+v", pub.searches)
	}
}

func TestTrackerStoreFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	tr := NewTracker(store, nil, 4, zap.NewNop())
	tr.Start()

	tr.TrackView(context.Background(), 1, storage.RequestMeta{})

	if err := tr.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if len(store.views) != 1 {
		t.Errorf("Expected write attempt, got %d", len(store.views))
	}
}

func TestTrackerDropsWhenFull(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	tr := NewTracker(store, nil, 1, zap.NewNop())
	tr.Start()

	// The worker takes the first event and blocks on it; the second fills
	// the queue; the third must be dropped without blocking.
	tr.TrackView(context.Background(), 1, storage.RequestMeta{})
	deadline := time.Now().Add(time.Second)
	for len(tr.queue) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	tr.TrackView(context.Background(), 2, storage.RequestMeta{})

	returned := make(chan struct{})
	go func() {
		tr.TrackView(context.Background(), 3, storage.RequestMeta{})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("TrackView blocked on a full queue")
	}

	if got := tr.Dropped(); got != 1 {
		t.Errorf("Dropped = %d, want 1", got)
	}

	close(store.block)
	if err := tr.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if len(store.views) != 2 {
		t.Errorf("Expected 2 views written, got %d", len(store.views))
	}
}

func TestTrackerAfterStop(t *testing.T) {
	tr := NewTracker(&fakeStore{}, nil, 2, zap.NewNop())
	tr.Start()
	if err := tr.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	tr.TrackSearch(context.Background(), "late", "general", 0, storage.RequestMeta{})
	if tr.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", tr.Dropped())
	}
	if err := tr.Stop(context.Background()); err != nil {
		t.Errorf("Second Stop returned %v", err)
	}
}
