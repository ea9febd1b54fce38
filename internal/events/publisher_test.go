package events

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"talent-search/internal/config"
)

func TestNewPublisherWithoutURL(t *testing.T) {
	p, err := NewPublisher(zap.NewNop(), &config.Config{})
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	if _, ok := p.(Nop); !ok {
		t.Fatalf("Expected Nop publisher, got %T", p)
	}
	if err := p.PublishCandidateViewed(context.Background(), CandidateViewedEvent{CandidateID: 1}); err != nil {
		t.Errorf("Nop publish returned %v", err)
	}
	p.Close()
}
