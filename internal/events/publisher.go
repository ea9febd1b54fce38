// Package events fans analytics events out over NATS.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/config"
	"talent-search/internal/telemetry"
)

var tracer = telemetry.GetTracer("talent-search/events")

const (
	CandidateViewedSubject = "analytics.candidate.viewed"
	SearchPerformedSubject = "analytics.search.performed"
)

type CandidateViewedEvent struct {
	CandidateID int64     `json:"candidateId"`
	UserAgent   string    `json:"userAgent,omitempty"`
	IPAddress   string    `json:"ipAddress,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type SearchPerformedEvent struct {
	Query        string    `json:"query"`
	SearchType   string    `json:"searchType"`
	ResultsCount int       `json:"resultsCount"`
	UserAgent    string    `json:"userAgent,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishCandidateViewed(ctx context.Context, event CandidateViewedEvent) error
	PublishSearchPerformed(ctx context.Context, event SearchPerformedEvent) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewPublisher connects to NATS, or returns a no-op publisher when no URL is
// configured.
func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS_URL not set, analytics events will not be published")
		return Nop{}, nil
	}

	opts := []nats.Option{
		nats.Name(telemetry.ServiceName),
		nats.Timeout(cfg.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, apperr.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishCandidateViewed(ctx context.Context, event CandidateViewedEvent) error {
	return p.publish(ctx, CandidateViewedSubject, event)
}

func (p *natsPublisher) PublishSearchPerformed(ctx context.Context, event SearchPerformedEvent) error {
	return p.publish(ctx, SearchPerformedSubject, event)
}

func (p *natsPublisher) publish(ctx context.Context, subject string, event interface{}) error {
	_, span := tracer.Start(ctx, "Publish")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return apperr.Internal("marshaling event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", subject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(subject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err))
		return apperr.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published event", zap.String("subject", subject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.conn.Close()
		}
	}
}

type Nop struct{}

func (Nop) PublishCandidateViewed(context.Context, CandidateViewedEvent) error { return nil }
func (Nop) PublishSearchPerformed(context.Context, SearchPerformedEvent) error { return nil }
func (Nop) Close()                                                             {}
