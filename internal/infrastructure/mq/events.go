package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/fourthmouse-backend/internal/domain"
)

// ErrPoison marks a message that can never be processed; it is dropped
// instead of requeued.
var ErrPoison = errors.New("unprocessable message")

// EventPublisher sends account events to the outbound queue.
type EventPublisher struct {
	backend Backend
	queue   string
}

func NewEventPublisher(backend Backend, queue string) *EventPublisher {
	return &EventPublisher{backend: backend, queue: queue}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	_, err = p.backend.Publish(ctx, p.queue, data, map[string]string{"type": event.Type})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }

// MatchIngester stores one computed match.
type MatchIngester interface {
	IngestComputedMatch(ctx context.Context, cm domain.ComputedMatch) (*domain.Match, error)
}

// MatchConsumer feeds match.computed messages into the relationship service.
type MatchConsumer struct {
	backend  Backend
	queue    string
	ingester MatchIngester
	logger   *slog.Logger
}

func NewMatchConsumer(backend Backend, queue string, ingester MatchIngester, logger *slog.Logger) *MatchConsumer {
	return &MatchConsumer{backend: backend, queue: queue, ingester: ingester, logger: logger}
}

// Run consumes until ctx is cancelled.
func (c *MatchConsumer) Run(ctx context.Context) error {
	c.logger.Info("match consumer started", "queue", c.queue)
	err := c.backend.Subscribe(ctx, c.queue, c.Handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handle decodes one delivery. Malformed or invalid payloads are poison;
// store failures are retried by the broker.
func (c *MatchConsumer) Handle(ctx context.Context, msg Message) error {
	var event domain.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.Warn("dropping malformed match event", "message_id", msg.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrPoison, err)
	}
	if event.Type != domain.EventMatchComputed {
		c.logger.Warn("dropping unexpected event", "message_id", msg.ID, "type", event.Type)
		return fmt.Errorf("%w: type %q", ErrPoison, event.Type)
	}

	var cm domain.ComputedMatch
	if err := json.Unmarshal(event.Payload, &cm); err != nil {
		c.logger.Warn("dropping match event with bad payload", "message_id", msg.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrPoison, err)
	}

	match, err := c.ingester.IngestComputedMatch(ctx, cm)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("dropping rejected match", "message_id", msg.ID, "error", err)
			return fmt.Errorf("%w: %v", ErrPoison, err)
		}
		c.logger.Error("failed to ingest match", "message_id", msg.ID, "error", err)
		return err
	}

	c.logger.Debug("match ingested", "match_id", match.ID, "account_id", match.AccountID)
	return nil
}
