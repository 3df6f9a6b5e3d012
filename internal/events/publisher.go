// Package events provides a Kafka publisher for entity lifecycle events.
// Publishing is best effort: failures are logged and counted, never
// surfaced to API clients.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/pressroom/news-service/internal/config"
	"github.com/pressroom/news-service/internal/observability"
)

// Event is a lifecycle event emitted after a successful mutation.
type Event struct {
	// Entity is the kind of entity affected (article, comment, user, topic).
	Entity string `json:"entity"`
	// Action is what happened (created, deleted).
	Action string `json:"action"`
	// Key identifies the affected entity (id or username).
	Key string `json:"key"`
	// OccurredAt is when the mutation completed.
	OccurredAt time.Time `json:"occurred_at"`
}

// Type returns the event type label, e.g. "article.created".
func (e Event) Type() string {
	return e.Entity + "." + e.Action
}

// Publisher publishes lifecycle events.
type Publisher interface {
	// Publish sends one event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event Event) error

	// Close releases publisher resources.
	Close() error
}

// Compile-time interface verification.
var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*NopPublisher)(nil)
)

// KafkaPublisher publishes lifecycle events to a Kafka topic.
type KafkaPublisher struct {
	writer  *kafka.Writer
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewKafkaPublisher creates a publisher writing to the configured topic.
func NewKafkaPublisher(cfg config.KafkaConfig, logger zerolog.Logger, metrics *observability.Metrics) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{
		writer:  writer,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
		metrics: metrics,
	}
}

// Publish sends one event to Kafka. The message key is entity:key so events
// for the same entity land on the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.recordFailed(event.Type())
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Entity + ":" + event.Key),
		Value: value,
	})
	if err != nil {
		p.recordFailed(event.Type())
		p.logger.Error().Err(err).
			Str("event_type", event.Type()).
			Str("key", event.Key).
			Msg("failed to publish lifecycle event")
		return fmt.Errorf("write event: %w", err)
	}

	p.recordPublished(event.Type())
	p.logger.Debug().
		Str("event_type", event.Type()).
		Str("key", event.Key).
		Msg("published lifecycle event")

	return nil
}

// recordPublished counts a published event. Metrics are optional.
func (p *KafkaPublisher) recordPublished(eventType string) {
	if p.metrics != nil {
		p.metrics.RecordEventPublished(eventType)
	}
}

// recordFailed counts a failed publish. Metrics are optional.
func (p *KafkaPublisher) recordFailed(eventType string) {
	if p.metrics != nil {
		p.metrics.RecordEventFailed(eventType)
	}
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info().Msg("closing event publisher")
	return p.writer.Close()
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events.
func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

// Publish discards the event.
func (*NopPublisher) Publish(context.Context, Event) error { return nil }

// Close is a no-op.
func (*NopPublisher) Close() error { return nil }
