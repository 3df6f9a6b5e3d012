package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pressroom/news-service/internal/config"
)

func TestEventType(t *testing.T) {
	e := Event{Entity: "article", Action: "created", Key: "14", OccurredAt: time.Now()}
	assert.Equal(t, "article.created", e.Type())
}

// Kafka can be enabled while metrics are disabled, in which case the
// publisher holds a nil metrics handle. A failing publish must return the
// error instead of panicking on the metrics counters.
func TestKafkaPublisherWithoutMetrics(t *testing.T) {
	cfg := config.KafkaConfig{
		Brokers:      []string{"127.0.0.1:1"},
		Topic:        "news.events",
		WriteTimeout: 100 * time.Millisecond,
	}
	p := NewKafkaPublisher(cfg, zerolog.Nop(), nil)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := p.Publish(ctx, Event{Entity: "article", Action: "created", Key: "14", OccurredAt: time.Now()})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	assert.NoError(t, p.Publish(context.Background(), Event{Entity: "comment", Action: "deleted", Key: "2"}))
	assert.NoError(t, p.Close())
}
