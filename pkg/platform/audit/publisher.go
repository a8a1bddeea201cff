package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher ships events to Kafka. A nil Publisher is valid and drops
// events silently, so callers never need to guard emission.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects a franz-go producer. Returns nil when no brokers
// are configured (publishing disabled).
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("audit: connect kafka: %w", err)
	}
	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

// Emit publishes an event asynchronously. Identify and stamp the event if
// the caller did not.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Category == "" {
		event.Category = event.Type.Category()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "audit event marshal failed", "error", err, "type", event.Type)
		return
	}
	record := &kgo.Record{
		Key:   []byte(event.Type),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.ErrorContext(ctx, "audit event publish failed", "error", err, "type", event.Type)
		}
	})
}

// Close flushes pending events and releases the producer.
func (p *Publisher) Close(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("audit: flush: %w", err)
	}
	p.client.Close()
	return nil
}
