// Package relay drains the audit outbox into Kafka. Kafka is the fan-out
// point for downstream consumers (SIEM, retention archive); the audit_events
// table remains the queryable copy.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"veripass/pkg/platform/audit/store/postgres"
)

const (
	defaultBatchSize    = 100
	defaultPollInterval = 2 * time.Second
)

// Source is the outbox side of the relay. The PostgreSQL audit store
// satisfies it; tests substitute a fake.
type Source interface {
	ListUnpublished(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Relay periodically publishes pending outbox entries to a Kafka topic.
type Relay struct {
	client   *kgo.Client
	topic    string
	source   Source
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

// New connects to Kafka, ensures the audit topic exists, and returns a relay
// ready to Run.
func New(brokers []string, topic string, source Source, logger *slog.Logger) (*Relay, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(50*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Relay{
		client:   client,
		topic:    topic,
		source:   source,
		logger:   logger,
		interval: defaultPollInterval,
		batch:    defaultBatchSize,
	}, nil
}

func ensureTopic(client *kgo.Client, topic string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", resp.Err)
	}
	return nil
}

// Run polls the outbox until the context is canceled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drain(ctx); err != nil {
				r.logger.ErrorContext(ctx, "audit outbox drain failed", "error", err)
			}
		}
	}
}

// drain publishes pending entries in batches until the outbox is empty.
func (r *Relay) drain(ctx context.Context) error {
	for {
		entries, err := r.source.ListUnpublished(ctx, r.batch)
		if err != nil {
			return fmt.Errorf("list unpublished: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}

		records := make([]*kgo.Record, 0, len(entries))
		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			records = append(records, &kgo.Record{
				Topic: r.topic,
				Key:   []byte(e.EventType),
				Value: e.Payload,
			})
			ids = append(ids, e.ID)
		}

		if err := r.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
			return fmt.Errorf("produce audit batch: %w", err)
		}
		if err := r.source.MarkPublished(ctx, ids); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}
	}
}

// Close flushes and releases the Kafka client.
func (r *Relay) Close() {
	r.client.Close()
}
