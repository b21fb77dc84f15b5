package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic is the audit trail topic when none is configured.
const DefaultTopic = "regent.audit"

// KafkaSink appends audit events to a Kafka topic, keyed by action so a
// consumer can partition by event type.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	if topic == "" {
		topic = DefaultTopic
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect audit producer: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Action),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
