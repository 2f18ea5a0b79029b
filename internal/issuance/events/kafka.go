package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"mintgate/internal/issuance/models"
)

// KafkaPublisher produces events as JSON records keyed by asset, so events
// for one asset share a partition. Publishing happens after the registry
// lock is released, so partition order can differ from commit order;
// consumers order issuances by sequence number.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher wraps an existing franz-go client. The client lifecycle
// is managed by the caller.
func NewKafkaPublisher(client *kgo.Client, topic string) *KafkaPublisher {
	return &KafkaPublisher{client: client, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e models.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(e.PartitionKey()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_kind", Value: []byte(e.Kind)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s event: %w", e.Kind, err)
	}
	return nil
}
