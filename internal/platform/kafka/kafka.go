// Package kafka builds the franz-go client used for event publishing.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"mintgate/internal/platform/config"
)

// NewClient connects to the configured brokers and makes sure the topic
// exists. Returns nil when no brokers are configured.
func NewClient(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression(), kgo.NoCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), cfg); err != nil {
		client.Close()
		return nil, err
	}
	logger.InfoContext(ctx, "kafka publisher ready", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return client, nil
}

// EnsureTopic creates the topic unless it already exists.
func EnsureTopic(ctx context.Context, admin *kadm.Client, cfg config.KafkaConfig) error {
	partitions, replication := cfg.Partitions, cfg.ReplicationFactor
	if partitions <= 0 {
		partitions = 1
	}
	if replication <= 0 {
		replication = 1
	}
	resp, err := admin.CreateTopic(ctx, partitions, replication, nil, cfg.Topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	return nil
}
