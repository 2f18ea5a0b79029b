//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"mintgate/internal/issuance/events"
	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/testutil/containers"
)

const topic = "mintgate.issuance.test"

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())

	client, err := kgo.NewClient(kgo.SeedBrokers(s.redpanda.Brokers...))
	s.Require().NoError(err)
	s.client = client

	admin := kadm.NewClient(client)
	_, err = admin.CreateTopic(context.Background(), 3, 1, nil, topic)
	s.Require().NoError(err)
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaPublisherSuite) TestPublishKeysByAsset() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publisher := events.NewKafkaPublisher(s.client, topic)
	asset := id.AssetID(4)
	sent := []models.Event{
		{ID: "e1", Kind: models.EventIssuanceCompleted, AssetID: &asset, Principal: "a", SequenceNumber: 1},
		{ID: "e2", Kind: models.EventIssuanceCompleted, AssetID: &asset, Principal: "b", SequenceNumber: 2},
		{ID: "e3", Kind: models.EventWhitelistAdded, Principal: "c", MetadataRef: "uri-c"},
	}
	for _, e := range sent {
		s.Require().NoError(publisher.Publish(ctx, e))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	byKey := map[string][]models.Event{}
	received := 0
	for received < len(sent) {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for events")
		fetches.EachRecord(func(rec *kgo.Record) {
			var e models.Event
			s.Require().NoError(json.Unmarshal(rec.Value, &e))
			s.Require().Len(rec.Headers, 1)
			s.Equal(string(e.Kind), string(rec.Headers[0].Value))
			byKey[string(rec.Key)] = append(byKey[string(rec.Key)], e)
			received++
		})
	}

	issued := byKey["asset:4"]
	s.Require().Len(issued, 2)
	s.Equal("e1", issued[0].ID)
	s.Equal("e2", issued[1].ID)
	s.Require().Len(byKey["whitelist"], 1)
	s.Equal(id.Principal("c"), byKey["whitelist"][0].Principal)
}
