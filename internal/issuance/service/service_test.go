package service

//go:generate mockgen -source=journal.go -destination=mocks/journal_mock.go -package=mocks Journal
//go:generate mockgen -source=service.go -destination=mocks/publisher_mock.go -package=mocks EventPublisher

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"mintgate/internal/issuance/events"
	issuancemetrics "mintgate/internal/issuance/metrics"
	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	registry *Registry
	owner    OwnerToken
	recorder *events.Recorder
	metrics  *issuancemetrics.Metrics
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = testutil.CallerContext("0xcaller")
	s.recorder = events.NewRecorder()
	s.metrics = issuancemetrics.New(prometheus.NewRegistry())
	s.registry, s.owner = New(WithPublisher(s.recorder), WithMetrics(s.metrics))
}

// SetupSubTest gives every s.Run a fresh registry.
func (s *ServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ServiceSuite) createAssets(n int) {
	for i := 0; i < n; i++ {
		_, err := s.registry.CreateAsset(s.ctx, s.owner)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) whitelist(p id.Principal, ref string) {
	s.Require().NoError(s.registry.AddToWhitelist(s.ctx, s.owner, p, ref))
}

func (s *ServiceSuite) requireCode(err error, code dErrors.Code) {
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, code), "expected %s, got %v", code, err)
}

func (s *ServiceSuite) TestOwnerCapability() {
	s.Run("zero token cannot mutate", func() {
		var nobody OwnerToken

		_, err := s.registry.CreateAsset(s.ctx, nobody)
		s.requireCode(err, dErrors.CodeForbidden)
		s.requireCode(s.registry.AddToWhitelist(s.ctx, nobody, "user1", "uri-1"), dErrors.CodeForbidden)
		_, err = s.registry.AddToWhitelistBatch(s.ctx, nobody, []id.Principal{"user1"}, []string{"uri-1"})
		s.requireCode(err, dErrors.CodeForbidden)
		s.requireCode(s.registry.RemoveFromWhitelist(s.ctx, nobody, "user1"), dErrors.CodeForbidden)

		s.Equal(0, s.registry.AssetCount())
		s.Equal(0, s.registry.WhitelistCount())
		s.Empty(s.recorder.Events())
	})

	s.Run("token from another registry cannot mutate", func() {
		_, foreign := New()

		_, err := s.registry.CreateAsset(s.ctx, foreign)
		s.requireCode(err, dErrors.CodeForbidden)
		s.requireCode(s.registry.AddToWhitelist(s.ctx, foreign, "user1", "uri-1"), dErrors.CodeForbidden)
	})

	s.Run("tokens of two fresh registries are not interchangeable", func() {
		first, firstOwner := New()
		second, secondOwner := New()

		_, err := first.CreateAsset(s.ctx, secondOwner)
		s.requireCode(err, dErrors.CodeForbidden)
		_, err = second.CreateAsset(s.ctx, firstOwner)
		s.requireCode(err, dErrors.CodeForbidden)

		_, err = first.CreateAsset(s.ctx, firstOwner)
		s.Require().NoError(err)
		s.Equal(1, first.AssetCount())
		s.Zero(second.AssetCount())
	})

	s.Run("issuing needs no owner token", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")

		seq, err := s.registry.Issue(s.ctx, 0, "user1")
		s.Require().NoError(err)
		s.Equal(id.SequenceNumber(1), seq)
	})
}

func (s *ServiceSuite) TestAssets() {
	s.Run("assets are numbered in creation order", func() {
		s.createAssets(3)

		handles := s.registry.ListAssets()
		s.Require().Len(handles, 3)
		for i, h := range handles {
			s.Equal(id.AssetID(i), h.ID)
			s.Equal(testutil.FixedTime, h.CreatedAt)
		}
		s.Len(s.recorder.OfKind(models.EventAssetCreated), 3)
	})

	s.Run("paginated listing clamps the limit", func() {
		s.createAssets(3)

		page, err := s.registry.ListAssetsPaginated(1, 10)
		s.Require().NoError(err)
		s.Require().Len(page, 2)
		s.Equal(id.AssetID(1), page[0].ID)
		s.Equal(id.AssetID(2), page[1].ID)
	})

	s.Run("paginated listing past the end is out of range", func() {
		s.createAssets(2)

		_, err := s.registry.ListAssetsPaginated(2, 1)
		s.requireCode(err, dErrors.CodeOutOfRange)
	})

	s.Run("get asset reports issued count and mints", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")
		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.Require().NoError(err)

		view, err := s.registry.GetAsset(0)
		s.Require().NoError(err)
		s.Equal(uint64(1), view.IssuedCount)
		s.Equal(uint64(1), view.Mints)

		_, err = s.registry.GetAsset(7)
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("ensure assets only creates the shortfall", func() {
		created, err := s.registry.EnsureAssets(s.ctx, s.owner, 2)
		s.Require().NoError(err)
		s.Equal(2, created)

		created, err = s.registry.EnsureAssets(s.ctx, s.owner, 2)
		s.Require().NoError(err)
		s.Equal(0, created)
		s.Equal(2, s.registry.AssetCount())
	})

	s.Run("concurrent ensure assets never overshoots", func() {
		const callers = 16
		var wg sync.WaitGroup
		totals := make(chan int, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := s.registry.EnsureAssets(s.ctx, s.owner, 5)
				s.NoError(err)
				totals <- created
			}()
		}
		wg.Wait()
		close(totals)

		sum := 0
		for created := range totals {
			sum += created
		}
		s.Equal(5, sum)
		s.Equal(5, s.registry.AssetCount())
		s.Len(s.recorder.OfKind(models.EventAssetCreated), 5)
	})

	s.Run("ensure assets requires the owner", func() {
		_, err := s.registry.EnsureAssets(s.ctx, OwnerToken{}, 3)
		s.requireCode(err, dErrors.CodeForbidden)
		s.Zero(s.registry.AssetCount())
	})

	s.Run("record lookups", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")
		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.Require().NoError(err)

		ref, err := s.registry.MetadataOf(0, 1)
		s.Require().NoError(err)
		s.Equal("uri-1", ref)

		_, err = s.registry.MetadataOf(0, 2)
		s.requireCode(err, dErrors.CodeNotFound)
		_, err = s.registry.MetadataOf(3, 1)
		s.requireCode(err, dErrors.CodeNotFound)

		total, err := s.registry.TotalIssued(0)
		s.Require().NoError(err)
		s.Equal(uint64(1), total)
	})
}

func (s *ServiceSuite) TestConcurrentIssuanceEventsCarrySequenceNumbers() {
	const n = 12
	s.createAssets(1)
	principals := make([]id.Principal, n)
	for i := range principals {
		principals[i] = id.Principal(fmt.Sprintf("user%d", i))
		s.whitelist(principals[i], "uri")
	}

	var wg sync.WaitGroup
	for _, p := range principals {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.registry.Issue(s.ctx, 0, p)
			s.NoError(err)
		}()
	}
	wg.Wait()

	issued := s.recorder.OfKind(models.EventIssuanceCompleted)
	s.Require().Len(issued, n)
	seqs := make([]id.SequenceNumber, 0, n)
	for _, e := range issued {
		s.Equal("asset:0", e.PartitionKey())
		seqs = append(seqs, e.SequenceNumber)
	}
	slices.Sort(seqs)
	for i, seq := range seqs {
		s.Equal(id.SequenceNumber(i+1), seq)
	}
}
