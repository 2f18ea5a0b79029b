package service

import (
	"fmt"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/testutil"
)

func (s *ServiceSuite) TestIssue_FactoryScenario() {
	s.createAssets(1)
	s.whitelist("user1", "uri-1")
	s.whitelist("user2", "uri-2")

	seq, err := s.registry.Issue(s.ctx, 0, "user1")
	s.Require().NoError(err)
	s.Equal(id.SequenceNumber(1), seq)
	s.Equal(uint64(1), s.registry.MintsForAsset(0))
	s.Equal(uint64(1), s.registry.TotalMints())

	_, err = s.registry.Issue(s.ctx, 0, "user1")
	s.requireCode(err, dErrors.CodeAlreadyIssued)

	available, err := s.registry.AvailableAssetsFor("user1")
	s.Require().NoError(err)
	s.Empty(available)

	available, err = s.registry.AvailableAssetsFor("user2")
	s.Require().NoError(err)
	s.Equal([]id.AssetID{0}, available)
}

func (s *ServiceSuite) TestIssue_Idempotent() {
	s.createAssets(2)
	s.whitelist("user1", "uri-1")

	_, err := s.registry.Issue(s.ctx, 1, "user1")
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.registry.Issue(s.ctx, 1, "user1")
		s.requireCode(err, dErrors.CodeAlreadyIssued)
		s.True(s.registry.HasIssued(1, "user1"))
	}
	s.False(s.registry.HasIssued(0, "user1"))

	total, err := s.registry.TotalIssued(1)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.IssuancesCompleted))
	s.Equal(float64(3), promtestutil.ToFloat64(s.metrics.IssuancesRejected.WithLabelValues(string(dErrors.CodeAlreadyIssued))))
}

func (s *ServiceSuite) TestIssue_WhitelistGating() {
	s.Run("absent principal is rejected before the asset is looked up", func() {
		s.createAssets(1)

		_, err := s.registry.Issue(s.ctx, 0, "stranger")
		s.requireCode(err, dErrors.CodeNotWhitelisted)
		_, err = s.registry.Issue(s.ctx, 42, "stranger")
		s.requireCode(err, dErrors.CodeNotWhitelisted)
		_, err = s.registry.Issue(s.ctx, 0, "")
		s.requireCode(err, dErrors.CodeNotWhitelisted)
	})

	s.Run("removed principal is rejected", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")
		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "user1"))

		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.requireCode(err, dErrors.CodeNotWhitelisted)
		s.False(s.registry.HasIssued(0, "user1"))
	})

	s.Run("whitelisted principal on unknown asset is not found", func() {
		s.whitelist("user1", "uri-1")

		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.requireCode(err, dErrors.CodeNotFound)
		s.Equal(uint64(0), s.registry.TotalMints())
	})

	s.Run("issuance fact survives removal from the whitelist", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")
		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.Require().NoError(err)

		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "user1"))
		s.whitelist("user1", "uri-9")

		_, err = s.registry.Issue(s.ctx, 0, "user1")
		s.requireCode(err, dErrors.CodeAlreadyIssued)
	})
}

func (s *ServiceSuite) TestIssue_SequenceMonotonic() {
	s.createAssets(1)
	const n = 6
	for i := 1; i <= n; i++ {
		s.whitelist(id.Principal(fmt.Sprintf("user%d", i)), fmt.Sprintf("uri-%d", i))
	}

	for i := 1; i <= n; i++ {
		p := id.Principal(fmt.Sprintf("user%d", i))
		seq, err := s.registry.Issue(s.ctx, 0, p)
		s.Require().NoError(err)
		s.Equal(id.SequenceNumber(i), seq)

		rec, err := s.registry.RecordOf(0, seq)
		s.Require().NoError(err)
		s.Equal(p, rec.Owner)
		s.Equal(fmt.Sprintf("uri-%d", i), rec.MetadataRef)
	}
}

func (s *ServiceSuite) TestIssue_CounterConsistency() {
	s.createAssets(3)
	principals := []id.Principal{"a", "b", "c", "d"}
	for _, p := range principals {
		s.whitelist(p, "uri-"+string(p))
	}

	plan := map[id.AssetID][]id.Principal{
		0: {"a", "b", "c"},
		1: {"d"},
		2: {"a", "d", "a"},
	}
	for asset, ps := range plan {
		for _, p := range ps {
			_, _ = s.registry.Issue(s.ctx, asset, p)
		}
	}
	_ = s.registry.RemoveFromWhitelist(s.ctx, s.owner, "b")
	_, _ = s.registry.Issue(s.ctx, 1, "b")

	var sum uint64
	for _, h := range s.registry.ListAssets() {
		mints := s.registry.MintsForAsset(h.ID)
		s.Equal(h.IssuedCount, mints)
		sum += mints
	}
	s.Equal(sum, s.registry.TotalMints())
	s.Equal(uint64(6), sum)
	s.Equal(uint64(0), s.registry.MintsForAsset(99))
}

func (s *ServiceSuite) TestIssue_Capacity() {
	s.registry, s.owner = New(WithPublisher(s.recorder), WithMetrics(s.metrics), WithAssetCapacity(1))
	s.createAssets(1)
	s.whitelist("user1", "uri-1")
	s.whitelist("user2", "uri-2")

	_, err := s.registry.Issue(s.ctx, 0, "user1")
	s.Require().NoError(err)

	_, err = s.registry.Issue(s.ctx, 0, "user2")
	s.requireCode(err, dErrors.CodeCapacityExceeded)
	s.False(s.registry.HasIssued(0, "user2"))
	s.Equal(uint64(1), s.registry.MintsForAsset(0))
	s.Equal(uint64(1), s.registry.TotalMints())
}

func (s *ServiceSuite) TestIssue_PublishesCompletion() {
	s.createAssets(1)
	s.whitelist("user1", "uri-1")

	seq, err := s.registry.Issue(s.ctx, 0, "user1")
	s.Require().NoError(err)

	completed := s.recorder.OfKind(models.EventIssuanceCompleted)
	s.Require().Len(completed, 1)
	e := completed[0]
	s.NotEmpty(e.ID)
	s.Require().NotNil(e.AssetID)
	s.Equal(id.AssetID(0), *e.AssetID)
	s.Equal(id.Principal("user1"), e.Principal)
	s.Equal(seq, e.SequenceNumber)
	s.Equal("uri-1", e.MetadataRef)
	s.Equal("req-test", e.RequestID)
	s.Equal(testutil.FixedTime, e.OccurredAt)
}

func (s *ServiceSuite) TestIssue_RejectionPublishesNothing() {
	s.createAssets(1)
	before := len(s.recorder.Events())

	_, err := s.registry.Issue(s.ctx, 0, "stranger")
	s.requireCode(err, dErrors.CodeNotWhitelisted)
	s.Len(s.recorder.Events(), before)
}

func (s *ServiceSuite) TestHasIssuedBatch() {
	s.createAssets(3)
	s.whitelist("user1", "uri-1")
	_, err := s.registry.Issue(s.ctx, 2, "user1")
	s.Require().NoError(err)

	s.Equal([]bool{false, true, false, false}, s.registry.HasIssuedBatch("user1", []id.AssetID{0, 2, 1, 9}))
	s.Empty(s.registry.HasIssuedBatch("user1", nil))
}

func (s *ServiceSuite) TestAvailableAssetsFor() {
	s.Run("absent principal is not whitelisted", func() {
		s.createAssets(2)

		_, err := s.registry.AvailableAssetsFor("stranger")
		s.requireCode(err, dErrors.CodeNotWhitelisted)
	})

	s.Run("returns unissued assets in creation order", func() {
		s.createAssets(4)
		s.whitelist("user1", "uri-1")
		for _, a := range []id.AssetID{1, 3} {
			_, err := s.registry.Issue(s.ctx, a, "user1")
			s.Require().NoError(err)
		}

		available, err := s.registry.AvailableAssetsFor("user1")
		s.Require().NoError(err)
		s.Equal([]id.AssetID{0, 2}, available)
	})
}

func (s *ServiceSuite) TestProfileOf() {
	s.Run("unknown principal yields an empty profile", func() {
		s.createAssets(2)

		profile := s.registry.ProfileOf("stranger")
		s.False(profile.Whitelisted)
		s.Empty(profile.MetadataRef)
		s.NotNil(profile.IssuedAssetIDs)
		s.Empty(profile.IssuedAssetIDs)
	})

	s.Run("whitelisted principal lists issued assets", func() {
		s.createAssets(3)
		s.whitelist("user1", "uri-1")
		for _, a := range []id.AssetID{2, 0} {
			_, err := s.registry.Issue(s.ctx, a, "user1")
			s.Require().NoError(err)
		}

		profile := s.registry.ProfileOf("user1")
		s.True(profile.Whitelisted)
		s.Equal("uri-1", profile.MetadataRef)
		s.Equal([]id.AssetID{0, 2}, profile.IssuedAssetIDs)
	})

	s.Run("removed principal keeps its history", func() {
		s.createAssets(1)
		s.whitelist("user1", "uri-1")
		_, err := s.registry.Issue(s.ctx, 0, "user1")
		s.Require().NoError(err)
		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "user1"))

		profile := s.registry.ProfileOf("user1")
		s.False(profile.Whitelisted)
		s.Empty(profile.MetadataRef)
		s.Equal([]id.AssetID{0}, profile.IssuedAssetIDs)
	})
}

func (s *ServiceSuite) TestStats() {
	s.createAssets(2)
	s.whitelist("user1", "uri-1")
	s.whitelist("user2", "uri-2")
	_, err := s.registry.Issue(s.ctx, 1, "user2")
	s.Require().NoError(err)

	s.Equal(Stats{Assets: 2, Whitelisted: 2, TotalMints: 1}, s.registry.Stats())
}
