package service

import (
	"fmt"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

func (s *ServiceSuite) TestAddToWhitelist() {
	s.Run("stores the metadata reference", func() {
		s.whitelist("user1", "uri-1")

		s.True(s.registry.IsWhitelisted("user1"))
		s.Equal("uri-1", s.registry.WhitelistMetadata("user1"))
		s.Equal(1, s.registry.WhitelistCount())
		s.Len(s.recorder.OfKind(models.EventWhitelistAdded), 1)
		s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.WhitelistSize))
	})

	s.Run("rejects invalid entries", func() {
		s.whitelist("user1", "uri-1")

		s.requireCode(s.registry.AddToWhitelist(s.ctx, s.owner, "", "uri"), dErrors.CodeInvalidArgument)
		s.requireCode(s.registry.AddToWhitelist(s.ctx, s.owner, "0x0000000000000000000000000000000000000000", "uri"), dErrors.CodeInvalidArgument)
		s.requireCode(s.registry.AddToWhitelist(s.ctx, s.owner, "user2", ""), dErrors.CodeInvalidArgument)
		s.requireCode(s.registry.AddToWhitelist(s.ctx, s.owner, "user1", "uri-other"), dErrors.CodeInvalidArgument)

		s.Equal("uri-1", s.registry.WhitelistMetadata("user1"))
		s.Equal(1, s.registry.WhitelistCount())
	})

	s.Run("absent principal has empty metadata", func() {
		s.False(s.registry.IsWhitelisted("stranger"))
		s.Empty(s.registry.WhitelistMetadata("stranger"))
	})
}

func (s *ServiceSuite) TestAddToWhitelistBatch() {
	s.Run("one invalid element aborts the whole batch", func() {
		_, err := s.registry.AddToWhitelistBatch(s.ctx, s.owner, []id.Principal{"p1", "p2"}, []string{"u1", ""})
		s.requireCode(err, dErrors.CodeInvalidArgument)

		s.False(s.registry.IsWhitelisted("p1"))
		s.False(s.registry.IsWhitelisted("p2"))
		s.Empty(s.recorder.Events())
	})

	s.Run("length mismatch is invalid", func() {
		_, err := s.registry.AddToWhitelistBatch(s.ctx, s.owner, []id.Principal{"p1", "p2"}, []string{"u1"})
		s.requireCode(err, dErrors.CodeInvalidArgument)
		s.Equal(0, s.registry.WhitelistCount())
	})

	s.Run("present principals are skipped", func() {
		s.whitelist("p1", "u1")

		added, err := s.registry.AddToWhitelistBatch(s.ctx, s.owner,
			[]id.Principal{"p1", "p2", "p3", "p2"},
			[]string{"changed", "u2", "u3", "u2-again"})
		s.Require().NoError(err)

		s.Equal([]models.WhitelistEntry{
			{Principal: "p2", MetadataRef: "u2"},
			{Principal: "p3", MetadataRef: "u3"},
		}, added)
		s.Equal("u1", s.registry.WhitelistMetadata("p1"))
		s.Equal("u2", s.registry.WhitelistMetadata("p2"))
		s.Equal([]id.Principal{"p1", "p2", "p3"}, s.registry.Whitelist())
		s.Len(s.recorder.OfKind(models.EventWhitelistAdded), 3)
	})

	s.Run("empty batch is a no-op", func() {
		added, err := s.registry.AddToWhitelistBatch(s.ctx, s.owner, nil, nil)
		s.Require().NoError(err)
		s.Empty(added)
	})
}

func (s *ServiceSuite) TestRemoveFromWhitelist() {
	s.Run("absent principal is not found", func() {
		s.requireCode(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "stranger"), dErrors.CodeNotFound)
	})

	s.Run("last member moves into the gap", func() {
		for _, p := range []id.Principal{"a", "b", "c", "d"} {
			s.whitelist(p, "uri-"+string(p))
		}

		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "b"))
		s.Equal([]id.Principal{"a", "d", "c"}, s.registry.Whitelist())

		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "c"))
		s.Equal([]id.Principal{"a", "d"}, s.registry.Whitelist())

		s.False(s.registry.IsWhitelisted("b"))
		s.Empty(s.registry.WhitelistMetadata("b"))
		s.Len(s.recorder.OfKind(models.EventWhitelistRemoved), 2)
		s.Equal(float64(2), promtestutil.ToFloat64(s.metrics.WhitelistSize))
	})

	s.Run("remove and re-add round trip", func() {
		s.whitelist("p", "u")
		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "p"))
		s.whitelist("p", "u2")

		s.True(s.registry.IsWhitelisted("p"))
		s.Equal("u2", s.registry.WhitelistMetadata("p"))
	})
}

func (s *ServiceSuite) TestWhitelistPagination() {
	s.Run("every offset is a suffix of the full listing", func() {
		for i := 0; i < 7; i++ {
			s.whitelist(id.Principal(fmt.Sprintf("p%d", i)), "uri")
		}
		s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "p2"))

		count := s.registry.WhitelistCount()
		full, err := s.registry.WhitelistPaginated(0, count)
		s.Require().NoError(err)
		s.Equal(s.registry.Whitelist(), full)

		for offset := 0; offset < count; offset++ {
			page, err := s.registry.WhitelistPaginated(offset, count-offset)
			s.Require().NoError(err)
			s.Equal(full[offset:], page)
		}
	})

	s.Run("offset at or past the count is out of range", func() {
		s.whitelist("p", "u")

		_, err := s.registry.WhitelistPaginated(1, 1)
		s.requireCode(err, dErrors.CodeOutOfRange)
		_, err = s.registry.WhitelistPaginated(5, 0)
		s.requireCode(err, dErrors.CodeOutOfRange)
	})

	s.Run("empty whitelist is out of range", func() {
		_, err := s.registry.WhitelistPaginated(0, 10)
		s.requireCode(err, dErrors.CodeOutOfRange)
	})
}

func (s *ServiceSuite) TestWhitelistBatchQueries() {
	s.whitelist("a", "uri-a")
	s.whitelist("b", "uri-b")
	query := []id.Principal{"b", "x", "a", "b"}

	s.Equal([]bool{true, false, true, true}, s.registry.IsWhitelistedBatch(query))
	s.Equal([]string{"uri-b", "", "uri-a", "uri-b"}, s.registry.WhitelistMetadataBatch(query))

	present, refs := s.registry.WhitelistLookup(query)
	s.Equal([]bool{true, false, true, true}, present)
	s.Equal([]string{"uri-b", "", "uri-a", "uri-b"}, refs)
}

func (s *ServiceSuite) TestPrincipalWhitespaceIsTrimmed() {
	s.createAssets(1)
	s.whitelist(" alice ", "uri-a")

	s.True(s.registry.IsWhitelisted("alice"))
	s.Equal("uri-a", s.registry.WhitelistMetadata("alice"))
	s.Equal([]id.Principal{"alice"}, s.registry.Whitelist())
	s.requireCode(s.registry.AddToWhitelist(s.ctx, s.owner, "alice", "uri-b"), dErrors.CodeInvalidArgument)

	seq, err := s.registry.Issue(s.ctx, 0, "alice ")
	s.Require().NoError(err)
	rec, err := s.registry.RecordOf(0, seq)
	s.Require().NoError(err)
	s.Equal(id.Principal("alice"), rec.Owner)

	_, err = s.registry.Issue(s.ctx, 0, "alice")
	s.requireCode(err, dErrors.CodeAlreadyIssued)

	s.Require().NoError(s.registry.RemoveFromWhitelist(s.ctx, s.owner, "\talice"))
	removed := s.recorder.OfKind(models.EventWhitelistRemoved)
	s.Require().Len(removed, 1)
	s.Equal(id.Principal("alice"), removed[0].Principal)
	s.False(s.registry.IsWhitelisted("alice"))
}
