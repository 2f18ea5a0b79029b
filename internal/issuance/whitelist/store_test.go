package whitelist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

// assertArena checks that every member appears exactly once and the index
// agrees with the enumeration order.
func (s *StoreSuite) assertArena() {
	seen := make(map[id.Principal]bool)
	for i, p := range s.store.order {
		s.False(seen[p], "principal %s enumerated twice", p)
		seen[p] = true
		s.Equal(i, s.store.slots[p])
	}
	s.Len(s.store.slots, len(s.store.order))
}

func (s *StoreSuite) TestAdd() {
	s.Run("adds and exposes metadata", func() {
		s.Require().NoError(s.store.Add("user1", "uri-1"))
		s.True(s.store.IsPresent("user1"))
		s.Equal("uri-1", s.store.MetadataOf("user1"))
		s.Equal(1, s.store.Count())
	})

	s.Run("rejects duplicates without changing metadata", func() {
		err := s.store.Add("user1", "uri-other")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		s.Equal("uri-1", s.store.MetadataOf("user1"))
	})

	s.Run("rejects zero identity and empty metadata", func() {
		s.True(dErrors.HasCode(s.store.Add("", "uri"), dErrors.CodeInvalidArgument))
		s.True(dErrors.HasCode(s.store.Add("0x0000000000000000000000000000000000000000", "uri"), dErrors.CodeInvalidArgument))
		s.True(dErrors.HasCode(s.store.Add("user2", ""), dErrors.CodeInvalidArgument))
		s.Equal(1, s.store.Count())
	})

	s.Run("absent principal has empty metadata", func() {
		s.False(s.store.IsPresent("nobody"))
		s.Equal("", s.store.MetadataOf("nobody"))
	})
}

func (s *StoreSuite) TestAddBatch() {
	s.Run("length mismatch is invalid", func() {
		_, err := s.store.AddBatch([]id.Principal{"p1", "p2"}, []string{"u1"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("one bad element aborts the whole batch", func() {
		_, err := s.store.AddBatch([]id.Principal{"p1", "p2"}, []string{"u1", ""})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		s.False(s.store.IsPresent("p1"))
		s.False(s.store.IsPresent("p2"))
		s.Zero(s.store.Count())
	})

	s.Run("already present principals are skipped", func() {
		s.Require().NoError(s.store.Add("p1", "original"))
		added, err := s.store.AddBatch([]id.Principal{"p1", "p2", "p2"}, []string{"u1", "u2", "u2-dup"})
		s.Require().NoError(err)
		s.Equal([]models.WhitelistEntry{{Principal: "p2", MetadataRef: "u2"}}, added)
		s.Equal("original", s.store.MetadataOf("p1"))
		s.Equal([]id.Principal{"p1", "p2"}, s.store.All())
		s.assertArena()
	})

	s.Run("fully present batch is a no-op", func() {
		added, err := s.store.AddBatch([]id.Principal{"p1", "p2"}, []string{"x", "y"})
		s.Require().NoError(err)
		s.Empty(added)
		s.Equal(2, s.store.Count())
	})
}

func (s *StoreSuite) TestRemoveSwapsWithLast() {
	for i := 1; i <= 4; i++ {
		s.Require().NoError(s.store.Add(id.Principal(fmt.Sprintf("p%d", i)), fmt.Sprintf("u%d", i)))
	}

	s.Run("middle removal moves the last member into the gap", func() {
		removal, err := s.store.PrepareRemove("p2")
		s.Require().NoError(err)
		s.Equal(models.WhitelistRemoval{Principal: "p2", Slot: 1, Moved: "p4"}, removal)

		s.Require().NoError(s.store.Remove("p2"))
		s.Equal([]id.Principal{"p1", "p4", "p3"}, s.store.All())
		s.False(s.store.IsPresent("p2"))
		s.Equal("", s.store.MetadataOf("p2"))
		s.assertArena()
	})

	s.Run("last removal moves nothing", func() {
		removal, err := s.store.PrepareRemove("p3")
		s.Require().NoError(err)
		s.False(removal.HasMove())
		s.Require().NoError(s.store.Remove("p3"))
		s.Equal([]id.Principal{"p1", "p4"}, s.store.All())
		s.assertArena()
	})

	s.Run("absent principal is not found", func() {
		s.True(dErrors.HasCode(s.store.Remove("p2"), dErrors.CodeNotFound))
	})

	s.Run("removing everything leaves an empty arena", func() {
		s.Require().NoError(s.store.Remove("p1"))
		s.Require().NoError(s.store.Remove("p4"))
		s.Zero(s.store.Count())
		s.assertArena()
	})
}

func (s *StoreSuite) TestRemoveReAddRoundTrip() {
	s.Require().NoError(s.store.Add("p", "u"))
	s.Require().NoError(s.store.Remove("p"))
	s.Require().NoError(s.store.Add("p", "u2"))

	s.True(s.store.IsPresent("p"))
	s.Equal("u2", s.store.MetadataOf("p"))
}

func (s *StoreSuite) TestPaginationAndBatches() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Add(id.Principal(fmt.Sprintf("p%d", i)), "u"))
	}

	s.Run("pagination totality", func() {
		all, err := s.store.Paginated(0, s.store.Count())
		s.Require().NoError(err)
		for offset := 0; offset < s.store.Count(); offset++ {
			tail, err := s.store.Paginated(offset, s.store.Count()-offset)
			s.Require().NoError(err)
			s.Equal(all[offset:], tail)
		}
		_, err = s.store.Paginated(s.store.Count(), 1)
		s.True(dErrors.HasCode(err, dErrors.CodeOutOfRange))
	})

	s.Run("batch lookups keep input order", func() {
		in := []id.Principal{"p3", "nobody", "p0"}
		s.Equal([]bool{true, false, true}, s.store.IsPresentBatch(in))
		s.Equal([]string{"u", "", "u"}, s.store.MetadataOfBatch(in))
	})

	s.Run("all returns a copy", func() {
		all := s.store.All()
		all[0] = "mutated"
		s.Equal(id.Principal("p0"), s.store.All()[0])
	})
}

func (s *StoreSuite) TestRestore() {
	s.Require().NoError(s.store.Restore([]models.WhitelistEntry{{Principal: "a", MetadataRef: "u"}, {Principal: "b"}}))
	s.True(s.store.IsPresent("b"))
	s.Equal("", s.store.MetadataOf("b"))

	err := s.store.Restore([]models.WhitelistEntry{{Principal: "a", MetadataRef: "u"}})
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *StoreSuite) TestSurroundingWhitespaceIsNormalized() {
	s.Require().NoError(s.store.Add(" alice ", "uri-a"))

	s.True(s.store.IsPresent("alice"))
	s.True(s.store.IsPresent("\talice"))
	s.Equal("uri-a", s.store.MetadataOf("alice"))
	s.Equal([]id.Principal{"alice"}, s.store.All())

	err := s.store.Add("alice", "uri-b")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument), "same principal after trimming")

	added, err := s.store.AddBatch([]id.Principal{"bob ", " bob", "alice"}, []string{"uri-b", "uri-b2", "uri-x"})
	s.Require().NoError(err)
	s.Equal([]models.WhitelistEntry{{Principal: "bob", MetadataRef: "uri-b"}}, added)

	s.Require().NoError(s.store.Remove(" alice"))
	s.False(s.store.IsPresent("alice"))
	s.assertArena()
}
