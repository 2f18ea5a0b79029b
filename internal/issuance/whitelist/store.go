// Package whitelist keeps the set of principals allowed to issue, each with
// its assigned metadata reference.
//
// Membership is a dense slice plus a principal->slot index so add, remove and
// lookup are O(1). Removal moves the last member into the vacated slot, so the
// enumeration order is insertion order only until the first removal.
//
// The Store is not safe for concurrent use; the issuance service serialises
// access behind its registry lock.
package whitelist

import (
	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// Store is the whitelist arena.
type Store struct {
	order []id.Principal
	slots map[id.Principal]int
	refs  map[id.Principal]string
}

// New creates an empty whitelist.
func New() *Store {
	return &Store{
		slots: make(map[id.Principal]int),
		refs:  make(map[id.Principal]string),
	}
}

// validateEntry applies the per-element checks shared by Add and AddBatch.
func validateEntry(p id.Principal, metadataRef string) error {
	if p.IsZero() {
		return dErrors.New(dErrors.CodeInvalidArgument, "principal cannot be the zero identity")
	}
	if metadataRef == "" {
		return dErrors.New(dErrors.CodeInvalidArgument, "metadata reference cannot be empty")
	}
	return nil
}

// PrepareAdd validates a single addition without applying it.
func (s *Store) PrepareAdd(p id.Principal, metadataRef string) (models.WhitelistEntry, error) {
	p = p.Normalize()
	if err := validateEntry(p, metadataRef); err != nil {
		return models.WhitelistEntry{}, err
	}
	if s.IsPresent(p) {
		return models.WhitelistEntry{}, dErrors.New(dErrors.CodeInvalidArgument, "principal is already whitelisted")
	}
	return models.WhitelistEntry{Principal: p, MetadataRef: metadataRef}, nil
}

// PrepareBatch validates a batch without applying it and returns the entries
// that would be added. Validation is all-or-nothing; principals already
// present (or repeated earlier in the batch) are skipped, not rejected.
func (s *Store) PrepareBatch(principals []id.Principal, metadataRefs []string) ([]models.WhitelistEntry, error) {
	if len(principals) != len(metadataRefs) {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "principals and metadata references differ in length")
	}
	for i := range principals {
		if err := validateEntry(principals[i], metadataRefs[i]); err != nil {
			return nil, err
		}
	}

	added := make([]models.WhitelistEntry, 0, len(principals))
	seen := make(map[id.Principal]struct{}, len(principals))
	for i, p := range principals {
		p = p.Normalize()
		if s.IsPresent(p) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		added = append(added, models.WhitelistEntry{Principal: p, MetadataRef: metadataRefs[i]})
	}
	return added, nil
}

// PrepareRemove computes the swap-with-last removal of p without applying it.
func (s *Store) PrepareRemove(p id.Principal) (models.WhitelistRemoval, error) {
	p = p.Normalize()
	slot, ok := s.slots[p]
	if !ok {
		return models.WhitelistRemoval{}, dErrors.New(dErrors.CodeNotFound, "principal is not whitelisted")
	}
	removal := models.WhitelistRemoval{Principal: p, Slot: slot}
	if last := len(s.order) - 1; slot != last {
		removal.Moved = s.order[last]
	}
	return removal, nil
}

// Commit appends prepared entries to the enumeration order.
func (s *Store) Commit(entries []models.WhitelistEntry) {
	for _, e := range entries {
		s.slots[e.Principal] = len(s.order)
		s.refs[e.Principal] = e.MetadataRef
		s.order = append(s.order, e.Principal)
	}
}

// CommitRemoval applies a prepared removal.
func (s *Store) CommitRemoval(r models.WhitelistRemoval) {
	last := len(s.order) - 1
	if r.HasMove() {
		s.order[r.Slot] = r.Moved
		s.slots[r.Moved] = r.Slot
	}
	s.order[last] = ""
	s.order = s.order[:last]
	delete(s.slots, r.Principal)
	delete(s.refs, r.Principal)
}

// Add whitelists p with metadataRef.
func (s *Store) Add(p id.Principal, metadataRef string) error {
	entry, err := s.PrepareAdd(p, metadataRef)
	if err != nil {
		return err
	}
	s.Commit([]models.WhitelistEntry{entry})
	return nil
}

// AddBatch whitelists every absent principal in the batch and returns the
// entries actually added.
func (s *Store) AddBatch(principals []id.Principal, metadataRefs []string) ([]models.WhitelistEntry, error) {
	entries, err := s.PrepareBatch(principals, metadataRefs)
	if err != nil {
		return nil, err
	}
	s.Commit(entries)
	return entries, nil
}

// Remove drops p from the whitelist.
func (s *Store) Remove(p id.Principal) error {
	removal, err := s.PrepareRemove(p)
	if err != nil {
		return err
	}
	s.CommitRemoval(removal)
	return nil
}

// Restore replays persisted entries in enumeration order. Entries are not
// validated; a persisted empty reference stays empty so the issuance path
// can report it.
func (s *Store) Restore(entries []models.WhitelistEntry) error {
	for _, e := range entries {
		if _, dup := s.slots[e.Principal]; dup {
			return dErrors.New(dErrors.CodeInvariantViolation, "duplicate whitelist entry in snapshot")
		}
		s.Commit([]models.WhitelistEntry{e})
	}
	return nil
}

// IsPresent reports whether p is whitelisted.
func (s *Store) IsPresent(p id.Principal) bool {
	_, ok := s.slots[p.Normalize()]
	return ok
}

// MetadataOf returns p's metadata reference, or "" if p is absent.
func (s *Store) MetadataOf(p id.Principal) string {
	return s.refs[p.Normalize()]
}

// Count returns the number of whitelisted principals.
func (s *Store) Count() int {
	return len(s.order)
}

// All returns every whitelisted principal in enumeration order.
func (s *Store) All() []id.Principal {
	return append([]id.Principal(nil), s.order...)
}

// Entries returns every entry in enumeration order.
func (s *Store) Entries() []models.WhitelistEntry {
	out := make([]models.WhitelistEntry, len(s.order))
	for i, p := range s.order {
		out[i] = models.WhitelistEntry{Principal: p, MetadataRef: s.refs[p]}
	}
	return out
}

// Paginated returns order[offset : min(offset+limit, Count())].
func (s *Store) Paginated(offset, limit int) ([]id.Principal, error) {
	start, end, err := models.PageBounds(offset, limit, len(s.order))
	if err != nil {
		return nil, err
	}
	return append([]id.Principal(nil), s.order[start:end]...), nil
}

// IsPresentBatch answers IsPresent for each principal, in input order.
func (s *Store) IsPresentBatch(principals []id.Principal) []bool {
	out := make([]bool, len(principals))
	for i, p := range principals {
		out[i] = s.IsPresent(p)
	}
	return out
}

// MetadataOfBatch answers MetadataOf for each principal, in input order.
func (s *Store) MetadataOfBatch(principals []id.Principal) []string {
	out := make([]string, len(principals))
	for i, p := range principals {
		out[i] = s.MetadataOf(p)
	}
	return out
}
