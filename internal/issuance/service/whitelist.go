package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// AddToWhitelist whitelists p with metadataRef.
func (r *Registry) AddToWhitelist(ctx context.Context, owner OwnerToken, p id.Principal, metadataRef string) error {
	_, err := r.addEntries(ctx, owner, "issuance.AddToWhitelist", func() ([]models.WhitelistEntry, error) {
		entry, err := r.whitelist.PrepareAdd(p, metadataRef)
		if err != nil {
			return nil, err
		}
		return []models.WhitelistEntry{entry}, nil
	})
	return err
}

// AddToWhitelistBatch validates the whole batch before adding anything;
// principals already present are skipped. It returns the entries added.
func (r *Registry) AddToWhitelistBatch(ctx context.Context, owner OwnerToken, principals []id.Principal, metadataRefs []string) ([]models.WhitelistEntry, error) {
	return r.addEntries(ctx, owner, "issuance.AddToWhitelistBatch", func() ([]models.WhitelistEntry, error) {
		return r.whitelist.PrepareBatch(principals, metadataRefs)
	})
}

func (r *Registry) addEntries(ctx context.Context, owner OwnerToken, spanName string, prepare func() ([]models.WhitelistEntry, error)) ([]models.WhitelistEntry, error) {
	ctx, span := r.tracer.Start(ctx, spanName)
	defer span.End()

	if err := r.authorize(owner); err != nil {
		return nil, r.fail(span, err)
	}

	r.mu.Lock()
	entries, err := prepare()
	if err == nil && len(entries) > 0 {
		firstSlot := r.whitelist.Count()
		err = r.journalWrite("save_whitelist", func() error {
			return r.journal.SaveWhitelist(ctx, entries, firstSlot)
		})
		if err == nil {
			r.whitelist.Commit(entries)
			r.setWhitelistGauge()
		}
	}
	r.mu.Unlock()
	if err != nil {
		return nil, r.fail(span, err)
	}

	span.SetAttributes(attribute.Int("whitelist.added", len(entries)))
	at := requestcontext.Now(ctx)
	for _, e := range entries {
		r.logAudit(ctx, string(models.EventWhitelistAdded), "principal", e.Principal)
		r.publish(ctx, models.Event{
			Kind:        models.EventWhitelistAdded,
			OccurredAt:  at,
			Principal:   e.Principal,
			MetadataRef: e.MetadataRef,
		})
	}
	return entries, nil
}

// RemoveFromWhitelist drops p from the whitelist. The last member moves into
// the vacated position.
func (r *Registry) RemoveFromWhitelist(ctx context.Context, owner OwnerToken, p id.Principal) error {
	ctx, span := r.tracer.Start(ctx, "issuance.RemoveFromWhitelist")
	defer span.End()

	if err := r.authorize(owner); err != nil {
		return r.fail(span, err)
	}

	r.mu.Lock()
	removal, err := r.whitelist.PrepareRemove(p)
	if err == nil {
		err = r.journalWrite("remove_whitelist", func() error {
			return r.journal.RemoveWhitelist(ctx, removal)
		})
		if err == nil {
			r.whitelist.CommitRemoval(removal)
			r.setWhitelistGauge()
		}
	}
	r.mu.Unlock()
	if err != nil {
		return r.fail(span, err)
	}

	r.logAudit(ctx, string(models.EventWhitelistRemoved), "principal", removal.Principal)
	r.publish(ctx, models.Event{Kind: models.EventWhitelistRemoved, Principal: removal.Principal})
	return nil
}

func (r *Registry) IsWhitelisted(p id.Principal) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.IsPresent(p)
}

// WhitelistMetadata returns p's metadata reference, or "" when p is absent.
func (r *Registry) WhitelistMetadata(p id.Principal) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.MetadataOf(p)
}

func (r *Registry) WhitelistCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.Count()
}

// Whitelist returns every member in enumeration order.
func (r *Registry) Whitelist() []id.Principal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.All()
}

func (r *Registry) WhitelistPaginated(offset, limit int) ([]id.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.Paginated(offset, limit)
}

// WhitelistLookup answers presence and metadata for each principal under one
// read lock, in input order.
func (r *Registry) WhitelistLookup(principals []id.Principal) ([]bool, []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.IsPresentBatch(principals), r.whitelist.MetadataOfBatch(principals)
}

func (r *Registry) IsWhitelistedBatch(principals []id.Principal) []bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.IsPresentBatch(principals)
}

func (r *Registry) WhitelistMetadataBatch(principals []id.Principal) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist.MetadataOfBatch(principals)
}
