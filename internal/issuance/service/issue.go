package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/requestcontext"
)

// Stats aggregates registry-wide counts.
type Stats struct {
	Assets      int
	Whitelisted int
	TotalMints  uint64
}

// Issue issues one record of assetID to p. Each (asset, principal) pair can
// issue at most once; the record carries p's whitelisted metadata reference.
//
// Checks run in order: whitelist membership, assigned metadata, asset
// existence, prior issuance, then asset capacity. Nothing is mutated unless
// every check passes and the journal accepts the record.
func (r *Registry) Issue(ctx context.Context, assetID id.AssetID, p id.Principal) (id.SequenceNumber, error) {
	ctx, span := r.tracer.Start(ctx, "issuance.Issue")
	defer span.End()
	span.SetAttributes(attribute.Int("asset.id", int(assetID)))
	p = p.Normalize()

	start := time.Now()
	r.mu.Lock()
	rec, err := r.issueLocked(ctx, assetID, p)
	r.mu.Unlock()
	if r.metrics != nil {
		r.metrics.ObserveIssue(start)
	}
	if err != nil {
		if r.metrics != nil {
			r.metrics.IncrementRejected(string(dErrors.CodeOf(err)))
		}
		return 0, r.fail(span, err)
	}

	span.SetAttributes(attribute.Int64("issuance.sequence_number", int64(rec.SequenceNumber)))
	if r.metrics != nil {
		r.metrics.IncrementIssued()
	}
	r.logAudit(ctx, string(models.EventIssuanceCompleted),
		"asset_id", assetID,
		"principal", p,
		"sequence_number", rec.SequenceNumber,
	)
	r.publish(ctx, models.Event{
		Kind:           models.EventIssuanceCompleted,
		OccurredAt:     rec.IssuedAt,
		AssetID:        assetRef(assetID),
		Principal:      p,
		SequenceNumber: rec.SequenceNumber,
		MetadataRef:    rec.MetadataRef,
	})
	return rec.SequenceNumber, nil
}

// issueLocked must be called with r.mu held exclusively.
func (r *Registry) issueLocked(ctx context.Context, assetID id.AssetID, p id.Principal) (models.Record, error) {
	if !r.whitelist.IsPresent(p) {
		return models.Record{}, dErrors.New(dErrors.CodeNotWhitelisted, "principal is not whitelisted")
	}
	ref := r.whitelist.MetadataOf(p)
	if ref == "" {
		return models.Record{}, dErrors.New(dErrors.CodeNoMetadataAssigned, "principal has no metadata reference assigned")
	}
	counter, err := r.assets.Get(assetID)
	if err != nil {
		return models.Record{}, err
	}
	if r.ledger.HasIssued(assetID, p) {
		return models.Record{}, dErrors.New(dErrors.CodeAlreadyIssued, "principal has already issued against this asset")
	}
	seq, err := counter.Next()
	if err != nil {
		return models.Record{}, err
	}

	rec := models.Record{
		AssetID:        assetID,
		SequenceNumber: seq,
		Owner:          p,
		MetadataRef:    ref,
		IssuedAt:       requestcontext.Now(ctx),
	}
	if err := r.journalWrite("save_issuance", func() error {
		return r.journal.SaveIssuance(ctx, rec)
	}); err != nil {
		return models.Record{}, err
	}

	// Both calls were checked above and cannot fail under the lock.
	if err := r.ledger.Record(assetID, p); err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "ledger diverged from journal")
	}
	if _, err := counter.Issue(p, ref, rec.IssuedAt); err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "counter diverged from journal")
	}
	return rec, nil
}

// HasIssued reports whether p has issued against assetID. Unknown assets
// report false.
func (r *Registry) HasIssued(assetID id.AssetID, p id.Principal) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.HasIssued(assetID, p)
}

// HasIssuedBatch answers HasIssued for p against each asset, in input order.
func (r *Registry) HasIssuedBatch(p id.Principal, assetIDs []id.AssetID) []bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.HasIssuedBatch(p, assetIDs)
}

func (r *Registry) MintsForAsset(assetID id.AssetID) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.MintsForAsset(assetID)
}

func (r *Registry) TotalMints() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.TotalMints()
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Assets:      r.assets.Len(),
		Whitelisted: r.whitelist.Count(),
		TotalMints:  r.ledger.TotalMints(),
	}
}

// AvailableAssetsFor returns, in creation order, every asset p has not yet
// issued against. The scan is O(assets).
func (r *Registry) AvailableAssetsFor(p id.Principal) ([]id.AssetID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.whitelist.IsPresent(p) {
		return nil, dErrors.New(dErrors.CodeNotWhitelisted, "principal is not whitelisted")
	}
	available := make([]id.AssetID, 0, r.assets.Len())
	for _, a := range r.assets.IDs() {
		if !r.ledger.HasIssued(a, p) {
			available = append(available, a)
		}
	}
	return available, nil
}

// ProfileOf summarises p. It never fails; an unknown principal yields an
// empty, non-whitelisted profile.
func (r *Registry) ProfileOf(p id.Principal) models.Profile {
	p = p.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()
	issued := make([]id.AssetID, 0)
	for _, a := range r.assets.IDs() {
		if r.ledger.HasIssued(a, p) {
			issued = append(issued, a)
		}
	}
	return models.Profile{
		Principal:      p,
		Whitelisted:    r.whitelist.IsPresent(p),
		MetadataRef:    r.whitelist.MetadataOf(p),
		IssuedAssetIDs: issued,
	}
}
