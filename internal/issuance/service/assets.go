package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// AssetView is an asset handle together with its ledger count.
type AssetView struct {
	models.AssetHandle
	Mints uint64
}

// CreateAsset appends a new asset with an empty counter.
func (r *Registry) CreateAsset(ctx context.Context, owner OwnerToken) (models.AssetHandle, error) {
	ctx, span := r.tracer.Start(ctx, "issuance.CreateAsset")
	defer span.End()

	if err := r.authorize(owner); err != nil {
		return models.AssetHandle{}, r.fail(span, err)
	}

	r.mu.Lock()
	handle, err := r.createAssetLocked(ctx)
	r.mu.Unlock()
	if err != nil {
		return models.AssetHandle{}, r.fail(span, err)
	}

	span.SetAttributes(attribute.Int("asset.id", int(handle.ID)))
	r.assetCreated(ctx, handle)
	return handle, nil
}

// EnsureAssets creates assets until at least n exist and returns how many it
// created. The count check and the creations run under one lock, so
// concurrent callers never overshoot n.
func (r *Registry) EnsureAssets(ctx context.Context, owner OwnerToken, n int) (int, error) {
	ctx, span := r.tracer.Start(ctx, "issuance.EnsureAssets")
	defer span.End()

	if err := r.authorize(owner); err != nil {
		return 0, r.fail(span, err)
	}

	var created []models.AssetHandle
	var err error
	r.mu.Lock()
	for r.assets.Len() < n {
		var handle models.AssetHandle
		if handle, err = r.createAssetLocked(ctx); err != nil {
			break
		}
		created = append(created, handle)
	}
	r.mu.Unlock()

	for _, handle := range created {
		r.assetCreated(ctx, handle)
	}
	span.SetAttributes(attribute.Int("assets.created", len(created)))
	if err != nil {
		return len(created), r.fail(span, err)
	}
	return len(created), nil
}

// createAssetLocked journals and appends one asset. Callers hold r.mu.
func (r *Registry) createAssetLocked(ctx context.Context) (models.AssetHandle, error) {
	handle := models.AssetHandle{ID: r.assets.NextID(), CreatedAt: requestcontext.Now(ctx)}
	if err := r.journalWrite("save_asset", func() error {
		return r.journal.SaveAsset(ctx, handle)
	}); err != nil {
		return models.AssetHandle{}, err
	}
	return r.assets.Create(handle.CreatedAt), nil
}

func (r *Registry) assetCreated(ctx context.Context, handle models.AssetHandle) {
	if r.metrics != nil {
		r.metrics.IncrementAssetsCreated()
	}
	r.logAudit(ctx, string(models.EventAssetCreated), "asset_id", handle.ID)
	r.publish(ctx, models.Event{
		Kind:       models.EventAssetCreated,
		OccurredAt: handle.CreatedAt,
		AssetID:    assetRef(handle.ID),
	})
}

// AssetCount returns the number of assets.
func (r *Registry) AssetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets.Len()
}

// ListAssets returns every asset handle in creation order.
func (r *Registry) ListAssets() []models.AssetHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets.List()
}

// ListAssetsPaginated returns assets[offset : min(offset+limit, len)].
func (r *Registry) ListAssetsPaginated(offset, limit int) ([]models.AssetHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets.ListPaginated(offset, limit)
}

// GetAsset returns one asset with its ledger count.
func (r *Registry) GetAsset(assetID id.AssetID) (AssetView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counter, err := r.assets.Get(assetID)
	if err != nil {
		return AssetView{}, err
	}
	return AssetView{AssetHandle: counter.Handle(), Mints: r.ledger.MintsForAsset(assetID)}, nil
}

// RecordOf returns the record issued under seq on assetID.
func (r *Registry) RecordOf(assetID id.AssetID, seq id.SequenceNumber) (models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counter, err := r.assets.Get(assetID)
	if err != nil {
		return models.Record{}, err
	}
	return counter.Record(seq)
}

// MetadataOf returns the metadata reference bound to seq on assetID.
func (r *Registry) MetadataOf(assetID id.AssetID, seq id.SequenceNumber) (string, error) {
	rec, err := r.RecordOf(assetID, seq)
	if err != nil {
		return "", err
	}
	return rec.MetadataRef, nil
}

// TotalIssued returns how many records assetID has issued.
func (r *Registry) TotalIssued(assetID id.AssetID) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counter, err := r.assets.Get(assetID)
	if err != nil {
		return 0, err
	}
	return counter.TotalIssued(), nil
}
