package asset

import (
	"time"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// Registry is the creation-ordered collection of assets. An asset's id is its
// position, so ids are dense and never reused.
type Registry struct {
	capacity uint64
	counters []*Counter
}

// NewRegistry creates an empty registry. capacity bounds every asset it
// creates; zero means unbounded.
func NewRegistry(capacity uint64) *Registry {
	return &Registry{capacity: capacity}
}

// NextID returns the id the next Create will assign.
func (r *Registry) NextID() id.AssetID {
	return id.AssetID(len(r.counters))
}

// Create appends a new asset with an empty counter.
func (r *Registry) Create(at time.Time) models.AssetHandle {
	c := NewCounter(r.NextID(), r.capacity, at)
	r.counters = append(r.counters, c)
	return c.Handle()
}

// Get returns the counter for assetID.
func (r *Registry) Get(assetID id.AssetID) (*Counter, error) {
	if assetID < 0 || int(assetID) >= len(r.counters) {
		return nil, dErrors.New(dErrors.CodeNotFound, "asset not found")
	}
	return r.counters[assetID], nil
}

// Len returns the number of assets.
func (r *Registry) Len() int {
	return len(r.counters)
}

// IDs returns every asset id in creation order.
func (r *Registry) IDs() []id.AssetID {
	ids := make([]id.AssetID, len(r.counters))
	for i := range r.counters {
		ids[i] = id.AssetID(i)
	}
	return ids
}

// List returns every asset handle in creation order.
func (r *Registry) List() []models.AssetHandle {
	return r.handles(0, len(r.counters))
}

// ListPaginated returns assets[offset : min(offset+limit, len)].
func (r *Registry) ListPaginated(offset, limit int) ([]models.AssetHandle, error) {
	start, end, err := models.PageBounds(offset, limit, len(r.counters))
	if err != nil {
		return nil, err
	}
	return r.handles(start, end), nil
}

func (r *Registry) handles(start, end int) []models.AssetHandle {
	out := make([]models.AssetHandle, 0, end-start)
	for _, c := range r.counters[start:end] {
		out = append(out, c.Handle())
	}
	return out
}

// Restore replays a persisted asset. Assets must arrive in id order.
func (r *Registry) Restore(h models.AssetHandle) error {
	if h.ID != r.NextID() {
		return dErrors.New(dErrors.CodeInvariantViolation, "asset ids are not contiguous")
	}
	r.counters = append(r.counters, NewCounter(h.ID, r.capacity, h.CreatedAt))
	return nil
}
