// Package asset allocates per-asset sequence numbers and keeps the ordered
// set of assets a registry issues against.
//
// Nothing here is safe for concurrent use on its own; the issuance service
// serialises access behind its registry lock.
package asset

import (
	"time"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// Counter is one asset's monotonic issuance counter. records[i] holds
// sequence number i+1.
type Counter struct {
	id        id.AssetID
	capacity  uint64
	createdAt time.Time
	records   []models.Record
}

// NewCounter creates an empty counter. A zero capacity means unbounded.
func NewCounter(assetID id.AssetID, capacity uint64, createdAt time.Time) *Counter {
	return &Counter{id: assetID, capacity: capacity, createdAt: createdAt}
}

// ID returns the asset this counter belongs to.
func (c *Counter) ID() id.AssetID {
	return c.id
}

// Next returns the sequence number the next Issue will assign, or
// CapacityExceeded if the asset is full. It does not mutate the counter.
func (c *Counter) Next() (id.SequenceNumber, error) {
	issued := uint64(len(c.records))
	if c.capacity > 0 && issued >= c.capacity {
		return 0, dErrors.New(dErrors.CodeCapacityExceeded, "asset has reached its issuance capacity")
	}
	return id.SequenceNumber(issued + 1), nil
}

// Issue binds the next sequence number to owner and metadataRef.
// Authorization happens upstream; the counter only allocates.
func (c *Counter) Issue(owner id.Principal, metadataRef string, at time.Time) (id.SequenceNumber, error) {
	seq, err := c.Next()
	if err != nil {
		return 0, err
	}
	c.records = append(c.records, models.Record{
		AssetID:        c.id,
		SequenceNumber: seq,
		Owner:          owner,
		MetadataRef:    metadataRef,
		IssuedAt:       at,
	})
	return seq, nil
}

// Restore replays a persisted record. Records must arrive in sequence order.
func (c *Counter) Restore(rec models.Record) error {
	if rec.AssetID != c.id {
		return dErrors.New(dErrors.CodeInvariantViolation, "record belongs to another asset")
	}
	if rec.SequenceNumber != id.SequenceNumber(len(c.records)+1) {
		return dErrors.New(dErrors.CodeInvariantViolation, "record sequence is not contiguous")
	}
	c.records = append(c.records, rec)
	return nil
}

// Record returns the record issued under seq.
func (c *Counter) Record(seq id.SequenceNumber) (models.Record, error) {
	if seq == 0 || uint64(seq) > uint64(len(c.records)) {
		return models.Record{}, dErrors.New(dErrors.CodeNotFound, "sequence number was never issued")
	}
	return c.records[seq-1], nil
}

// MetadataOf returns the metadata reference bound to seq.
func (c *Counter) MetadataOf(seq id.SequenceNumber) (string, error) {
	rec, err := c.Record(seq)
	if err != nil {
		return "", err
	}
	return rec.MetadataRef, nil
}

// TotalIssued returns how many records this asset has issued.
func (c *Counter) TotalIssued() uint64 {
	return uint64(len(c.records))
}

// Handle returns the public view of this asset.
func (c *Counter) Handle() models.AssetHandle {
	return models.AssetHandle{ID: c.id, IssuedCount: c.TotalIssued(), CreatedAt: c.createdAt}
}
