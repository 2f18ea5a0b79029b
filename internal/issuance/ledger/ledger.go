// Package ledger records which principals have issued against which assets.
//
// Each (asset, principal) pair moves Unissued -> Issued exactly once and never
// back. Per-asset and total counters are derived from the fact set and kept
// in step with it on every Record.
package ledger

import (
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

type factKey struct {
	asset     id.AssetID
	principal id.Principal
}

// Ledger is the issuance fact set. It is not safe for concurrent use.
type Ledger struct {
	facts    map[factKey]struct{}
	perAsset map[id.AssetID]uint64
	total    uint64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		facts:    make(map[factKey]struct{}),
		perAsset: make(map[id.AssetID]uint64),
	}
}

// HasIssued reports whether p has issued against asset.
func (l *Ledger) HasIssued(asset id.AssetID, p id.Principal) bool {
	_, ok := l.facts[factKey{asset: asset, principal: p.Normalize()}]
	return ok
}

// Record marks the pair as issued, or returns AlreadyIssued.
func (l *Ledger) Record(asset id.AssetID, p id.Principal) error {
	key := factKey{asset: asset, principal: p.Normalize()}
	if _, ok := l.facts[key]; ok {
		return dErrors.New(dErrors.CodeAlreadyIssued, "principal has already issued against this asset")
	}
	l.facts[key] = struct{}{}
	l.perAsset[asset]++
	l.total++
	return nil
}

// HasIssuedBatch answers HasIssued for p against each asset, in input order.
func (l *Ledger) HasIssuedBatch(p id.Principal, assets []id.AssetID) []bool {
	out := make([]bool, len(assets))
	for i, a := range assets {
		out[i] = l.HasIssued(a, p)
	}
	return out
}

// MintsForAsset returns how many principals have issued against asset.
func (l *Ledger) MintsForAsset(asset id.AssetID) uint64 {
	return l.perAsset[asset]
}

// TotalMints returns the number of issuance facts across all assets.
func (l *Ledger) TotalMints() uint64 {
	return l.total
}
