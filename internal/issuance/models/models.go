package models

import (
	"time"

	id "mintgate/pkg/domain"
)

// WhitelistEntry binds a whitelisted principal to its assigned metadata reference.
//
// Invariants:
//   - Principal is never the zero identity
//   - MetadataRef is non-empty for entries added through the whitelist API
//   - A present principal appears exactly once in the enumeration order
type WhitelistEntry struct {
	Principal   id.Principal `json:"principal"`
	MetadataRef string       `json:"metadata_ref"`
}

// WhitelistRemoval describes a swap-with-last removal: the removed principal
// vacated Slot and, unless it was last, Moved now occupies that slot.
type WhitelistRemoval struct {
	Principal id.Principal
	Slot      int
	Moved     id.Principal
}

// HasMove reports whether another member was moved into the vacated slot.
func (r WhitelistRemoval) HasMove() bool {
	return !r.Moved.IsZero()
}

// AssetHandle identifies an asset by its creation-order position.
type AssetHandle struct {
	ID          id.AssetID `json:"id"`
	IssuedCount uint64     `json:"issued_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Record is one issued unit of an asset.
type Record struct {
	AssetID        id.AssetID        `json:"asset_id"`
	SequenceNumber id.SequenceNumber `json:"sequence_number"`
	Owner          id.Principal      `json:"owner"`
	MetadataRef    string            `json:"metadata_ref"`
	IssuedAt       time.Time         `json:"issued_at"`
}

// Profile summarises a principal's whitelist status and issuance history.
// IssuedAssetIDs is in asset creation order.
type Profile struct {
	Principal      id.Principal `json:"principal"`
	Whitelisted    bool         `json:"whitelisted"`
	MetadataRef    string       `json:"metadata_ref"`
	IssuedAssetIDs []id.AssetID `json:"issued_asset_ids"`
}

// Snapshot is the durable state a journal hands back on startup.
// Issuance facts and counters are recomputed from Records.
type Snapshot struct {
	Whitelist []WhitelistEntry
	Assets    []AssetHandle
	Records   []Record
}

// IsEmpty reports whether nothing has been persisted yet.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Whitelist) == 0 && len(s.Assets) == 0 && len(s.Records) == 0)
}
