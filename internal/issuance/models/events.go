package models

import (
	"time"

	id "mintgate/pkg/domain"
)

// EventKind names a registry notification.
type EventKind string

const (
	EventAssetCreated      EventKind = "asset_created"
	EventIssuanceCompleted EventKind = "issuance_completed"
	EventWhitelistAdded    EventKind = "whitelist_added"
	EventWhitelistRemoved  EventKind = "whitelist_removed"
)

// Event is published after a mutation commits. Fields not relevant to the
// kind are left zero.
type Event struct {
	ID             string            `json:"id"`
	Kind           EventKind         `json:"kind"`
	OccurredAt     time.Time         `json:"occurred_at"`
	AssetID        *id.AssetID       `json:"asset_id,omitempty"`
	Principal      id.Principal      `json:"principal,omitempty"`
	SequenceNumber id.SequenceNumber `json:"sequence_number,omitempty"`
	MetadataRef    string            `json:"metadata_ref,omitempty"`
	RequestID      string            `json:"request_id,omitempty"`
}

// PartitionKey groups events of one asset together; whitelist events share a key.
func (e Event) PartitionKey() string {
	if e.AssetID != nil {
		return "asset:" + e.AssetID.String()
	}
	return "whitelist"
}
