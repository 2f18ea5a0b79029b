package service

import (
	"context"

	"mintgate/internal/issuance/models"
)

// Journal persists registry mutations. The Registry calls it while holding the
// exclusive lock and before changing memory, so a failed write leaves both the
// journal and the in-memory state untouched.
type Journal interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	SaveAsset(ctx context.Context, handle models.AssetHandle) error
	// SaveWhitelist appends entries at firstSlot, firstSlot+1, ...
	SaveWhitelist(ctx context.Context, entries []models.WhitelistEntry, firstSlot int) error
	RemoveWhitelist(ctx context.Context, removal models.WhitelistRemoval) error
	// SaveIssuance stores the record and its issuance fact atomically.
	SaveIssuance(ctx context.Context, record models.Record) error
}

// nopJournal keeps state in memory only.
type nopJournal struct{}

func (nopJournal) Load(context.Context) (*models.Snapshot, error) { return &models.Snapshot{}, nil }
func (nopJournal) SaveAsset(context.Context, models.AssetHandle) error { return nil }
func (nopJournal) SaveWhitelist(context.Context, []models.WhitelistEntry, int) error {
	return nil
}
func (nopJournal) RemoveWhitelist(context.Context, models.WhitelistRemoval) error { return nil }
func (nopJournal) SaveIssuance(context.Context, models.Record) error            { return nil }
