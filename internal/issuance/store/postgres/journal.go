// Package postgres persists the issuance registry journal in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/platform/sentinel"
	"mintgate/pkg/platform/tx"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Journal stores whitelist membership, assets, and issued records.
// Whitelist rows carry their enumeration slot so swap-with-last removals
// survive a restart.
type Journal struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed journal.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// EnsureSchema creates the journal tables if they do not exist.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure issuance schema: %w", err)
	}
	return nil
}

// Load reads the full journal in one repeatable-read snapshot.
func (j *Journal) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	err := tx.Run(ctx, j.db, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, func(ctx context.Context, t *sql.Tx) error {
		var err error
		if snap.Whitelist, err = loadWhitelist(ctx, t); err != nil {
			return err
		}
		if snap.Assets, err = loadAssets(ctx, t); err != nil {
			return err
		}
		snap.Records, err = loadRecords(ctx, t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func loadWhitelist(ctx context.Context, t *sql.Tx) ([]models.WhitelistEntry, error) {
	rows, err := t.QueryContext(ctx, `SELECT principal, metadata_ref FROM whitelist ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load whitelist: %w", err)
	}
	defer rows.Close()

	var entries []models.WhitelistEntry
	for rows.Next() {
		var e models.WhitelistEntry
		var principal string
		if err := rows.Scan(&principal, &e.MetadataRef); err != nil {
			return nil, fmt.Errorf("scan whitelist: %w", err)
		}
		e.Principal = id.Principal(principal)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate whitelist: %w", err)
	}
	return entries, nil
}

func loadAssets(ctx context.Context, t *sql.Tx) ([]models.AssetHandle, error) {
	rows, err := t.QueryContext(ctx, `SELECT id, created_at FROM assets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	defer rows.Close()

	var handles []models.AssetHandle
	for rows.Next() {
		var h models.AssetHandle
		var assetID int
		if err := rows.Scan(&assetID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		h.ID = id.AssetID(assetID)
		handles = append(handles, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return handles, nil
}

func loadRecords(ctx context.Context, t *sql.Tx) ([]models.Record, error) {
	rows, err := t.QueryContext(ctx, `
		SELECT asset_id, sequence_number, owner, metadata_ref, issued_at
		FROM issuance_records
		ORDER BY asset_id, sequence_number
	`)
	if err != nil {
		return nil, fmt.Errorf("load issuance records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		var assetID int
		var seq int64
		var owner string
		if err := rows.Scan(&assetID, &seq, &owner, &rec.MetadataRef, &rec.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan issuance record: %w", err)
		}
		rec.AssetID = id.AssetID(assetID)
		rec.SequenceNumber = id.SequenceNumber(seq)
		rec.Owner = id.Principal(owner)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issuance records: %w", err)
	}
	return records, nil
}

// SaveAsset inserts a newly created asset.
func (j *Journal) SaveAsset(ctx context.Context, handle models.AssetHandle) error {
	_, err := j.db.ExecContext(ctx, `INSERT INTO assets (id, created_at) VALUES ($1, $2)`, int(handle.ID), handle.CreatedAt)
	if err != nil {
		return translate("save asset", err)
	}
	return nil
}

// SaveWhitelist appends entries at consecutive slots starting at firstSlot.
func (j *Journal) SaveWhitelist(ctx context.Context, entries []models.WhitelistEntry, firstSlot int) error {
	if len(entries) == 0 {
		return nil
	}
	principals := make([]string, len(entries))
	refs := make([]string, len(entries))
	positions := make([]int64, len(entries))
	for i, e := range entries {
		principals[i] = e.Principal.String()
		refs[i] = e.MetadataRef
		positions[i] = int64(firstSlot + i)
	}

	// Batch insert using unnest for one round trip per batch.
	query := `
		INSERT INTO whitelist (principal, metadata_ref, position)
		SELECT * FROM unnest($1::text[], $2::text[], $3::int[])
	`
	_, err := j.db.ExecContext(ctx, query, pq.Array(principals), pq.Array(refs), pq.Array(positions))
	if err != nil {
		return translate("save whitelist", err)
	}
	return nil
}

// RemoveWhitelist deletes the removed member and moves the former last member
// into its slot, in one transaction.
func (j *Journal) RemoveWhitelist(ctx context.Context, removal models.WhitelistRemoval) error {
	return tx.Run(ctx, j.db, nil, func(ctx context.Context, t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `DELETE FROM whitelist WHERE principal = $1 AND position = $2`,
			removal.Principal.String(), removal.Slot)
		if err != nil {
			return translate("remove whitelist entry", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("remove whitelist entry: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("remove whitelist entry %s: %w", removal.Principal, sentinel.ErrNotFound)
		}
		if !removal.HasMove() {
			return nil
		}
		res, err = t.ExecContext(ctx, `UPDATE whitelist SET position = $1 WHERE principal = $2`,
			removal.Slot, removal.Moved.String())
		if err != nil {
			return translate("move whitelist entry", err)
		}
		if n, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("move whitelist entry: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("move whitelist entry %s: %w", removal.Moved, sentinel.ErrNotFound)
		}
		return nil
	})
}

// SaveIssuance stores an issued record. The (asset, owner) uniqueness
// constraint is the durable issuance fact.
func (j *Journal) SaveIssuance(ctx context.Context, rec models.Record) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO issuance_records (asset_id, sequence_number, owner, metadata_ref, issued_at)
		VALUES ($1, $2, $3, $4, $5)
	`, int(rec.AssetID), int64(rec.SequenceNumber), rec.Owner.String(), rec.MetadataRef, rec.IssuedAt)
	if err != nil {
		return translate("save issuance", err)
	}
	return nil
}

// translate maps unique violations to sentinel.ErrConflict.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
