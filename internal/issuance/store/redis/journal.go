// Package redis persists the issuance registry journal in Redis.
//
// Layout under the configured prefix:
//
//	wl:order            list of principals in enumeration order
//	wl:refs             hash principal -> metadata reference
//	assets              hash asset id -> creation time (RFC 3339)
//	asset:{id}:records  hash sequence number -> JSON record
//	asset:{id}:owners   set of principals that issued against the asset
//
// Every mutation runs as one MULTI/EXEC guarded by WATCH on the keys it
// checks.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/platform/sentinel"
)

// DefaultPrefix namespaces journal keys.
const DefaultPrefix = "mintgate:"

// Journal stores registry mutations in Redis.
type Journal struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Journal.
type Option func(*Journal)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// New constructs a Redis-backed journal.
func New(client redis.UniversalClient, opts ...Option) *Journal {
	j := &Journal{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) orderKey() string  { return j.prefix + "wl:order" }
func (j *Journal) refsKey() string   { return j.prefix + "wl:refs" }
func (j *Journal) assetsKey() string { return j.prefix + "assets" }

func (j *Journal) recordsKey(a id.AssetID) string {
	return j.prefix + "asset:" + a.String() + ":records"
}

func (j *Journal) ownersKey(a id.AssetID) string {
	return j.prefix + "asset:" + a.String() + ":owners"
}

// Load reads the whole journal. Callers load once at startup, before any
// writer runs.
func (j *Journal) Load(ctx context.Context) (*models.Snapshot, error) {
	order, err := j.client.LRange(ctx, j.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load whitelist order: %w", err)
	}
	refs, err := j.client.HGetAll(ctx, j.refsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load whitelist refs: %w", err)
	}
	snap := &models.Snapshot{}
	for _, p := range order {
		snap.Whitelist = append(snap.Whitelist, models.WhitelistEntry{Principal: id.Principal(p), MetadataRef: refs[p]})
	}

	rawAssets, err := j.client.HGetAll(ctx, j.assetsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	for field, created := range rawAssets {
		assetID, err := id.ParseAssetID(field)
		if err != nil {
			return nil, fmt.Errorf("load assets: bad asset id %q: %w", field, err)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("load assets: bad creation time for %s: %w", field, err)
		}
		snap.Assets = append(snap.Assets, models.AssetHandle{ID: assetID, CreatedAt: createdAt})
	}
	sort.Slice(snap.Assets, func(a, b int) bool { return snap.Assets[a].ID < snap.Assets[b].ID })

	for _, h := range snap.Assets {
		rawRecords, err := j.client.HVals(ctx, j.recordsKey(h.ID)).Result()
		if err != nil {
			return nil, fmt.Errorf("load records of asset %s: %w", h.ID, err)
		}
		records := make([]models.Record, 0, len(rawRecords))
		for _, raw := range rawRecords {
			var rec models.Record
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				return nil, fmt.Errorf("decode record of asset %s: %w", h.ID, err)
			}
			records = append(records, rec)
		}
		sort.Slice(records, func(a, b int) bool { return records[a].SequenceNumber < records[b].SequenceNumber })
		snap.Records = append(snap.Records, records...)
	}
	return snap, nil
}

// SaveAsset records a newly created asset. An existing id is a conflict.
func (j *Journal) SaveAsset(ctx context.Context, handle models.AssetHandle) error {
	field := handle.ID.String()
	return j.watch(ctx, "save asset", func(t *redis.Tx) error {
		exists, err := t.HExists(ctx, j.assetsKey(), field).Result()
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("asset %s: %w", field, sentinel.ErrConflict)
		}
		_, err = t.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, j.assetsKey(), field, handle.CreatedAt.UTC().Format(time.RFC3339Nano))
			return nil
		})
		return err
	}, j.assetsKey())
}

// SaveWhitelist appends entries. The stored order must currently hold
// exactly firstSlot members.
func (j *Journal) SaveWhitelist(ctx context.Context, entries []models.WhitelistEntry, firstSlot int) error {
	if len(entries) == 0 {
		return nil
	}
	return j.watch(ctx, "save whitelist", func(t *redis.Tx) error {
		n, err := t.LLen(ctx, j.orderKey()).Result()
		if err != nil {
			return err
		}
		if int(n) != firstSlot {
			return fmt.Errorf("whitelist holds %d members, expected %d: %w", n, firstSlot, sentinel.ErrConflict)
		}
		principals := make([]any, len(entries))
		refs := make([]any, 0, 2*len(entries))
		for i, e := range entries {
			principals[i] = e.Principal.String()
			refs = append(refs, e.Principal.String(), e.MetadataRef)
		}
		_, err = t.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, j.orderKey(), principals...)
			pipe.HSet(ctx, j.refsKey(), refs...)
			return nil
		})
		return err
	}, j.orderKey())
}

// RemoveWhitelist mirrors swap-with-last: the moved member overwrites the
// vacated slot and the tail is popped.
func (j *Journal) RemoveWhitelist(ctx context.Context, removal models.WhitelistRemoval) error {
	return j.watch(ctx, "remove whitelist entry", func(t *redis.Tx) error {
		at, err := t.LIndex(ctx, j.orderKey(), int64(removal.Slot)).Result()
		if errors.Is(err, redis.Nil) || (err == nil && at != removal.Principal.String()) {
			return fmt.Errorf("whitelist slot %d: %w", removal.Slot, sentinel.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if removal.HasMove() {
			last, err := t.LIndex(ctx, j.orderKey(), -1).Result()
			if err != nil {
				return err
			}
			if last != removal.Moved.String() {
				return fmt.Errorf("whitelist tail is %q, expected %q: %w", last, removal.Moved, sentinel.ErrConflict)
			}
		}
		_, err = t.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if removal.HasMove() {
				pipe.LSet(ctx, j.orderKey(), int64(removal.Slot), removal.Moved.String())
			}
			pipe.RPop(ctx, j.orderKey())
			pipe.HDel(ctx, j.refsKey(), removal.Principal.String())
			return nil
		})
		return err
	}, j.orderKey())
}

// SaveIssuance stores the record and the owner's issuance fact together.
func (j *Journal) SaveIssuance(ctx context.Context, rec models.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("save issuance: encode record: %w", err)
	}
	recordsKey, ownersKey := j.recordsKey(rec.AssetID), j.ownersKey(rec.AssetID)
	seq := rec.SequenceNumber.String()

	return j.watch(ctx, "save issuance", func(t *redis.Tx) error {
		issued, err := t.SIsMember(ctx, ownersKey, rec.Owner.String()).Result()
		if err != nil {
			return err
		}
		taken, err := t.HExists(ctx, recordsKey, seq).Result()
		if err != nil {
			return err
		}
		if issued || taken {
			return fmt.Errorf("asset %s sequence %s: %w", rec.AssetID, seq, sentinel.ErrConflict)
		}
		_, err = t.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, recordsKey, seq, payload)
			pipe.SAdd(ctx, ownersKey, rec.Owner.String())
			return nil
		})
		return err
	}, recordsKey, ownersKey)
}

// watch runs fn under WATCH. A concurrent writer touching the watched keys
// aborts the transaction with ErrConflict.
func (j *Journal) watch(ctx context.Context, op string, fn func(*redis.Tx) error, keys ...string) error {
	err := j.client.Watch(ctx, fn, keys...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
