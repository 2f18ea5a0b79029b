package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mintgate/internal/issuance/asset"
	"mintgate/internal/issuance/ledger"
	issuancemetrics "mintgate/internal/issuance/metrics"
	"mintgate/internal/issuance/models"
	"mintgate/internal/issuance/whitelist"
	dErrors "mintgate/pkg/domain-errors"
)

const tracerName = "mintgate/internal/issuance"

// EventPublisher receives notifications after a mutation commits.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// OwnerToken is the registry owner's capability. Only the token returned
// alongside a Registry authorises its mutating operations; the zero value
// authorises nothing.
type OwnerToken struct {
	key *ownerKey
}

// ownerKey must not be zero-size: pointers to distinct zero-size
// allocations may compare equal.
type ownerKey struct{ _ byte }

// Registry composes the asset registry, the whitelist, and the issuance
// ledger behind one lock.
//
// Invariants:
//   - Mutations (Issue, whitelist changes, CreateAsset) hold the exclusive lock
//     for their whole validate-journal-apply sequence
//   - Reads hold the shared lock and never observe a half-applied mutation
//   - MintsForAsset(a) equals the number of issuance facts for a, and
//     TotalMints equals their sum
//   - Notifications are published after the lock is released
type Registry struct {
	mu        sync.RWMutex
	assets    *asset.Registry
	whitelist *whitelist.Store
	ledger    *ledger.Ledger
	owner     *ownerKey

	journal   Journal
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *issuancemetrics.Metrics
	tracer    trace.Tracer
	capacity  uint64
}

// Option configures a Registry.
type Option func(r *Registry)

// WithJournal persists mutations through j.
func WithJournal(j Journal) Option {
	return func(r *Registry) {
		r.journal = j
	}
}

// WithPublisher delivers notifications to p.
func WithPublisher(p EventPublisher) Option {
	return func(r *Registry) {
		r.publisher = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithMetrics(m *issuancemetrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithAssetCapacity bounds how many records each asset may issue.
// Zero means unbounded.
func WithAssetCapacity(n uint64) Option {
	return func(r *Registry) {
		r.capacity = n
	}
}

// New constructs an empty Registry and the owner token that authorises its
// mutations.
func New(opts ...Option) (*Registry, OwnerToken) {
	key := &ownerKey{}
	r := &Registry{
		whitelist: whitelist.New(),
		ledger:    ledger.New(),
		owner:     key,
		journal:   nopJournal{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.journal == nil {
		r.journal = nopJournal{}
	}
	r.assets = asset.NewRegistry(r.capacity)
	return r, OwnerToken{key: key}
}

// Load hydrates an empty registry from the journal. Issuance facts and
// counters are rebuilt from the persisted records.
func (r *Registry) Load(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "issuance.Load")
	defer span.End()

	snap, err := r.journal.Load(ctx)
	if err != nil {
		return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load journal"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.assets.Len() > 0 || r.whitelist.Count() > 0 {
		return r.fail(span, dErrors.New(dErrors.CodeInternal, "registry already holds state"))
	}
	if snap.IsEmpty() {
		return nil
	}

	assets := asset.NewRegistry(r.capacity)
	wl := whitelist.New()
	lg := ledger.New()
	for _, h := range snap.Assets {
		if err := assets.Restore(h); err != nil {
			return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "journal snapshot is inconsistent"))
		}
	}
	if err := wl.Restore(snap.Whitelist); err != nil {
		return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "journal snapshot is inconsistent"))
	}
	for _, rec := range snap.Records {
		counter, err := assets.Get(rec.AssetID)
		if err != nil {
			return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "record references an unknown asset"))
		}
		if err := lg.Record(rec.AssetID, rec.Owner); err != nil {
			return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "journal snapshot is inconsistent"))
		}
		if err := counter.Restore(rec); err != nil {
			return r.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "journal snapshot is inconsistent"))
		}
	}

	r.assets, r.whitelist, r.ledger = assets, wl, lg
	r.setWhitelistGauge()
	if r.logger != nil {
		r.logger.InfoContext(ctx, "registry loaded",
			"assets", assets.Len(),
			"whitelisted", wl.Count(),
			"total_mints", lg.TotalMints(),
		)
	}
	return nil
}

// authorize checks the owner capability.
func (r *Registry) authorize(owner OwnerToken) error {
	if owner.key == nil || owner.key != r.owner {
		return dErrors.New(dErrors.CodeForbidden, "operation requires the registry owner")
	}
	return nil
}

// journalWrite times a journal call and maps its failure to an internal error.
func (r *Registry) journalWrite(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	if r.metrics != nil {
		r.metrics.ObserveJournal(operation, start)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist "+operation)
	}
	return nil
}

func (r *Registry) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}

func (r *Registry) setWhitelistGauge() {
	if r.metrics != nil {
		r.metrics.SetWhitelistSize(r.whitelist.Count())
	}
}
