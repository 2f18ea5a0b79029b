// Package events delivers registry notifications to external observers.
package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"mintgate/internal/issuance/models"
)

// Publisher delivers one event.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// LogPublisher writes events as structured log lines.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that logs at info level.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e models.Event) error {
	attrs := []any{
		"event_id", e.ID,
		"kind", string(e.Kind),
		"log_type", "notification",
	}
	if e.AssetID != nil {
		attrs = append(attrs, "asset_id", int(*e.AssetID))
	}
	if !e.Principal.IsZero() {
		attrs = append(attrs, "principal", e.Principal.String())
	}
	if e.SequenceNumber != 0 {
		attrs = append(attrs, "sequence_number", uint64(e.SequenceNumber))
	}
	if e.RequestID != "" {
		attrs = append(attrs, "request_id", e.RequestID)
	}
	p.logger.InfoContext(ctx, string(e.Kind), attrs...)
	return nil
}

// Recorder keeps published events in memory. Useful in tests and for
// single-process deployments that poll recent activity.
type Recorder struct {
	mu     sync.RWMutex
	events []models.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, e models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []models.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Event(nil), r.events...)
}

// OfKind returns the published events of one kind.
func (r *Recorder) OfKind(kind models.EventKind) []models.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Multi fans one event out to several publishers. Every publisher is tried;
// the errors are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e models.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
