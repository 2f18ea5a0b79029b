package service

import (
	"context"

	"github.com/google/uuid"

	"mintgate/internal/issuance/models"
	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// publish delivers a committed mutation's notification. The mutation is
// already durable, so delivery failures are logged and counted only.
func (r *Registry) publish(ctx context.Context, e models.Event) {
	if r.publisher == nil {
		return
	}
	e.ID = uuid.NewString()
	e.RequestID = requestcontext.RequestID(ctx)
	if e.OccurredAt.IsZero() {
		e.OccurredAt = requestcontext.Now(ctx)
	}
	if err := r.publisher.Publish(ctx, e); err != nil {
		if r.metrics != nil {
			r.metrics.IncrementPublishFailures()
		}
		if r.logger != nil {
			r.logger.WarnContext(ctx, "failed to publish event",
				"kind", e.Kind,
				"event_id", e.ID,
				"error", err,
			)
		}
	}
}

func (r *Registry) logAudit(ctx context.Context, event string, attributes ...any) {
	if r.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		attributes = append(attributes, "client_ip", ip)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	r.logger.InfoContext(ctx, event, args...)
}

func assetRef(a id.AssetID) *id.AssetID {
	return &a
}
