package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mintgate/internal/issuance/models"
	"mintgate/pkg/platform/circuit"
)

// ErrCircuitOpen is returned while the guarded publisher is skipping calls.
var ErrCircuitOpen = errors.New("publisher circuit open")

// Guarded stops calling an unhealthy publisher until a probe succeeds, so a
// dead broker does not add its timeout to every mutation.
type Guarded struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuarded wraps next with breaker.
func NewGuarded(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Publish(ctx context.Context, e models.Event) error {
	if !g.breaker.Allow() {
		return fmt.Errorf("%s: %w", g.breaker.Name(), ErrCircuitOpen)
	}
	if err := g.next.Publish(ctx, e); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened && g.logger != nil {
			g.logger.WarnContext(ctx, "event publisher circuit opened",
				"publisher", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed && g.logger != nil {
		g.logger.InfoContext(ctx, "event publisher circuit closed", "publisher", g.breaker.Name())
	}
	return nil
}
