package testutil

import (
	"context"
	"time"

	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// FixedTime is the clock used by tests that need stable timestamps.
var FixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// CallerContext returns a context carrying an authenticated caller, a request
// id, and FixedTime, as the HTTP middleware chain would.
func CallerContext(p id.Principal) context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), p)
	ctx = requestcontext.WithRequestID(ctx, "req-test")
	return requestcontext.WithTime(ctx, FixedTime)
}
