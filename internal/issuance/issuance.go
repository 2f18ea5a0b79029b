// Package issuance is the whitelist-gated issuance registry: assets with
// per-asset sequence counters, a whitelist of principals with assigned
// metadata references, and an at-most-once issuance ledger.
package issuance

import (
	"log/slog"

	"mintgate/internal/issuance/handler"
	"mintgate/internal/issuance/service"
	adminmw "mintgate/pkg/platform/middleware/admin"
	authmw "mintgate/pkg/platform/middleware/auth"
)

// Registry exposes the issuance registry.
type Registry = service.Registry

// OwnerToken authorises registry mutations.
type OwnerToken = service.OwnerToken

// Handler wires HTTP endpoints to the registry.
type Handler = handler.Handler

// NewRegistry constructs an empty registry and its owner token.
func NewRegistry(opts ...service.Option) (*Registry, OwnerToken) {
	return service.New(opts...)
}

// NewHandler constructs the HTTP handler for public and admin issuance routes.
func NewHandler(r *Registry, owner OwnerToken, logger *slog.Logger, jwtValidator authmw.JWTValidator, adminToken adminmw.TokenVerifier) *Handler {
	return handler.New(r, owner, logger, jwtValidator, adminToken)
}
