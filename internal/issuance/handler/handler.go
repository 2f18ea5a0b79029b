package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/issuance/models"
	"mintgate/internal/issuance/service"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
	adminmw "mintgate/pkg/platform/middleware/admin"
	authmw "mintgate/pkg/platform/middleware/auth"
	"mintgate/pkg/requestcontext"
)

// Service defines the registry operations exposed over HTTP.
type Service interface {
	Issue(ctx context.Context, assetID id.AssetID, p id.Principal) (id.SequenceNumber, error)
	CreateAsset(ctx context.Context, owner service.OwnerToken) (models.AssetHandle, error)
	ListAssets() []models.AssetHandle
	ListAssetsPaginated(offset, limit int) ([]models.AssetHandle, error)
	GetAsset(assetID id.AssetID) (service.AssetView, error)
	RecordOf(assetID id.AssetID, seq id.SequenceNumber) (models.Record, error)

	AddToWhitelist(ctx context.Context, owner service.OwnerToken, p id.Principal, metadataRef string) error
	AddToWhitelistBatch(ctx context.Context, owner service.OwnerToken, principals []id.Principal, metadataRefs []string) ([]models.WhitelistEntry, error)
	RemoveFromWhitelist(ctx context.Context, owner service.OwnerToken, p id.Principal) error
	Whitelist() []id.Principal
	WhitelistPaginated(offset, limit int) ([]id.Principal, error)
	WhitelistCount() int
	IsWhitelisted(p id.Principal) bool
	WhitelistMetadata(p id.Principal) string
	WhitelistLookup(principals []id.Principal) ([]bool, []string)

	HasIssued(assetID id.AssetID, p id.Principal) bool
	HasIssuedBatch(p id.Principal, assetIDs []id.AssetID) []bool
	Stats() service.Stats
	AvailableAssetsFor(p id.Principal) ([]id.AssetID, error)
	ProfileOf(p id.Principal) models.Profile
}

// Handler wires issuance endpoints to the registry. Admin routes act with the
// owner token the handler was built with.
type Handler struct {
	service      Service
	owner        service.OwnerToken
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
	adminToken   adminmw.TokenVerifier
}

// New constructs an issuance handler.
func New(svc Service, owner service.OwnerToken, logger *slog.Logger, jwtValidator authmw.JWTValidator, adminToken adminmw.TokenVerifier) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:      svc,
		owner:        owner,
		logger:       logger,
		jwtValidator: jwtValidator,
		adminToken:   adminToken,
	}
}

// Register mounts public routes behind bearer authentication and admin routes
// behind the admin token.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))

		r.Post("/assets/{assetID}/issue", h.HandleIssue)
		r.Get("/assets", h.HandleListAssets)
		r.Get("/assets/{assetID}", h.HandleGetAsset)
		r.Get("/assets/{assetID}/records/{seq}", h.HandleGetRecord)

		r.Get("/whitelist", h.HandleListWhitelist)
		r.Get("/whitelist/count", h.HandleWhitelistCount)
		r.Get("/whitelist/{principal}", h.HandleGetWhitelistEntry)
		r.Post("/whitelist/lookup", h.HandleWhitelistLookup)

		r.Get("/issuances/{assetID}/{principal}", h.HandleHasIssued)
		r.Post("/issuances/lookup", h.HandleIssuanceLookup)
		r.Get("/stats", h.HandleStats)

		r.Get("/principals/{principal}/available", h.HandleAvailableAssets)
		r.Get("/principals/{principal}/profile", h.HandleProfile)
		r.Get("/me", h.HandleMe)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(h.adminToken, h.logger))

		r.Post("/assets", h.HandleCreateAsset)
		r.Post("/whitelist", h.HandleAddWhitelist)
		r.Post("/whitelist/batch", h.HandleAddWhitelistBatch)
		r.Delete("/whitelist/{principal}", h.HandleRemoveWhitelist)
	})
}

// HandleIssue handles POST /assets/{assetID}/issue for the authenticated caller.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	caller := requestcontext.Principal(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	assetID, ok := h.assetIDParam(w, r)
	if !ok {
		return
	}

	seq, err := h.service.Issue(ctx, assetID, caller)
	if err != nil {
		h.logFailure(ctx, "issuance rejected", err,
			"request_id", requestID,
			"asset_id", assetID,
			"principal", caller,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "record issued",
		"request_id", requestID,
		"asset_id", assetID,
		"principal", caller,
		"sequence_number", seq,
	)
	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{AssetID: assetID, SequenceNumber: seq})
}

// HandleListAssets handles GET /assets with optional offset/limit.
func (h *Handler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !page.paginated {
		httputil.WriteJSON(w, http.StatusOK, toAssetList(h.service.ListAssets()))
		return
	}
	handles, err := h.service.ListAssetsPaginated(page.offset, page.limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssetList(handles))
}

func (h *Handler) HandleGetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.assetIDParam(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetAsset(assetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAssetView(view))
}

// HandleGetRecord handles GET /assets/{assetID}/records/{seq}.
func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.assetIDParam(w, r)
	if !ok {
		return
	}
	seq, err := id.ParseSequenceNumber(chi.URLParam(r, "seq"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rec, err := h.service.RecordOf(assetID, seq)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
}

// HandleListWhitelist handles GET /whitelist with optional offset/limit.
func (h *Handler) HandleListWhitelist(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !page.paginated {
		httputil.WriteJSON(w, http.StatusOK, WhitelistResponse{Principals: h.service.Whitelist()})
		return
	}
	principals, err := h.service.WhitelistPaginated(page.offset, page.limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WhitelistResponse{Principals: principals})
}

func (h *Handler) HandleWhitelistCount(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, CountResponse{Count: h.service.WhitelistCount()})
}

func (h *Handler) HandleGetWhitelistEntry(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalParam(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WhitelistEntryResponse{
		Principal:   p,
		Whitelisted: h.service.IsWhitelisted(p),
		MetadataRef: h.service.WhitelistMetadata(p),
	})
}

// HandleWhitelistLookup handles POST /whitelist/lookup. Results follow the
// request order.
func (h *Handler) HandleWhitelistLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[WhitelistLookupRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	principals := req.ParsedPrincipals()
	present, refs := h.service.WhitelistLookup(principals)
	resp := WhitelistLookupResponse{Entries: make([]WhitelistEntryResponse, len(principals))}
	for i, p := range principals {
		resp.Entries[i] = WhitelistEntryResponse{Principal: p, Whitelisted: present[i], MetadataRef: refs[i]}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHasIssued(w http.ResponseWriter, r *http.Request) {
	assetID, ok := h.assetIDParam(w, r)
	if !ok {
		return
	}
	p, ok := h.principalParam(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, IssuanceResponse{
		AssetID:   assetID,
		Principal: p,
		Issued:    h.service.HasIssued(assetID, p),
	})
}

// HandleIssuanceLookup handles POST /issuances/lookup.
func (h *Handler) HandleIssuanceLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[IssuanceLookupRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, assetIDs := req.ParsedPrincipal(), req.ParsedAssetIDs()
	issued := h.service.HasIssuedBatch(p, assetIDs)
	resp := IssuanceLookupResponse{Principal: p, Results: make([]IssuanceResponse, len(assetIDs))}
	for i, a := range assetIDs {
		resp.Results[i] = IssuanceResponse{AssetID: a, Principal: p, Issued: issued[i]}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toStatsResponse(h.service.Stats()))
}

func (h *Handler) HandleAvailableAssets(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalParam(w, r)
	if !ok {
		return
	}
	assetIDs, err := h.service.AvailableAssetsFor(p)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AvailableAssetsResponse{Principal: p, AssetIDs: assetIDs})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principalParam(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.ProfileOf(p))
}

// HandleMe returns the caller's own profile.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller := requestcontext.Principal(r.Context())
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.service.ProfileOf(caller))
}

// HandleCreateAsset handles POST /admin/assets.
func (h *Handler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle, err := h.service.CreateAsset(ctx, h.owner)
	if err != nil {
		h.logFailure(ctx, "asset creation failed", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toAssetResponse(handle))
}

// HandleAddWhitelist handles POST /admin/whitelist.
func (h *Handler) HandleAddWhitelist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddWhitelistRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p := req.ParsedPrincipal()
	if err := h.service.AddToWhitelist(ctx, h.owner, p, req.MetadataRef); err != nil {
		h.logFailure(ctx, "whitelist add failed", err, "request_id", requestID, "principal", p)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, WhitelistEntryResponse{
		Principal:   p,
		Whitelisted: true,
		MetadataRef: req.MetadataRef,
	})
}

// HandleAddWhitelistBatch handles POST /admin/whitelist/batch.
func (h *Handler) HandleAddWhitelistBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AddWhitelistBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	principals := req.ParsedPrincipals()
	added, err := h.service.AddToWhitelistBatch(ctx, h.owner, principals, req.MetadataRefs)
	if err != nil {
		h.logFailure(ctx, "whitelist batch failed", err, "request_id", requestID, "size", len(principals))
		httputil.WriteError(w, err)
		return
	}
	if added == nil {
		added = []models.WhitelistEntry{}
	}
	httputil.WriteJSON(w, http.StatusOK, WhitelistBatchResponse{Added: added, Skipped: len(principals) - len(added)})
}

// HandleRemoveWhitelist handles DELETE /admin/whitelist/{principal}.
func (h *Handler) HandleRemoveWhitelist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := h.principalParam(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveFromWhitelist(ctx, h.owner, p); err != nil {
		h.logFailure(ctx, "whitelist removal failed", err,
			"request_id", requestcontext.RequestID(ctx),
			"principal", p,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) assetIDParam(w http.ResponseWriter, r *http.Request) (id.AssetID, bool) {
	assetID, err := id.ParseAssetID(chi.URLParam(r, "assetID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return assetID, true
}

func (h *Handler) principalParam(w http.ResponseWriter, r *http.Request) (id.Principal, bool) {
	p, err := id.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return p, true
}

// logFailure logs caller-caused rejections at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "code", dErrors.CodeOf(err))
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
