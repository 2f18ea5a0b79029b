package handler

import (
	"net/http"
	"strconv"
	"strings"

	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// maxBatchSize bounds batch request bodies.
const maxBatchSize = 1000

// AddWhitelistRequest is the body of POST /admin/whitelist.
type AddWhitelistRequest struct {
	Principal   string `json:"principal"`
	MetadataRef string `json:"metadata_ref"`

	parsedPrincipal id.Principal
}

// Validate implements httputil.Validatable.
func (r *AddWhitelistRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	p, err := id.ParsePrincipal(r.Principal)
	if err != nil {
		return err
	}
	r.parsedPrincipal = p
	return nil
}

func (r *AddWhitelistRequest) ParsedPrincipal() id.Principal {
	return r.parsedPrincipal
}

// AddWhitelistBatchRequest is the body of POST /admin/whitelist/batch.
// Principals and MetadataRefs pair up by index.
type AddWhitelistBatchRequest struct {
	Principals   []string `json:"principals"`
	MetadataRefs []string `json:"metadata_refs"`

	parsedPrincipals []id.Principal
}

func (r *AddWhitelistBatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Principals) > maxBatchSize {
		return dErrors.New(dErrors.CodeInvalidArgument, "batch exceeds "+strconv.Itoa(maxBatchSize)+" entries")
	}
	parsed, err := parsePrincipals(r.Principals)
	if err != nil {
		return err
	}
	r.parsedPrincipals = parsed
	return nil
}

func (r *AddWhitelistBatchRequest) ParsedPrincipals() []id.Principal {
	return r.parsedPrincipals
}

// WhitelistLookupRequest is the body of POST /whitelist/lookup.
type WhitelistLookupRequest struct {
	Principals []string `json:"principals"`

	parsedPrincipals []id.Principal
}

func (r *WhitelistLookupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Principals) > maxBatchSize {
		return dErrors.New(dErrors.CodeInvalidArgument, "batch exceeds "+strconv.Itoa(maxBatchSize)+" entries")
	}
	parsed, err := parsePrincipals(r.Principals)
	if err != nil {
		return err
	}
	r.parsedPrincipals = parsed
	return nil
}

func (r *WhitelistLookupRequest) ParsedPrincipals() []id.Principal {
	return r.parsedPrincipals
}

// IssuanceLookupRequest is the body of POST /issuances/lookup.
type IssuanceLookupRequest struct {
	Principal string `json:"principal"`
	AssetIDs  []int  `json:"asset_ids"`

	parsedPrincipal id.Principal
	parsedAssetIDs  []id.AssetID
}

func (r *IssuanceLookupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.AssetIDs) > maxBatchSize {
		return dErrors.New(dErrors.CodeInvalidArgument, "batch exceeds "+strconv.Itoa(maxBatchSize)+" entries")
	}
	p, err := id.ParsePrincipal(r.Principal)
	if err != nil {
		return err
	}
	r.parsedPrincipal = p
	r.parsedAssetIDs = make([]id.AssetID, len(r.AssetIDs))
	for i, a := range r.AssetIDs {
		if a < 0 {
			return dErrors.New(dErrors.CodeInvalidArgument, "asset ids must be non-negative")
		}
		r.parsedAssetIDs[i] = id.AssetID(a)
	}
	return nil
}

func (r *IssuanceLookupRequest) ParsedPrincipal() id.Principal {
	return r.parsedPrincipal
}

func (r *IssuanceLookupRequest) ParsedAssetIDs() []id.AssetID {
	return r.parsedAssetIDs
}

func parsePrincipals(raw []string) ([]id.Principal, error) {
	out := make([]id.Principal, len(raw))
	for i, s := range raw {
		p, err := id.ParsePrincipal(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// pageParams is the optional offset/limit pair on list endpoints. Listing is
// paginated only when at least one of them is present.
type pageParams struct {
	offset    int
	limit     int
	paginated bool
}

func parsePage(r *http.Request) (pageParams, error) {
	q := r.URL.Query()
	rawOffset, rawLimit := strings.TrimSpace(q.Get("offset")), strings.TrimSpace(q.Get("limit"))
	if rawOffset == "" && rawLimit == "" {
		return pageParams{}, nil
	}
	page := pageParams{paginated: true, limit: defaultPageLimit}
	if rawOffset != "" {
		n, err := strconv.Atoi(rawOffset)
		if err != nil {
			return pageParams{}, dErrors.New(dErrors.CodeBadRequest, "offset must be an integer")
		}
		page.offset = n
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil {
			return pageParams{}, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer")
		}
		page.limit = n
	}
	return page, nil
}

// defaultPageLimit applies when only offset is given.
const defaultPageLimit = 100
