package handler

import (
	"time"

	"mintgate/internal/issuance/models"
	"mintgate/internal/issuance/service"
	id "mintgate/pkg/domain"
)

type IssueResponse struct {
	AssetID        id.AssetID        `json:"asset_id"`
	SequenceNumber id.SequenceNumber `json:"sequence_number"`
}

type AssetResponse struct {
	ID          id.AssetID `json:"id"`
	IssuedCount uint64     `json:"issued_count"`
	Mints       *uint64    `json:"mints,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type RecordResponse struct {
	AssetID        id.AssetID        `json:"asset_id"`
	SequenceNumber id.SequenceNumber `json:"sequence_number"`
	Owner          id.Principal      `json:"owner"`
	MetadataRef    string            `json:"metadata_ref"`
	IssuedAt       time.Time         `json:"issued_at"`
}

type WhitelistResponse struct {
	Principals []id.Principal `json:"principals"`
}

type CountResponse struct {
	Count int `json:"count"`
}

// WhitelistEntryResponse reports one principal's membership. MetadataRef is
// empty when the principal is absent.
type WhitelistEntryResponse struct {
	Principal   id.Principal `json:"principal"`
	Whitelisted bool         `json:"whitelisted"`
	MetadataRef string       `json:"metadata_ref"`
}

type WhitelistLookupResponse struct {
	Entries []WhitelistEntryResponse `json:"entries"`
}

type WhitelistBatchResponse struct {
	Added   []models.WhitelistEntry `json:"added"`
	Skipped int                     `json:"skipped"`
}

type IssuanceResponse struct {
	AssetID   id.AssetID   `json:"asset_id"`
	Principal id.Principal `json:"principal"`
	Issued    bool         `json:"issued"`
}

type IssuanceLookupResponse struct {
	Principal id.Principal       `json:"principal"`
	Results   []IssuanceResponse `json:"results"`
}

type StatsResponse struct {
	Assets      int    `json:"assets"`
	Whitelisted int    `json:"whitelisted"`
	TotalMints  uint64 `json:"total_mints"`
}

type AvailableAssetsResponse struct {
	Principal id.Principal `json:"principal"`
	AssetIDs  []id.AssetID `json:"asset_ids"`
}

func toAssetResponse(h models.AssetHandle) AssetResponse {
	return AssetResponse{ID: h.ID, IssuedCount: h.IssuedCount, CreatedAt: h.CreatedAt}
}

func toAssetList(handles []models.AssetHandle) AssetListResponse {
	out := AssetListResponse{Assets: make([]AssetResponse, 0, len(handles))}
	for _, h := range handles {
		out.Assets = append(out.Assets, toAssetResponse(h))
	}
	return out
}

func toAssetView(v service.AssetView) AssetResponse {
	resp := toAssetResponse(v.AssetHandle)
	mints := v.Mints
	resp.Mints = &mints
	return resp
}

func toRecordResponse(rec models.Record) RecordResponse {
	return RecordResponse(rec)
}

func toStatsResponse(s service.Stats) StatsResponse {
	return StatsResponse(s)
}
