package httpapi

import "github.com/siteforge/draftsvc/internal/sitebuilder/domain"

type industryBody struct {
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

type logoBody struct {
	AssetID string `json:"assetId"`
}

type createDraftRequest struct {
	BrandName  string        `json:"brandName"`
	Industry   industryBody  `json:"industry"`
	Logo       *logoBody     `json:"logo,omitempty"`
	TTLSeconds int           `json:"ttlSeconds,omitempty"`
}

type patchDraftRequest struct {
	BrandName domain.Optional[string]       `json:"brandName"`
	Industry  domain.Optional[industryBody] `json:"industry"`
	Logo      domain.Optional[*logoBody]    `json:"logo"`
}

type ownerBody struct {
	UserID   string  `json:"userId"`
	TenantID *string `json:"tenantId,omitempty"`
}

type commitRequest struct {
	Owner ownerBody `json:"owner"`
}

type commitResponse struct {
	ProjectID string `json:"projectId"`
	ConfigID  string `json:"configId"`
	Status    string `json:"status"`
}
