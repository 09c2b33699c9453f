package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// HTTPLookup fetches AssetInfo from a blob-metadata service over HTTP,
// mirroring the teacher's plain *http.Client + json.NewDecoder fetchers
// rather than a generated SDK client — there's no asset-store SDK anywhere
// in the example corpus to reuse.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLookup wraps a blob-metadata service's base URL
// (e.g. "https://assets.internal"). Lookup requests
// "{baseURL}/assets/{assetID}".
func NewHTTPLookup(baseURL string) *HTTPLookup {
	return &HTTPLookup{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type assetMetadataResponse struct {
	AssetID    string    `json:"assetId"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
	Bytes      int64     `json:"bytes"`
	SHA256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (l *HTTPLookup) Lookup(ctx context.Context, assetID string) (*domain.AssetInfo, error) {
	endpoint := fmt.Sprintf("%s/assets/%s", l.baseURL, url.PathEscape(assetID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch %s: %w", assetID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrAssetNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: unexpected status %d for %s", resp.StatusCode, assetID)
	}

	var body assetMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("assets: decode response for %s: %w", assetID, err)
	}

	return &domain.AssetInfo{
		AssetID:    domain.AssetID(body.AssetID),
		URL:        body.URL,
		MimeType:   body.MimeType,
		Width:      body.Width,
		Height:     body.Height,
		Bytes:      body.Bytes,
		SHA256:     body.SHA256,
		UploadedAt: body.UploadedAt,
	}, nil
}
