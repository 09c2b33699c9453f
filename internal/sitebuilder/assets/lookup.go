// Package assets implements the blob-metadata adapter: a read-only lookup
// from asset id to the AssetInfo record the core needs (spec §1 "external
// collaborators", §3.1 AssetInfo). The core never fetches or stores the
// referenced bytes.
package assets

import (
	"context"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// Lookup resolves an asset id to its metadata. Implementations return
// domain.ErrAssetNotFound when the id is unknown.
type Lookup interface {
	Lookup(ctx context.Context, assetID string) (*domain.AssetInfo, error)
}
