package assets

import (
	"context"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// FakeLookup is a fixed in-memory Lookup for tests.
type FakeLookup struct {
	Assets map[string]domain.AssetInfo
}

func NewFakeLookup() *FakeLookup {
	return &FakeLookup{Assets: make(map[string]domain.AssetInfo)}
}

func (f *FakeLookup) Put(info domain.AssetInfo) {
	f.Assets[info.AssetID.String()] = info
}

func (f *FakeLookup) Lookup(ctx context.Context, assetID string) (*domain.AssetInfo, error) {
	info, ok := f.Assets[assetID]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return &info, nil
}
