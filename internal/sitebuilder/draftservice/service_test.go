package draftservice

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/assets"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftstore"
	"github.com/siteforge/draftsvc/internal/sitebuilder/template"
)

func newTestService(t *testing.T) (*Service, *assets.FakeLookup) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	lookup := assets.NewFakeLookup()
	lookup.Put(domain.AssetInfo{AssetID: "ast_x", URL: "https://cdn.example/x.png", SHA256: "hhh"})

	drafts := draftstore.NewRedisStore(client)
	registry := template.NewRegistry()
	return NewService(drafts, lookup, registry, nil), lookup
}

func TestCreateDraftResolvesLogoAndPersists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, CreateDraftInput{
		BrandName: "Acme",
		Industry:  IndustryRef{Code: "tech"},
		Logo:      &LogoRef{AssetID: "ast_x"},
	})
	require.NoError(t, err)
	require.Equal(t, "ast_x", draft.BrandProfile.Logo.AssetID.String())
	require.Equal(t, DefaultTTLSeconds, draft.TTLSeconds)

	got, err := svc.GetDraft(ctx, draft.DraftID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.BrandProfile.BrandName)
}

func TestCreateDraftUnknownAssetFails(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateDraft(context.Background(), CreateDraftInput{
		BrandName: "Acme",
		Industry:  IndustryRef{Code: "tech"},
		Logo:      &LogoRef{AssetID: "ast_missing"},
	})
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestUpdateDraftLogoNullClearsLogo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, CreateDraftInput{
		BrandName: "Acme",
		Industry:  IndustryRef{Code: "tech"},
		Logo:      &LogoRef{AssetID: "ast_x"},
	})
	require.NoError(t, err)

	patch := PatchDraftInput{Logo: domain.Optional[*LogoRef]{Present: true, Null: true}}
	updated, err := svc.UpdateDraft(ctx, draft.DraftID, patch)
	require.NoError(t, err)
	require.Nil(t, updated.BrandProfile.Logo)
}

func TestUpdateDraftAbsentFieldsAreUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, CreateDraftInput{
		BrandName: "Acme",
		Industry:  IndustryRef{Code: "tech"},
	})
	require.NoError(t, err)

	patch := PatchDraftInput{BrandName: domain.Optional[string]{Present: true, Value: "New Name"}}
	updated, err := svc.UpdateDraft(ctx, draft.DraftID, patch)
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.BrandProfile.BrandName)
	require.Equal(t, draft.BrandProfile.Industry.Code, updated.BrandProfile.Industry.Code)
}

func TestUpdateDraftOnMissingDraftIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateDraft(context.Background(), domain.DraftID("drf_missing"), PatchDraftInput{})
	require.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestGetPreviewRendersBrandNameAndReturnsETag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, CreateDraftInput{BrandName: "Acme", Industry: IndustryRef{Code: "tech"}})
	require.NoError(t, err)

	result, err := svc.GetPreview(ctx, draft.DraftID, domain.PreviewModeHTML)
	require.NoError(t, err)
	require.NotEmpty(t, result.ETag)
	require.Contains(t, result.Content, "Acme")
}

func TestGetPreviewETagStableAcrossRepeatedCallsForUnchangedDraft(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, CreateDraftInput{BrandName: "Acme", Industry: IndustryRef{Code: "tech"}})
	require.NoError(t, err)

	r1, err := svc.GetPreview(ctx, draft.DraftID, domain.PreviewModeHTML)
	require.NoError(t, err)
	r2, err := svc.GetPreview(ctx, draft.DraftID, domain.PreviewModeHTML)
	require.NoError(t, err)
	require.Equal(t, r1.ETag, r2.ETag)
}

func TestGetPreviewETagChangesAfterDraftIsUpdated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	draft, err := svc.CreateDraft(ctx, CreateDraftInput{BrandName: "Acme", Industry: IndustryRef{Code: "tech"}})
	require.NoError(t, err)

	r1, err := svc.GetPreview(ctx, draft.DraftID, domain.PreviewModeHTML)
	require.NoError(t, err)

	_, err = svc.UpdateDraft(ctx, draft.DraftID, PatchDraftInput{BrandName: domain.Optional[string]{Present: true, Value: "Acme Renamed"}})
	require.NoError(t, err)

	r2, err := svc.GetPreview(ctx, draft.DraftID, domain.PreviewModeHTML)
	require.NoError(t, err)
	require.NotEqual(t, r1.ETag, r2.ETag)
}
