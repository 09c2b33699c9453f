package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

func newTestGeneratorDraft(t *testing.T, brandName string, industryCode domain.IndustryCode, logo *domain.AssetInfo) *domain.Draft {
	t.Helper()
	bp, err := domain.NewBrandProfile(brandName, domain.NewIndustryInfo(string(industryCode), ""), logo)
	require.NoError(t, err)
	d, err := domain.NewDraft(*bp, 86400, domain.GeneratorInfo{Engine: "builtin", EngineVersion: "1.0.0"}, domain.DraftMeta{}, time.Now())
	require.NoError(t, err)
	return d
}

func TestGenerateTechTemplateTitleMatchesLiteralScenario(t *testing.T) {
	registry := NewRegistry()
	logo := &domain.AssetInfo{AssetID: "ast_x", URL: "https://cdn.example/ast_x.png", SHA256: "hhh"}
	draft := newTestGeneratorDraft(t, "Кодовая", domain.IndustryTech, logo)

	cfg, err := Generate(draft, registry, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Кодовая — IT-услуги для роста бизнеса", cfg.Site.Title)
	require.Equal(t, "tech", cfg.Generator.TemplateID)
}

func TestGenerateUnknownIndustryFallsBackToDefaultTemplate(t *testing.T) {
	registry := NewRegistry()
	draft := newTestGeneratorDraft(t, "Acme", domain.IndustryCode("unknown"), nil)

	cfg, err := Generate(draft, registry, time.Now())
	require.NoError(t, err)
	require.Equal(t, "default", cfg.Generator.TemplateID)
	require.Equal(t, "Acme — Online", cfg.Site.Title)
}

func TestGenerateIsDeterministicModuloIDAndTimestamp(t *testing.T) {
	registry := NewRegistry()
	logo := &domain.AssetInfo{AssetID: "ast_x", URL: "https://cdn.example/ast_x.png", SHA256: "hhh"}
	draft := newTestGeneratorDraft(t, "Acme", domain.IndustryFinance, logo)
	draft.DraftID = domain.DraftID("drf_fixed")

	now := time.Now()
	cfgA, err := Generate(draft, registry, now)
	require.NoError(t, err)
	cfgB, err := Generate(draft, registry, now.Add(time.Hour))
	require.NoError(t, err)

	hashA, err := canonicaljson.SHA256Hex(cfgA.DeterministicCopy())
	require.NoError(t, err)
	hashB, err := canonicaljson.SHA256Hex(cfgB.DeterministicCopy())
	require.NoError(t, err)
	require.Equal(t, hashA, hashB)
	require.NotEqual(t, cfgA.ConfigID, cfgB.ConfigID)
}

func TestGenerateEmitsAtMostOneAssetForLogo(t *testing.T) {
	registry := NewRegistry()
	draft := newTestGeneratorDraft(t, "Acme", domain.IndustryRetail, nil)
	cfg, err := Generate(draft, registry, time.Now())
	require.NoError(t, err)
	require.Empty(t, cfg.Assets)
	require.Nil(t, cfg.Site.SEO.OGImageAssetID)
}

func TestGenerateRejectsEmptyBrandName(t *testing.T) {
	registry := NewRegistry()
	draft := newTestGeneratorDraft(t, "Acme", domain.IndustryRetail, nil)
	draft.BrandProfile.BrandName = ""
	_, err := Generate(draft, registry, time.Now())
	require.Error(t, err)
}
