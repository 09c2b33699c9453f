package preview

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

func baseConfig() domain.SiteConfig {
	return domain.SiteConfig{
		SchemaVersion: 1,
		ConfigVersion: "1.0.0",
		ConfigID:      domain.ConfigID("cfg_test"),
		DraftID:       domain.DraftID("drf_test"),
		Brand:         domain.ConfigBrand{Name: "Acme", Industry: "tech", Slug: "acme"},
		Site:          domain.Site{Title: "Acme"},
		Theme: domain.Theme{
			ThemeID:    "default",
			Palette:    domain.Palette{Primary: "#000", Accent: "#111", Background: "#fff", Surface: "#eee", Text: "#000", MutedText: "#555"},
			Typography: domain.Typography{FontFamily: "sans", Scale: "medium"},
			Radius:     "md",
			Spacing:    "md",
		},
		Pages: []domain.Page{
			{
				ID:   "page-home",
				Path: "/",
				Title: "Acme",
				Sections: []domain.Section{
					{ID: "sec-hero", Type: "hero", Props: map[string]any{"heading": "Acme", "subheading": "Tech", "ctaLabel": "Go"}},
				},
			},
		},
	}
}

func TestRenderHTMLEscapesScriptInjection(t *testing.T) {
	cfg := baseConfig()
	cfg.Site.Title = "Tech<script>alert('xss')</script>Corp"

	result, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	require.NotContains(t, result.Content, "<script>")
	require.NotContains(t, result.Content, "alert('xss')")
	require.Contains(t, result.Content, "&lt;script&gt;")
}

func TestRenderHeroHeadingUsesSiteTitleWithTemplateSuffix(t *testing.T) {
	cfg := baseConfig()
	cfg.Site.Title = "Кодовая — IT-услуги для роста бизнеса"

	result, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	require.Contains(t, result.Content, "<h1>Кодовая — IT-услуги для роста бизнеса</h1>")
}

func TestRenderDropsSectionsOutsideWhitelist(t *testing.T) {
	cfg := baseConfig()
	cfg.Pages[0].Sections = append(cfg.Pages[0].Sections, domain.Section{
		ID: "sec-weird", Type: "carousel-3d", Props: map[string]any{"heading": "should not appear"},
	})

	result, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	require.NotContains(t, result.Content, "should not appear")
	require.NotContains(t, result.Content, "carousel-3d")
}

func TestRenderJSONModelDropsUnlistedSectionType(t *testing.T) {
	cfg := baseConfig()
	cfg.Pages[0].Sections = append(cfg.Pages[0].Sections, domain.Section{
		ID: "sec-weird", Type: "carousel-3d", Props: map[string]any{"heading": "x"},
	})

	result, err := Render(context.Background(), cfg, domain.PreviewModeJSON, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	require.Len(t, result.Model.Pages[0].Sections, 1)
	require.Equal(t, "hero", result.Model.Pages[0].Sections[0].Type)
}

func TestRenderRejectsRawIframeAsUnsafe(t *testing.T) {
	cfg := baseConfig()
	cfg.Pages[0].Sections[0].Props["html"] = `<iframe src="evil"></iframe>`

	_, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.ErrorIs(t, err, domain.ErrPreviewUnsafe)
}

func TestETagStableAcrossRepeatedRendersOfUnchangedConfig(t *testing.T) {
	cfg := baseConfig()
	r1, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	r2, err := Render(context.Background(), cfg, domain.PreviewModeJSON, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)
	require.Equal(t, r1.ETag, r2.ETag)
	require.True(t, strings.HasPrefix(r1.ETag, `W/"cfg_test:`))
}

func TestETagChangesWhenConfigChanges(t *testing.T) {
	cfg := baseConfig()
	r1, err := Render(context.Background(), cfg, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)

	cfg2 := baseConfig()
	cfg2.Brand.Name = "Acme Two"
	r2, err := Render(context.Background(), cfg2, domain.PreviewModeHTML, NoExternalRenderer{}, time.Now())
	require.NoError(t, err)

	require.NotEqual(t, r1.ETag, r2.ETag)
}

func TestRadiusToCSSMapsFixedTable(t *testing.T) {
	require.Equal(t, "0", radiusToCSS("none"))
	require.Equal(t, "4px", radiusToCSS("sm"))
	require.Equal(t, "8px", radiusToCSS("md"))
	require.Equal(t, "16px", radiusToCSS("lg"))
	require.Equal(t, "9999px", radiusToCSS("full"))
}
