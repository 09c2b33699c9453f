// Package template implements the deterministic template engine and
// config generator of spec §4.C: a registry of compiled TemplateDefinition
// records, a closed token vocabulary, and the Generate function that turns
// a Draft into a publish-ready SiteConfig.
package template

import (
	"fmt"
	"log"
	"time"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// Generate produces a SiteConfig from draft using registry, following the
// ten steps of spec §4.C. Every step but the last (id/timestamp stamping)
// is pure; callers that need the determinism property of §8 invariant 2
// should compare SiteConfig.DeterministicCopy() outputs.
func Generate(draft *domain.Draft, registry *Registry, now time.Time) (*domain.SiteConfig, error) {
	configID, err := domain.NewConfigID()
	if err != nil {
		return nil, err
	}
	return GenerateWithConfigID(draft, registry, now, configID)
}

// GenerateWithConfigID runs the same ten steps as Generate but stamps cfg
// with the caller-supplied configID instead of minting a fresh one. Callers
// that must keep a config's id (and therefore its ETag) stable across
// repeated generations of an unchanged draft — draftservice's preview path
// — compute configID once and persist it on the draft record rather than
// calling plain Generate on every request.
func GenerateWithConfigID(draft *domain.Draft, registry *Registry, now time.Time, configID domain.ConfigID) (*domain.SiteConfig, error) {
	brandName, err := domain.NormalizeBrandName(draft.BrandProfile.BrandName)
	if err != nil {
		return nil, err
	}

	templateID, templateVersion := registry.LookupByIndustry(draft.BrandProfile.Industry.Code)
	def, ok := registry.Load(templateID)
	if !ok {
		log.Printf("template: templateId %q resolved by industry lookup is unknown to the registry, falling back to default", templateID)
	}

	slug := Slug(brandName)

	var logoAssetID *string
	logoURL := ""
	var assets []domain.AssetInfo
	if draft.BrandProfile.Logo != nil {
		id := draft.BrandProfile.Logo.AssetID.String()
		logoAssetID = &id
		logoURL = draft.BrandProfile.Logo.URL
		assets = append(assets, *draft.BrandProfile.Logo)
	}

	tc := TokenContext{
		BrandName:     brandName,
		IndustryLabel: draft.BrandProfile.Industry.Label,
		LogoURL:       logoURL,
		Slug:          slug,
		LogoAssetID:   logoAssetID,
	}

	theme := domain.Theme{
		ThemeID:    def.Theme.ThemeID,
		Palette:    def.Theme.Palette,
		Typography: def.Theme.Typography,
		Radius:     def.Theme.Radius,
		Spacing:    def.Theme.Spacing,
	}

	pages, err := composePages(def.Pages, tc)
	if err != nil {
		return nil, err
	}

	var ogImageAssetID *string
	if logoAssetID != nil {
		id := *logoAssetID
		ogImageAssetID = &id
	}

	description, ok := resolveTemplateString(def.Description, tc)
	if !ok {
		return nil, fmt.Errorf("template: description did not resolve to a string")
	}

	cfg := &domain.SiteConfig{
		SchemaVersion: 1,
		ConfigVersion: domain.CurrentConfigVersion,
		ConfigID:      configID,
		DraftID:       draft.DraftID,
		GeneratedAt:   now.UTC().Truncate(time.Millisecond),
		Generator: domain.ConfigGeneratorInfo{
			Engine:          draft.Generator.Engine,
			EngineVersion:   draft.Generator.EngineVersion,
			TemplateID:      templateID,
			TemplateVersion: templateVersion,
		},
		Brand: domain.ConfigBrand{
			Name:     brandName,
			Industry: string(draft.BrandProfile.Industry.Code),
			Slug:     slug,
			Logo:     draft.BrandProfile.Logo,
		},
		Site: domain.Site{
			Language:    "en",
			Title:       fmt.Sprintf("%s — %s", brandName, def.TitleSuffix),
			Description: description,
			Routing:     domain.Routing{BasePath: "/", TrailingSlash: false},
			SEO: domain.SEO{
				Title:          fmt.Sprintf("%s — %s", brandName, def.TitleSuffix),
				Description:    description,
				OGImageAssetID: ogImageAssetID,
			},
		},
		Theme:      theme,
		Pages:      pages,
		Assets:     assets,
		Publishing: def.Publishing,
	}
	return cfg, nil
}

func composePages(defs []PageTemplate, tc TokenContext) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, len(defs))
	for _, pd := range defs {
		title, ok := resolveTemplateString(pd.Title, tc)
		if !ok {
			return nil, fmt.Errorf("template: page %q title did not resolve to a string", pd.ID)
		}
		sections := make([]domain.Section, 0, len(pd.Sections))
		for _, sd := range pd.Sections {
			props := ResolveValue(copyProps(sd.Props), tc).(map[string]any)
			sections = append(sections, domain.Section{
				ID:    sd.ID,
				Type:  sd.Type,
				Props: props,
			})
		}
		pages = append(pages, domain.Page{
			ID:       pd.ID,
			Path:     pd.Path,
			Title:    title,
			Sections: sections,
		})
	}
	return pages, nil
}

// resolveTemplateString resolves a single template string and asserts the
// result is itself a string (it always is, unless the whole string is the
// bare "{{logoAssetId}}" token, which titles and descriptions never are).
func resolveTemplateString(s string, tc TokenContext) (string, bool) {
	v := ResolveValue(s, tc)
	resolved, ok := v.(string)
	return resolved, ok
}

// copyProps makes a shallow copy of a section template's props map so
// ResolveValue never mutates the compiled template data it's handed.
func copyProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
