package preview

import "github.com/siteforge/draftsvc/internal/sitebuilder/domain"

// SanitizedSection is a whitelisted section with every string in Props
// HTML-escaped. Sections whose Type fails the whitelist never reach this
// struct — they're dropped upstream.
type SanitizedSection struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// SanitizedPage mirrors domain.Page with its sections filtered and
// escaped.
type SanitizedPage struct {
	ID       string             `json:"id"`
	Path     string             `json:"path"`
	Title    string             `json:"title"`
	Sections []SanitizedSection `json:"sections"`
}

// SanitizedBrand is the escaped brand block of the JSON preview model.
type SanitizedBrand struct {
	Name     string            `json:"name"`
	Industry string            `json:"industry"`
	Slug     string            `json:"slug"`
	Logo     *domain.AssetInfo `json:"logo,omitempty"`
}

// SanitizedSite is the escaped site-level block, carrying the
// brandName+TitleSuffix title spec §8 scenario 1 requires the hero
// heading to show, distinct from any section's own heading prop.
type SanitizedSite struct {
	Title string `json:"title"`
}

// Model is the sanitized `{brand, site, theme, pages}` structure spec
// §4.D's JSON output returns.
type Model struct {
	Brand SanitizedBrand  `json:"brand"`
	Site  SanitizedSite   `json:"site"`
	Theme domain.Theme    `json:"theme"`
	Pages []SanitizedPage `json:"pages"`
}

// buildModel walks cfg into the sanitized model, dropping non-whitelisted
// sections and HTML-escaping every string in section props plus the brand
// name, industry, page titles and site title. Ids, paths, the slug, the
// logo record and the theme are copied unescaped.
func buildModel(cfg domain.SiteConfig) Model {
	pages := make([]SanitizedPage, 0, len(cfg.Pages))
	for _, p := range cfg.Pages {
		sections := make([]SanitizedSection, 0, len(p.Sections))
		for _, s := range p.Sections {
			if !isWhitelistedSectionType(s.Type) {
				continue
			}
			props, _ := escapeRecursive(copyAny(s.Props)).(map[string]any)
			sections = append(sections, SanitizedSection{
				ID:    s.ID,
				Type:  s.Type,
				Props: props,
			})
		}
		pages = append(pages, SanitizedPage{
			ID:       p.ID,
			Path:     p.Path,
			Title:    escapeString(p.Title),
			Sections: sections,
		})
	}
	return Model{
		Brand: SanitizedBrand{
			Name:     escapeString(cfg.Brand.Name),
			Industry: escapeString(cfg.Brand.Industry),
			Slug:     cfg.Brand.Slug,
			Logo:     cfg.Brand.Logo,
		},
		Site:  SanitizedSite{Title: escapeString(cfg.Site.Title)},
		Theme: cfg.Theme,
		Pages: pages,
	}
}

func copyAny(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
