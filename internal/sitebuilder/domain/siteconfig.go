package domain

import "time"

const siteConfigSchemaVersion = 1

// ConfigGeneratorInfo names the engine and template that produced a
// SiteConfig, distinct from Draft.Generator in that it also fixes the
// specific templateVersion that was resolved.
type ConfigGeneratorInfo struct {
	Engine          string `json:"engine"`
	EngineVersion   string `json:"engineVersion"`
	TemplateID      string `json:"templateId"`
	TemplateVersion int    `json:"templateVersion"`
}

// ConfigBrand is the brand block emitted into a SiteConfig.
type ConfigBrand struct {
	Name     string     `json:"name"`
	Industry string     `json:"industry"`
	Slug     string     `json:"slug"`
	Logo     *AssetInfo `json:"logo,omitempty"`
}

// Routing controls how pages map onto URL paths.
type Routing struct {
	BasePath      string `json:"basePath"`
	TrailingSlash bool   `json:"trailingSlash"`
}

// SEO is the page-level search metadata block.
type SEO struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	OGImageAssetID *string `json:"ogImageAssetId"`
}

// Site is the site-wide content block.
type Site struct {
	Language    string  `json:"language"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Routing     Routing `json:"routing"`
	SEO         SEO     `json:"seo"`
}

// Palette is the theme's color set.
type Palette struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	MutedText  string `json:"mutedText"`
}

// Typography is the theme's font settings.
type Typography struct {
	FontFamily string `json:"fontFamily"`
	Scale      string `json:"scale"`
}

// Theme is the visual theme resolved from the template defaults.
type Theme struct {
	ThemeID    string     `json:"themeId"`
	Palette    Palette    `json:"palette"`
	Typography Typography `json:"typography"`
	Radius     string     `json:"radius"`
	Spacing    string     `json:"spacing"`
}

// Section is a single tagged-variant content block within a page. Type is
// checked against the preview renderer's closed whitelist (spec §4.D); an
// unrecognized Type here is not an error — it is a valid, generated
// section that the renderer will silently drop.
type Section struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Page is one route's worth of composed sections.
type Page struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// PublishingOutput names the rendered output format and its entry page.
type PublishingOutput struct {
	Format      string `json:"format"`
	EntryPageID string `json:"entryPageId"`
}

// PublishingConstraints caps how large a generated site may be.
type PublishingConstraints struct {
	MaxPages           int `json:"maxPages"`
	MaxSectionsPerPage int `json:"maxSectionsPerPage"`
}

// Publishing is the target-platform contract copied verbatim from the
// resolved template.
type Publishing struct {
	Target      string                 `json:"target"`
	Output      PublishingOutput       `json:"output"`
	Constraints PublishingConstraints  `json:"constraints"`
}

// SiteConfig is the publish-ready configuration derived deterministically
// from a Draft plus the registered templates (spec §3.1, §4.C).
type SiteConfig struct {
	SchemaVersion int                 `json:"schemaVersion"`
	ConfigVersion string              `json:"configVersion"`
	ConfigID      ConfigID            `json:"configId"`
	DraftID       DraftID             `json:"draftId"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	Generator     ConfigGeneratorInfo `json:"generator"`
	Brand         ConfigBrand         `json:"brand"`
	Site          Site                `json:"site"`
	Theme         Theme               `json:"theme"`
	Pages         []Page              `json:"pages"`
	Assets        []AssetInfo         `json:"assets"`
	Publishing    Publishing          `json:"publishing"`
}

// DeterministicCopy returns a copy with the two fields the determinism
// property excludes (configId, generatedAt) zeroed, so two generations of
// the same draft state hash identically (spec §4.C "Determinism
// property").
func (c SiteConfig) DeterministicCopy() SiteConfig {
	d := c
	d.ConfigID = ""
	d.GeneratedAt = time.Time{}
	return d
}

const CurrentConfigVersion = "1.0.0"
