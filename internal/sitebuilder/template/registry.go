package template

import "github.com/siteforge/draftsvc/internal/sitebuilder/domain"

// SectionTemplate is a tokenized section blueprint (spec §4.C).
type SectionTemplate struct {
	ID    string
	Type  string
	Props map[string]any
}

// PageTemplate is a tokenized page blueprint.
type PageTemplate struct {
	ID       string
	Path     string
	Title    string
	Sections []SectionTemplate
}

// ThemeDefaults mirrors domain.Theme but is the template's own copy,
// copied verbatim into the generated config (spec §4.C step 4).
type ThemeDefaults struct {
	ThemeID    string
	Palette    domain.Palette
	Typography domain.Typography
	Radius     string
	Spacing    string
}

// TemplateDefinition is a registered, versioned, industry-specific set of
// defaults and blueprints (spec §4.C.2, GLOSSARY "Template").
type TemplateDefinition struct {
	TemplateID      string
	TemplateVersion int
	Theme           ThemeDefaults
	// TitleSuffix fills "{brandName} — {templateSuffix}" (step 7).
	TitleSuffix string
	// Description is tokenized before being emitted as site.description.
	Description string
	Pages       []PageTemplate
	Publishing  domain.Publishing
}

const defaultTemplateID = "default"

// Registry is a pure, immutable, freely-shared lookup over the compiled
// template set (spec "Shared resources": "Template registry: loaded once,
// immutable, freely shared").
type Registry struct {
	byIndustry map[domain.IndustryCode]string
	byID       map[string]TemplateDefinition
}

// NewRegistry builds a registry from the compiled-in template table.
func NewRegistry() *Registry {
	r := &Registry{
		byIndustry: make(map[domain.IndustryCode]string),
		byID:       make(map[string]TemplateDefinition),
	}
	for _, def := range builtinTemplates {
		r.byID[def.TemplateID] = def
	}
	for code, templateID := range builtinIndustryMap {
		r.byIndustry[code] = templateID
	}
	return r
}

// LookupByIndustry maps an industry code to a (templateId, templateVersion)
// pair. An unmapped code falls back to the default template (spec §4.C
// step 2).
func (r *Registry) LookupByIndustry(code domain.IndustryCode) (string, int) {
	templateID, ok := r.byIndustry[code]
	if !ok {
		templateID = defaultTemplateID
	}
	def, ok := r.byID[templateID]
	if !ok {
		def = r.byID[defaultTemplateID]
	}
	return def.TemplateID, def.TemplateVersion
}

// Load returns the named template, falling back to default for an unknown
// id (spec §4.C.2: "loading an unknown id returns the default template
// (with a diagnostic)"). ok reports whether templateID was actually found.
func (r *Registry) Load(templateID string) (TemplateDefinition, bool) {
	def, ok := r.byID[templateID]
	if !ok {
		return r.byID[defaultTemplateID], false
	}
	return def, true
}
