package preview

import (
	"context"
	"time"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// Result is the renderer's output contract: `{type, content|model,
// generatedAt, etag}` (spec §4.D).
type Result struct {
	Type        string    `json:"type"`
	Content     string    `json:"content,omitempty"`
	Model       *Model    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
	ETag        string    `json:"etag"`
}

// Render turns cfg into a preview in the requested mode. It performs no
// I/O of its own (spec §4.D "Contract"); in HTML mode an available external
// renderer is asked for the document first (see renderHTMLWithFallback).
func Render(ctx context.Context, cfg domain.SiteConfig, mode domain.PreviewMode, external ExternalRenderer, now time.Time) (*Result, error) {
	for _, page := range cfg.Pages {
		for _, section := range page.Sections {
			unsafe, err := containsUnsafePattern(section)
			if err != nil {
				return nil, err
			}
			if unsafe {
				return nil, domain.ErrPreviewUnsafe
			}
		}
	}

	etag, err := ComputeETag(cfg)
	if err != nil {
		return nil, err
	}

	model := buildModel(cfg)

	result := &Result{
		Type:        string(mode),
		GeneratedAt: now.UTC().Truncate(time.Millisecond),
		ETag:        etag,
	}

	switch mode {
	case domain.PreviewModeJSON:
		result.Model = &model
		return result, nil
	default:
		result.Content = renderHTMLWithFallback(ctx, cfg, model, external)
		return result, nil
	}
}

// renderHTMLWithFallback gives an available ExternalRenderer first crack at
// producing HTML; any unavailability, error, or output that still trips
// the unsafe-pattern scan falls through to the built-in template, so the
// external path is strictly non-observable when it succeeds (spec §4.D
// "Optional alternate backend").
func renderHTMLWithFallback(ctx context.Context, cfg domain.SiteConfig, model Model, external ExternalRenderer) string {
	if external != nil && external.Available(ctx) {
		html, err := external.Render(ctx, cfg, domain.PreviewModeHTML)
		if err == nil && html != "" && !matchesUnsafePatternString(html) {
			return html
		}
	}
	return renderHTML(model)
}

func matchesUnsafePatternString(s string) bool {
	b := []byte(s)
	for _, pat := range unsafePatterns {
		if pat.Match(b) {
			return true
		}
	}
	return false
}
