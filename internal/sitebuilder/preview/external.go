package preview

import (
	"context"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// ExternalRenderer is the optional alternate backend of spec §4.D's design
// note. Its actual module surface is left unspecified by design (spec §9
// open question (c)) — this is treated strictly as an opaque adapter: if
// Available reports false, or Render returns an error, the caller falls
// through to the built-in renderer deterministically.
type ExternalRenderer interface {
	Available(ctx context.Context) bool
	Render(ctx context.Context, cfg domain.SiteConfig, mode domain.PreviewMode) (string, error)
}

// NoExternalRenderer is the zero-value backend: always unavailable, so
// Render always takes the built-in path.
type NoExternalRenderer struct{}

func (NoExternalRenderer) Available(ctx context.Context) bool { return false }

func (NoExternalRenderer) Render(ctx context.Context, cfg domain.SiteConfig, mode domain.PreviewMode) (string, error) {
	return "", nil
}
