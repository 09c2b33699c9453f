package preview

import (
	"fmt"
	"html"
	"regexp"

	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// unsafePatterns are the fixed patterns of the unsafe-content detector. A
// match in a section's serialized form makes Render return
// domain.ErrPreviewUnsafe (spec §4.D), which the HTTP boundary maps to 500.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

// containsUnsafePattern scans the canonical JSON serialization of a
// section for any of the fixed unsafe patterns (spec §4.D "Unsafe content
// detector").
func containsUnsafePattern(section domain.Section) (bool, error) {
	raw, err := canonicaljson.Marshal(section)
	if err != nil {
		return false, fmt.Errorf("preview: marshal section for scan: %w", err)
	}
	for _, pat := range unsafePatterns {
		if pat.Match(raw) {
			return true, nil
		}
	}
	return false, nil
}

// escapeRecursive HTML-escapes every string reachable from v — through
// maps and slices — leaving every other JSON scalar untouched (spec §4.D
// "Escaping").
func escapeRecursive(v any) any {
	switch t := v.(type) {
	case string:
		return html.EscapeString(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = escapeRecursive(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = escapeRecursive(val)
		}
		return out
	default:
		return v
	}
}

// escapeString is a direct helper for single already-known string fields
// (brand name, titles) that don't need the generic any-tree walk.
func escapeString(s string) string {
	return html.EscapeString(s)
}
