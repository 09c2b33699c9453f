package template

import "strings"

// TokenContext is the closed vocabulary token resolution draws from (spec
// §4.C step 5). There is no user-defined token and no expression
// evaluation — just this fixed context map.
type TokenContext struct {
	BrandName     string
	IndustryLabel string
	LogoURL       string
	Slug          string
	// LogoAssetID is nil when the draft carries no logo.
	LogoAssetID *string
}

// ResolveValue recursively substitutes tokens through a props tree: maps,
// slices, and strings are walked; every other value passes through
// unchanged.
func ResolveValue(v any, tc TokenContext) any {
	switch t := v.(type) {
	case string:
		return resolveString(t, tc)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = ResolveValue(val, tc)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ResolveValue(val, tc)
		}
		return out
	default:
		return v
	}
}

// resolveString resolves a single string value. The whole-value special
// case for {{logoAssetId}} yields the asset id or JSON null, as opposed to
// a substring occurrence which yields the id's string form (empty string
// when absent).
func resolveString(s string, tc TokenContext) any {
	if s == "{{logoAssetId}}" {
		if tc.LogoAssetID != nil {
			return *tc.LogoAssetID
		}
		return nil
	}

	logoAssetIDForm := ""
	if tc.LogoAssetID != nil {
		logoAssetIDForm = *tc.LogoAssetID
	}

	replacer := strings.NewReplacer(
		"{{brandName}}", tc.BrandName,
		"{{industryLabel}}", tc.IndustryLabel,
		"{{logoUrl}}", tc.LogoURL,
		"{{slug}}", tc.Slug,
		"{{logoAssetId}}", logoAssetIDForm,
	)
	return replacer.Replace(s)
}
