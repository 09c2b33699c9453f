package template

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveStringSubstitutesEveryOccurrence(t *testing.T) {
	tc := TokenContext{BrandName: "Acme", IndustryLabel: "Technology", LogoURL: "https://x/logo.png", Slug: "acme"}
	got := ResolveValue("{{brandName}} — {{industryLabel}} ({{slug}})", tc)
	require.Equal(t, "Acme — Technology (acme)", got)
}

func TestResolveLogoAssetIDWholeStringYieldsRawValue(t *testing.T) {
	id := "ast_123"
	tc := TokenContext{LogoAssetID: &id}
	require.Equal(t, "ast_123", ResolveValue("{{logoAssetId}}", tc))

	tcNil := TokenContext{}
	require.Nil(t, ResolveValue("{{logoAssetId}}", tcNil))
}

func TestResolveLogoAssetIDSubstringYieldsStringForm(t *testing.T) {
	id := "ast_123"
	tc := TokenContext{LogoAssetID: &id}
	require.Equal(t, "logo:ast_123", ResolveValue("logo:{{logoAssetId}}", tc))

	tcNil := TokenContext{}
	require.Equal(t, "logo:", ResolveValue("logo:{{logoAssetId}}", tcNil))
}

func TestResolveValueWalksNestedMapsAndSlices(t *testing.T) {
	tc := TokenContext{BrandName: "Acme"}
	in := map[string]any{
		"heading": "{{brandName}}",
		"items": []any{
			"{{brandName}} One",
			map[string]any{"nested": "{{brandName}} Two"},
		},
		"untouched": 42,
	}
	out := ResolveValue(in, tc).(map[string]any)
	require.Equal(t, "Acme", out["heading"])
	items := out["items"].([]any)
	require.Equal(t, "Acme One", items[0])
	require.Equal(t, "Acme Two", items[1].(map[string]any)["nested"])
	require.Equal(t, 42, out["untouched"])
}
