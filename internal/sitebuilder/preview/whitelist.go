// Package preview implements the safe HTML/JSON preview renderer of spec
// §4.D: a closed section-type whitelist, recursive HTML escaping, an
// unsafe-content detector, and a weak ETag shared by both output formats.
package preview

// sectionWhitelist is the closed set of renderable section types. Anything
// else is silently dropped from the output (spec §4.D "Whitelist").
var sectionWhitelist = map[string]bool{
	"hero":         true,
	"features":     true,
	"about":        true,
	"contact":      true,
	"services":     true,
	"gallery":      true,
	"testimonials": true,
	"pricing":      true,
	"faq":          true,
	"team":         true,
	"footer":       true,
}

func isWhitelistedSectionType(t string) bool {
	return sectionWhitelist[t]
}

// radiusPixels is the fixed border-radius lookup table the HTML builder
// uses for the theme's Radius value.
var radiusPixels = map[string]string{
	"none": "0",
	"sm":   "4px",
	"md":   "8px",
	"lg":   "16px",
	"full": "9999px",
}

func radiusToCSS(radius string) string {
	if px, ok := radiusPixels[radius]; ok {
		return px
	}
	return radiusPixels["md"]
}
