package preview

import (
	"fmt"
	"strings"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// renderHTML composes the built-in document template of spec §4.D: a
// <style> block driven by the theme, and one block per whitelisted
// section, each produced by a fixed per-type builder. The brand name, site
// title and every section prop string placed into the markup have already
// passed through buildModel's escaping, so no builder below does its own
// escaping. Section ids and theme values come from the compiled templates
// and are written as they are, unescaped.
func renderHTML(model Model) string {
	var body strings.Builder
	for _, page := range model.Pages {
		for _, s := range page.Sections {
			body.WriteString(renderSection(s, model.Site.Title))
		}
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
%s
</body>
</html>`, model.Brand.Name, renderStyle(model.Theme), body.String())
}

func renderStyle(theme domain.Theme) string {
	return fmt.Sprintf(`
:root {
  --color-primary: %s;
  --color-accent: %s;
  --color-background: %s;
  --color-surface: %s;
  --color-text: %s;
  --color-muted: %s;
  --font-family: %s;
  --radius: %s;
  --spacing: %s;
}
body { background: var(--color-background); color: var(--color-text); font-family: var(--font-family); }
.block { border-radius: var(--radius); margin: var(--spacing); background: var(--color-surface); }
`,
		theme.Palette.Primary, theme.Palette.Accent, theme.Palette.Background,
		theme.Palette.Surface, theme.Palette.Text, theme.Palette.MutedText,
		theme.Typography.FontFamily, radiusToCSS(theme.Radius), theme.Spacing)
}

// renderSection dispatches a section to its fixed builder. siteTitle is
// the page's brandName+TitleSuffix title (spec §8 scenario 1); only the
// hero builder uses it, in place of the hero section's own heading prop.
func renderSection(s SanitizedSection, siteTitle string) string {
	switch s.Type {
	case "hero":
		return renderHero(s, siteTitle)
	case "features":
		return renderHeadingAndList(s, "features")
	case "about":
		return renderHeadingAndBody(s, "about")
	case "contact":
		return renderContact(s)
	case "services":
		return renderHeadingAndList(s, "services")
	case "gallery":
		return renderHeadingAndList(s, "gallery")
	case "testimonials":
		return renderHeadingAndList(s, "testimonials")
	case "pricing":
		return renderHeadingAndList(s, "pricing")
	case "faq":
		return renderHeadingAndList(s, "faq")
	case "team":
		return renderHeadingAndList(s, "team")
	case "footer":
		return renderFooter(s)
	default:
		// Unreachable: buildModel already drops non-whitelisted types.
		return ""
	}
}

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func propStringList(props map[string]any, key string) []string {
	v, ok := props[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// renderHero's <h1> is the site title (brandName + the template's
// TitleSuffix), not the hero section's own "heading" prop — spec §8
// scenario 1 requires the suffixed form in the rendered <h1>.
func renderHero(s SanitizedSection, siteTitle string) string {
	sub := propString(s.Props, "subheading")
	cta := propString(s.Props, "ctaLabel")
	return fmt.Sprintf(`<section class="block hero" id="%s"><h1>%s</h1><p>%s</p><button>%s</button></section>
`, s.ID, siteTitle, sub, cta)
}

func renderHeadingAndBody(s SanitizedSection, cssClass string) string {
	heading := propString(s.Props, "heading")
	body := propString(s.Props, "body")
	return fmt.Sprintf(`<section class="block %s" id="%s"><h2>%s</h2><p>%s</p></section>
`, cssClass, s.ID, heading, body)
}

func renderHeadingAndList(s SanitizedSection, cssClass string) string {
	heading := propString(s.Props, "heading")
	items := propStringList(s.Props, "items")
	var li strings.Builder
	for _, item := range items {
		li.WriteString(fmt.Sprintf("<li>%s</li>", item))
	}
	return fmt.Sprintf(`<section class="block %s" id="%s"><h2>%s</h2><ul>%s</ul></section>
`, cssClass, s.ID, heading, li.String())
}

func renderContact(s SanitizedSection) string {
	heading := propString(s.Props, "heading")
	cta := propString(s.Props, "cta")
	return fmt.Sprintf(`<section class="block contact" id="%s"><h2>%s</h2><p>%s</p></section>
`, s.ID, heading, cta)
}

func renderFooter(s SanitizedSection) string {
	text := propString(s.Props, "text")
	return fmt.Sprintf(`<footer class="block footer" id="%s"><p>%s</p></footer>
`, s.ID, text)
}
