package template

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugMaxLen = 50
const slugFallback = "site"

// cyrillicToLatin is the fixed transliteration table of spec §4.C.1,
// covering the Russian Cyrillic alphabet. It's applied to the
// already-lowercased input, so only lowercase keys are needed.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "i", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// combiningMarkStripper decomposes to NFD, drops all Unicode "Mn"
// (nonspacing mark) runes, and recomposes — it is how accented Latin
// letters that survive transliteration (e.g. "é") become plain ASCII
// before the non-alphanumeric collapse below.
var combiningMarkStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug derives a URL-safe slug from a brand name (spec §4.C.1). It is a
// total function: every input, including one that slugifies to nothing,
// produces a non-empty result.
func Slug(brandName string) string {
	s := strings.ToLower(brandName)
	s = transliterate(s)
	s, _, _ = transform.String(combiningMarkStripper, s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	runes := []rune(s)
	if len(runes) > slugMaxLen {
		s = strings.Trim(string(runes[:slugMaxLen]), "-")
	}
	if s == "" {
		return slugFallback
	}
	return s
}

func transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := cyrillicToLatin[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
