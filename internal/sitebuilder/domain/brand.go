package domain

import (
	"strings"
	"time"
	"unicode"
)

// AssetInfo describes a previously uploaded logo. The core never reads the
// referenced bytes — this record is the entirety of what it knows about an
// asset, fetched from the blob-metadata adapter (spec §1, §3.1).
type AssetInfo struct {
	AssetID    AssetID   `json:"assetId"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
	Bytes      int64     `json:"bytes"`
	SHA256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// BrandProfile is the normalized brand identity carried by a Draft.
type BrandProfile struct {
	SchemaVersion int          `json:"schemaVersion"`
	BrandName     string       `json:"brandName"`
	Industry      IndustryInfo `json:"industry"`
	Logo          *AssetInfo   `json:"logo,omitempty"`
}

const brandProfileSchemaVersion = 1

const (
	brandNameMinLen = 1
	brandNameMaxLen = 100
)

// NewBrandProfile normalizes brandName per spec §4.A and maps industry into
// the closed set. It is the only constructor: open question (b) notes the
// source's spurious numeric-first-argument variant is not carried forward.
func NewBrandProfile(brandName string, industry IndustryInfo, logo *AssetInfo) (*BrandProfile, error) {
	name, err := NormalizeBrandName(brandName)
	if err != nil {
		return nil, err
	}
	return &BrandProfile{
		SchemaVersion: brandProfileSchemaVersion,
		BrandName:     name,
		Industry:      NewIndustryInfo(string(industry.Code), industry.Label),
		Logo:          logo,
	}, nil
}

// NormalizeBrandName trims, strips C0/DEL control code points, collapses
// interior whitespace runs to a single space, and rejects a result outside
// 1..100 code points (spec §4.A, boundary behaviors in spec §8).
//
// The literal example from spec §8: "  Acme\x00  \t\tCo  " → "Acme Co".
//
// spec §4.A's prose also describes the 100-code-point bound as a silent
// truncation; §8's boundary table instead requires length 101 to produce
// InvalidInput. This implementation follows §8's explicit, testable
// boundary (reject) rather than §4.A's descriptive line (truncate) — see
// DESIGN.md.
func NormalizeBrandName(raw string) (string, error) {
	var b strings.Builder
	lastWasSpace := false
	for _, r := range raw {
		if isControlCodePoint(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
			b.WriteByte(' ')
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	name := strings.TrimSpace(b.String())

	runeLen := len([]rune(name))
	if runeLen < brandNameMinLen {
		return "", invalid("brandName", "must not be empty")
	}
	if runeLen > brandNameMaxLen {
		return "", invalid("brandName", "must not exceed 100 characters")
	}
	return name, nil
}

// isControlCodePoint reports U+0000..U+001F and U+007F — the C0 control
// range plus DEL — which NormalizeBrandName drops outright rather than
// treating as whitespace.
func isControlCodePoint(r rune) bool {
	return r <= 0x1F || r == 0x7F
}
