package preview

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// ComputeETag derives the weak ETag of spec §4.D: W/"{configId}:{sha256
// (canonical(deterministicConfig))[0..16]}". The hash is computed over
// cfg.DeterministicCopy() — the same input the commit coordinator's
// configHash uses (commit/coordinator.go) — so the two non-deterministic
// fields (configId, generatedAt) never leak into the hash itself. The
// caller is responsible for keeping cfg.ConfigID itself stable across
// repeated renders of an unchanged draft (draftservice persists the
// ConfigID on the draft record and reuses it for exactly this reason);
// ComputeETag only formats whatever ConfigID it's handed.
func ComputeETag(cfg domain.SiteConfig) (string, error) {
	raw, err := canonicaljson.Marshal(cfg.DeterministicCopy())
	if err != nil {
		return "", fmt.Errorf("preview: canonicalize config for etag: %w", err)
	}
	sum := sha256.Sum256(raw)
	hexSum := hex.EncodeToString(sum[:])
	return fmt.Sprintf(`W/"%s:%s"`, cfg.ConfigID.String(), hexSum[:16]), nil
}
