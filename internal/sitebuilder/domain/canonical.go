package domain

import "github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"

// CanonicalJSON serializes the Draft through the shared canonical
// serializer (spec §4.A: "serialize to a canonical JSON form").
func (d *Draft) CanonicalJSON() ([]byte, error) {
	return canonicaljson.Marshal(d)
}

// CanonicalJSON serializes the SiteConfig through the shared canonical
// serializer. Callers computing the determinism hash or the commit
// coordinator's configHash should call DeterministicCopy first.
func (c SiteConfig) CanonicalJSON() ([]byte, error) {
	return canonicaljson.Marshal(c)
}
