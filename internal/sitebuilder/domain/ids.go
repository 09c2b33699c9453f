package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Opaque, prefixed identifiers. The prefix is part of the wire contract
// (spec §3: drf_, cfg_, prj_, ast_) so callers can tell identifier classes
// apart without a schema lookup.
type (
	DraftID   string
	ConfigID  string
	ProjectID string
	AssetID   string
)

const (
	draftIDPrefix   = "drf"
	configIDPrefix  = "cfg"
	projectIDPrefix = "prj"
	assetIDPrefix   = "ast"
)

// newOpaqueID mirrors the hex-suffixed "prefix_hexstring" shape used
// throughout this codebase's identifier space: 16 random bytes, hex
// encoded, joined to the prefix with an underscore.
func newOpaqueID(prefix string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("domain: generate id: %w", err)
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b)), nil
}

// NewDraftID generates a fresh draft identifier.
func NewDraftID() (DraftID, error) {
	id, err := newOpaqueID(draftIDPrefix)
	return DraftID(id), err
}

// NewConfigID generates a fresh site-config identifier.
func NewConfigID() (ConfigID, error) {
	id, err := newOpaqueID(configIDPrefix)
	return ConfigID(id), err
}

// NewProjectID generates a fresh project identifier.
func NewProjectID() (ProjectID, error) {
	id, err := newOpaqueID(projectIDPrefix)
	return ProjectID(id), err
}

func (d DraftID) String() string   { return string(d) }
func (c ConfigID) String() string  { return string(c) }
func (p ProjectID) String() string { return string(p) }
func (a AssetID) String() string   { return string(a) }
