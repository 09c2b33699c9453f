package domain

import (
	"encoding/json"
	"time"
)

// ProjectStatus is the permanent lifecycle state of a committed Project.
// This core only ever writes ProjectStatusDraft at commit time; later
// transitions belong to the hosting/publishing subsystem out of scope here.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusReady     ProjectStatus = "READY"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// Owner identifies the externally-issued user (and optional tenant) that a
// committed Project belongs to.
type Owner struct {
	UserID   string  `json:"userId"`
	TenantID *string `json:"tenantId,omitempty"`
}

// Project is the permanent record created exactly once per origin Draft
// (spec §3.1, §3.2).
type Project struct {
	ProjectID ProjectID     `json:"projectId"`
	Owner     Owner         `json:"owner"`
	DraftID   DraftID       `json:"draftId"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Status    ProjectStatus `json:"status"`
}

// ProjectConfig is the permanent, immutable record of the SiteConfig that
// was live at commit time.
type ProjectConfig struct {
	ConfigID        ConfigID        `json:"configId"`
	ProjectID       ProjectID       `json:"projectId"`
	SchemaVersion   int             `json:"schemaVersion"`
	ConfigVersion   string          `json:"configVersion"`
	TemplateID      string          `json:"templateId"`
	TemplateVersion int             `json:"templateVersion"`
	ConfigJSON      json.RawMessage `json:"configJson"`
	ConfigHash      string          `json:"configHash"`
	CreatedAt       time.Time       `json:"createdAt"`
}
