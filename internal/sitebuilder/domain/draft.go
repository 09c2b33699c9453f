package domain

import "time"

const draftSchemaVersion = 1

// DraftStatus is always DraftStatusDraft in this core (spec §3.1: "status
// (always \"DRAFT\" in this core)") — the field is carried for forward
// compatibility with a fuller lifecycle this core does not implement.
type DraftStatus string

const DraftStatusDraft DraftStatus = "DRAFT"

// PreviewMode selects the preview renderer's output shape.
type PreviewMode string

const (
	PreviewModeHTML PreviewMode = "html"
	PreviewModeJSON PreviewMode = "json"
)

// GeneratorInfo records which engine and template produced (or will
// produce) this draft's configuration.
type GeneratorInfo struct {
	Engine        string `json:"engine"`
	EngineVersion string `json:"engineVersion"`
	TemplateID    string `json:"templateId"`
	Locale        string `json:"locale"`
}

// PreviewState is the draft's last-known preview bookkeeping. It is
// refreshed by GetPreview, never by GetDraft.
//
// ConfigSignature/ConfigID let GetPreview reuse the SiteConfig — and
// therefore the ETag — generated for this draft's current content instead
// of minting a fresh random ConfigID on every call, without keeping any
// per-process cache: both fields round-trip through the same shared
// record every other preview field does.
type PreviewState struct {
	Mode            PreviewMode `json:"mode"`
	URL             *string     `json:"url,omitempty"`
	LastGeneratedAt *time.Time  `json:"lastGeneratedAt,omitempty"`
	ETag            *string     `json:"etag,omitempty"`
	ConfigSignature *string     `json:"configSignature,omitempty"`
	ConfigID        *ConfigID   `json:"configId,omitempty"`
}

// DraftMeta carries provenance that never drives business logic.
type DraftMeta struct {
	IPHash        *string `json:"ipHash,omitempty"`
	UserAgentHash *string `json:"userAgentHash,omitempty"`
	Source        string  `json:"source"`
	Notes         *string `json:"notes,omitempty"`
}

// Draft is the primary temporary object (spec §3.1).
type Draft struct {
	SchemaVersion int           `json:"schemaVersion"`
	DraftID       DraftID       `json:"draftId"`
	Status        DraftStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	TTLSeconds    int           `json:"ttlSeconds"`
	BrandProfile  BrandProfile  `json:"brandProfile"`
	Generator     GeneratorInfo `json:"generator"`
	Preview       PreviewState  `json:"preview"`
	Meta          DraftMeta     `json:"meta"`
}

// NewDraft constructs a fresh Draft with createdAt = updatedAt = now and
// expiresAt = now + ttlSeconds, satisfying the invariants of spec §3.1.
func NewDraft(brand BrandProfile, ttlSeconds int, generator GeneratorInfo, meta DraftMeta, now time.Time) (*Draft, error) {
	if ttlSeconds <= 0 {
		return nil, invalid("ttlSeconds", "must be positive")
	}
	id, err := NewDraftID()
	if err != nil {
		return nil, err
	}
	now = truncMillis(now)
	if meta.Source == "" {
		meta.Source = "api"
	}
	return &Draft{
		SchemaVersion: draftSchemaVersion,
		DraftID:       id,
		Status:        DraftStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds:    ttlSeconds,
		BrandProfile:  brand,
		Generator:     generator,
		Preview:       PreviewState{Mode: PreviewModeHTML},
		Meta:          meta,
	}, nil
}

// Clone returns a deep-enough copy safe to mutate independently of d — the
// store and service layers never mutate a Draft they didn't just clone.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.BrandProfile.Logo != nil {
		logo := *d.BrandProfile.Logo
		c.BrandProfile.Logo = &logo
	}
	if d.Preview.URL != nil {
		u := *d.Preview.URL
		c.Preview.URL = &u
	}
	if d.Preview.LastGeneratedAt != nil {
		t := *d.Preview.LastGeneratedAt
		c.Preview.LastGeneratedAt = &t
	}
	if d.Preview.ETag != nil {
		e := *d.Preview.ETag
		c.Preview.ETag = &e
	}
	if d.Preview.ConfigSignature != nil {
		sig := *d.Preview.ConfigSignature
		c.Preview.ConfigSignature = &sig
	}
	if d.Preview.ConfigID != nil {
		id := *d.Preview.ConfigID
		c.Preview.ConfigID = &id
	}
	if d.Meta.IPHash != nil {
		v := *d.Meta.IPHash
		c.Meta.IPHash = &v
	}
	if d.Meta.UserAgentHash != nil {
		v := *d.Meta.UserAgentHash
		c.Meta.UserAgentHash = &v
	}
	if d.Meta.Notes != nil {
		v := *d.Meta.Notes
		c.Meta.Notes = &v
	}
	return &c
}

// Touch slides updatedAt/expiresAt forward from now, re-deriving expiresAt
// from ttlSeconds exactly per spec §3.1's invariant. Callers use this on a
// cloned Draft before persisting an Update or a TTL-sliding read.
func (d *Draft) Touch(now time.Time) {
	now = truncMillis(now)
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(time.Duration(d.TTLSeconds) * time.Second)
}

// WithBrandProfile returns a touched clone carrying a replaced brand
// profile — the only field Update is allowed to replace besides Preview.
func (d *Draft) WithBrandProfile(bp BrandProfile, now time.Time) *Draft {
	c := d.Clone()
	c.BrandProfile = bp
	c.Touch(now)
	return c
}

// WithPreview returns a touched clone carrying a replaced preview state.
func (d *Draft) WithPreview(p PreviewState, now time.Time) *Draft {
	c := d.Clone()
	c.Preview = p
	c.Touch(now)
	return c
}

// IsExpired reports whether expiresAt has elapsed as of now, the local
// clock-skew check spec §4.B requires on top of store-side expiration.
func (d *Draft) IsExpired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}

func truncMillis(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
