// Package draftservice is the use-case layer sitting between the HTTP
// adapter and the core components: it resolves a blob-metadata asset
// reference, applies the optional-nullable patch semantics of spec §9 to
// an UpdateDraft call, and wires the draft store, generator, and renderer
// together for the preview path.
package draftservice

import (
	"context"
	"fmt"
	"time"

	"github.com/siteforge/draftsvc/internal/sitebuilder/assets"
	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftstore"
	"github.com/siteforge/draftsvc/internal/sitebuilder/preview"
	"github.com/siteforge/draftsvc/internal/sitebuilder/template"
)

// DefaultTTLSeconds is used when a CreateDraftInput doesn't specify one.
const DefaultTTLSeconds = 86400

type Service struct {
	drafts   draftstore.Store
	lookup   assets.Lookup
	registry *template.Registry
	external preview.ExternalRenderer
}

func NewService(drafts draftstore.Store, lookup assets.Lookup, registry *template.Registry, external preview.ExternalRenderer) *Service {
	if external == nil {
		external = preview.NoExternalRenderer{}
	}
	return &Service{drafts: drafts, lookup: lookup, registry: registry, external: external}
}

// LogoRef names a logo by asset id, the wire shape of the create/patch
// request bodies' `logo` field.
type LogoRef struct {
	AssetID string
}

// IndustryRef is the create/patch request bodies' `industry` field.
type IndustryRef struct {
	Code  string
	Label string
}

type CreateDraftInput struct {
	BrandName  string
	Industry   IndustryRef
	Logo       *LogoRef
	TTLSeconds int
	Source     string
}

func (s *Service) CreateDraft(ctx context.Context, in CreateDraftInput) (*domain.Draft, error) {
	logo, err := s.resolveLogo(ctx, in.Logo)
	if err != nil {
		return nil, err
	}

	bp, err := domain.NewBrandProfile(in.BrandName, domain.NewIndustryInfo(in.Industry.Code, in.Industry.Label), logo)
	if err != nil {
		return nil, err
	}

	ttl := in.TTLSeconds
	if ttl <= 0 {
		ttl = DefaultTTLSeconds
	}

	draft, err := domain.NewDraft(*bp, ttl, domain.GeneratorInfo{Engine: "builtin", EngineVersion: "1.0.0"}, domain.DraftMeta{Source: in.Source}, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("draftservice: save: %w", err)
	}
	return draft, nil
}

// PatchDraftInput carries the tagged-optional semantics of spec §9: a zero
// Optional means "field absent, no change".
type PatchDraftInput struct {
	BrandName domain.Optional[string]
	Industry  domain.Optional[IndustryRef]
	Logo      domain.Optional[*LogoRef]
}

func (s *Service) UpdateDraft(ctx context.Context, id domain.DraftID, patch PatchDraftInput) (*domain.Draft, error) {
	updated, err := s.drafts.UpdateWithLock(ctx, id, func(current *domain.Draft) (*domain.Draft, error) {
		bp := current.BrandProfile

		if patch.BrandName.IsSet() {
			name, err := domain.NormalizeBrandName(patch.BrandName.Value)
			if err != nil {
				return nil, err
			}
			bp.BrandName = name
		}
		if patch.Industry.IsSet() {
			bp.Industry = domain.NewIndustryInfo(patch.Industry.Value.Code, patch.Industry.Value.Label)
		}
		if patch.Logo.IsClear() {
			bp.Logo = nil
		} else if patch.Logo.IsSet() {
			logo, err := s.resolveLogo(ctx, patch.Logo.Value)
			if err != nil {
				return nil, err
			}
			bp.Logo = logo
		}

		return current.WithBrandProfile(bp, time.Now()), nil
	})

	if err != nil {
		return nil, translateStoreErr(err)
	}
	return updated, nil
}

// GetDraft reads a draft without sliding its TTL (spec §3.2: "GetDraft
// never slides the TTL").
func (s *Service) GetDraft(ctx context.Context, id domain.DraftID) (*domain.Draft, error) {
	draft, err := s.drafts.FindByID(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("draftservice: find: %w", err)
	}
	if draft == nil {
		return nil, domain.ErrDraftNotFound
	}
	return draft, nil
}

// GetPreview slides the TTL, generates the SiteConfig, renders it, and
// persists the refreshed preview bookkeeping on the draft (spec §3.2:
// "refreshed by... GetPreview").
func (s *Service) GetPreview(ctx context.Context, id domain.DraftID, mode domain.PreviewMode) (*preview.Result, error) {
	draft, err := s.drafts.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("draftservice: find for preview: %w", err)
	}
	if draft == nil {
		return nil, domain.ErrDraftNotFound
	}

	now := time.Now()
	cfg, signature, configID, err := s.generateOrReuseConfig(draft, now)
	if err != nil {
		return nil, err
	}

	result, err := preview.Render(ctx, cfg, mode, s.external, now)
	if err != nil {
		return nil, err
	}

	etag := result.ETag
	generatedAt := result.GeneratedAt
	_, updateErr := s.drafts.UpdateWithLock(ctx, id, func(current *domain.Draft) (*domain.Draft, error) {
		next := current.WithPreview(domain.PreviewState{
			Mode:            mode,
			ETag:            &etag,
			LastGeneratedAt: &generatedAt,
			ConfigSignature: &signature,
			ConfigID:        &configID,
		}, time.Now())
		return next, nil
	})
	if updateErr != nil && updateErr != draftstore.ErrNotFound && updateErr != draftstore.ErrConflict {
		// Bookkeeping failure doesn't invalidate an otherwise-successful
		// preview render — the caller already has a valid Result.
		return result, nil
	}

	return result, nil
}

// generateOrReuseConfig returns the SiteConfig for draft, reusing the
// ConfigID persisted on draft.Preview (the same shared record
// UpdateWithLock already round-trips PreviewState through) when its
// BrandProfile content signature still matches, and minting a fresh one
// otherwise. Keeping this state on the draft record rather than in a
// per-process cache is what makes ETag/ConfigID stability hold across
// instances behind a load balancer, not just within one process (spec §8
// Testable Property 6; spec "Shared resources": no per-process state that
// survives a request).
func (s *Service) generateOrReuseConfig(draft *domain.Draft, now time.Time) (domain.SiteConfig, string, domain.ConfigID, error) {
	signature, err := canonicaljson.SHA256Hex(draft.BrandProfile)
	if err != nil {
		return domain.SiteConfig{}, "", "", fmt.Errorf("draftservice: hash brand profile: %w", err)
	}

	configID := draft.Preview.ConfigID
	if configID == nil || draft.Preview.ConfigSignature == nil || *draft.Preview.ConfigSignature != signature {
		fresh, err := domain.NewConfigID()
		if err != nil {
			return domain.SiteConfig{}, "", "", fmt.Errorf("draftservice: mint config id: %w", err)
		}
		configID = &fresh
	}

	cfg, err := template.GenerateWithConfigID(draft, s.registry, now, *configID)
	if err != nil {
		return domain.SiteConfig{}, "", "", err
	}
	return *cfg, signature, *configID, nil
}

func (s *Service) resolveLogo(ctx context.Context, ref *LogoRef) (*domain.AssetInfo, error) {
	if ref == nil {
		return nil, nil
	}
	info, err := s.lookup.Lookup(ctx, ref.AssetID)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func translateStoreErr(err error) error {
	switch err {
	case draftstore.ErrNotFound:
		return domain.ErrDraftNotFound
	case draftstore.ErrConflict:
		return domain.NewKindedError(domain.KindInternal, "draft update lost the compare-and-set race after all retries")
	default:
		return err
	}
}
