// Package commit implements the commit coordinator of spec §4.E: the
// state machine that migrates a Draft into a permanent Project +
// ProjectConfig exactly once, using a best-effort distributed lock layered
// on top of the relational store's draft_id uniqueness constraint as the
// actual correctness floor.
package commit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftstore"
	"github.com/siteforge/draftsvc/internal/sitebuilder/repository"
	"github.com/siteforge/draftsvc/internal/sitebuilder/template"
)

// Status distinguishes a first-time migration from an idempotent replay,
// driving the caller's choice between HTTP 201 and 200 (spec §4.E step 9).
type Status string

const (
	StatusMigrated         Status = "MIGRATED"
	StatusAlreadyCommitted Status = "ALREADY_COMMITTED"
)

// Result is what Commit returns on every non-error path.
type Result struct {
	ProjectID domain.ProjectID
	ConfigID  domain.ConfigID
	Status    Status
}

// Request is the commit request body of spec §6.1: `{owner:{userId,
// tenantId?}}` plus the optional Idempotency-Key header.
type Request struct {
	DraftID        domain.DraftID
	Owner          domain.Owner
	IdempotencyKey string
}

// Coordinator wires the collaborators the state machine needs: the draft
// store, the relational store, the template registry, and the Redis-backed
// commit lock and Idempotency-Key record.
type Coordinator struct {
	drafts    draftstore.Store
	relations repository.Store
	registry  *template.Registry
	locker    *Locker
	idemKeys  *idempotencyKeyStore
}

func NewCoordinator(drafts draftstore.Store, relations repository.Store, registry *template.Registry, redisClient redis.UniversalClient) *Coordinator {
	return &Coordinator{
		drafts:    drafts,
		relations: relations,
		registry:  registry,
		locker:    NewLocker(redisClient),
		idemKeys:  newIdempotencyKeyStore(redisClient),
	}
}

// Commit runs the state machine of spec §4.E. now is injected so callers
// can pin the generation/creation timestamp deterministically in tests.
func (c *Coordinator) Commit(ctx context.Context, req Request, now time.Time) (*Result, error) {
	if rec, err := c.idemKeys.find(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if rec != nil {
		return &Result{ProjectID: rec.ProjectID, ConfigID: rec.ConfigID, Status: StatusAlreadyCommitted}, nil
	}

	acquired, err := c.locker.Acquire(ctx, req.DraftID.String())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrCommitInProgress
	}
	releaseLock := func() {
		if err := c.locker.Release(ctx, req.DraftID.String()); err != nil {
			log.Printf("commit: release lock for %s: %v", req.DraftID, err)
		}
	}

	// step 2: idempotency check against the relational store.
	if existing, err := c.relations.FindByDraftID(ctx, req.DraftID); err == nil {
		releaseLock()
		result := &Result{ProjectID: existing.Project.ProjectID, ConfigID: existing.Config.ConfigID, Status: StatusAlreadyCommitted}
		c.idemKeys.remember(ctx, req.IdempotencyKey, idempotencyRecord{ProjectID: result.ProjectID, ConfigID: result.ConfigID})
		return result, nil
	} else if !errors.Is(err, repository.ErrProjectNotFound) {
		releaseLock()
		return nil, err
	}

	result, err := c.migrate(ctx, req, now)
	if err != nil {
		releaseLock()
		return nil, err
	}

	// step 7: delete draft, best-effort.
	if err := c.drafts.Delete(ctx, req.DraftID); err != nil {
		log.Printf("commit: delete draft %s after commit: %v", req.DraftID, err)
	}
	releaseLock()

	c.idemKeys.remember(ctx, req.IdempotencyKey, idempotencyRecord{ProjectID: result.ProjectID, ConfigID: result.ConfigID})
	return result, nil
}

// migrate runs steps 3-6: load, generate, hash, persist. The lock is held
// by the caller throughout.
func (c *Coordinator) migrate(ctx context.Context, req Request, now time.Time) (*Result, error) {
	draft, err := c.drafts.FindByID(ctx, req.DraftID, false)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrDraftNotFound
	}
	if draft.IsExpired(now) {
		return nil, domain.ErrDraftExpired
	}

	cfg, err := template.Generate(draft, c.registry, now)
	if err != nil {
		return nil, err
	}

	configJSON, err := canonicaljson.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("commit: canonicalize config: %w", err)
	}
	configHash, err := canonicaljson.SHA256Hex(cfg.DeterministicCopy())
	if err != nil {
		return nil, fmt.Errorf("commit: hash config: %w", err)
	}

	projectID, err := domain.NewProjectID()
	if err != nil {
		return nil, err
	}
	nowTrunc := now.UTC().Truncate(time.Millisecond)
	project := domain.Project{
		ProjectID: projectID,
		Owner:     req.Owner,
		DraftID:   req.DraftID,
		CreatedAt: nowTrunc,
		UpdatedAt: nowTrunc,
		Status:    domain.ProjectStatusDraft,
	}
	projectConfig := domain.ProjectConfig{
		ConfigID:        cfg.ConfigID,
		ProjectID:       projectID,
		SchemaVersion:   cfg.SchemaVersion,
		ConfigVersion:   cfg.ConfigVersion,
		TemplateID:      cfg.Generator.TemplateID,
		TemplateVersion: cfg.Generator.TemplateVersion,
		ConfigJSON:      json.RawMessage(configJSON),
		ConfigHash:      configHash,
		CreatedAt:       nowTrunc,
	}

	err = c.relations.InsertCommit(ctx, project, projectConfig)
	if errors.Is(err, repository.ErrAlreadyCommitted) {
		existing, findErr := c.relations.FindByDraftID(ctx, req.DraftID)
		if findErr != nil {
			return nil, findErr
		}
		return &Result{ProjectID: existing.Project.ProjectID, ConfigID: existing.Config.ConfigID, Status: StatusAlreadyCommitted}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Result{ProjectID: projectID, ConfigID: cfg.ConfigID, Status: StatusMigrated}, nil
}
