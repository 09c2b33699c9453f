// Package repository implements the relational persistence of spec §6.2:
// the projects/project_configs tables that a Commit writes atomically and
// that back the commit coordinator's idempotency check.
package repository

import (
	"context"
	"errors"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// ErrProjectNotFound is returned by FindByDraftID when no project exists
// for the given draft id.
var ErrProjectNotFound = errors.New("repository: project not found")

// CommittedProject is the pair of rows a successful commit produces,
// joined for convenience.
type CommittedProject struct {
	Project domain.Project
	Config  domain.ProjectConfig
}

// Store is the relational contract spec §4.E's commit coordinator depends
// on. InsertCommit is the single atomic write of step 6; FindByDraftID
// backs the idempotency check of step 2 and the uniqueness-violation
// replay of step 6.
type Store interface {
	// FindByDraftID looks up the committed project for draftId, if any.
	// Returns ErrProjectNotFound when absent.
	FindByDraftID(ctx context.Context, draftID domain.DraftID) (*CommittedProject, error)

	// InsertCommit atomically inserts the Project and ProjectConfig rows.
	// If another writer already committed this draftId (a unique
	// violation on projects.draft_id), InsertCommit returns
	// ErrAlreadyCommitted instead of failing the caller outright.
	InsertCommit(ctx context.Context, project domain.Project, config domain.ProjectConfig) error
}

// ErrAlreadyCommitted signals the draft_id unique-violation race of spec
// §4.E step 6: "If the uniqueness constraint fires... treat as idempotent."
var ErrAlreadyCommitted = errors.New("repository: project already committed for this draft")
