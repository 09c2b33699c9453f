package repository

import (
	"context"
	"sync"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// FakeStore is an in-memory Store for tests that don't need a real
// Postgres instance — the projects/project_configs rows as one map keyed
// by draft id, guarded by a mutex, with the same draft_id-uniqueness semantics the
// real schema enforces.
type FakeStore struct {
	mu       sync.Mutex
	byDraft  map[domain.DraftID]CommittedProject
}

func NewFakeStore() *FakeStore {
	return &FakeStore{byDraft: make(map[domain.DraftID]CommittedProject)}
}

func (f *FakeStore) FindByDraftID(ctx context.Context, draftID domain.DraftID) (*CommittedProject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp, ok := f.byDraft[draftID]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return &cp, nil
}

func (f *FakeStore) InsertCommit(ctx context.Context, project domain.Project, config domain.ProjectConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byDraft[project.DraftID]; exists {
		return ErrAlreadyCommitted
	}
	config.ProjectID = project.ProjectID
	f.byDraft[project.DraftID] = CommittedProject{Project: project, Config: config}
	return nil
}
