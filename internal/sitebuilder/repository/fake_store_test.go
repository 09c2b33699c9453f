package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

func TestFakeStoreInsertThenFind(t *testing.T) {
	store := NewFakeStore()
	ctx := context.Background()
	projectID, err := domain.NewProjectID()
	require.NoError(t, err)

	project := domain.Project{
		ProjectID: projectID,
		Owner:     domain.Owner{UserID: "usr_A"},
		DraftID:   domain.DraftID("drf_x"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Status:    domain.ProjectStatusDraft,
	}
	config := domain.ProjectConfig{
		ConfigID:      domain.ConfigID("cfg_x"),
		SchemaVersion: 1,
		ConfigVersion: "1.0.0",
		TemplateID:    "default",
		ConfigHash:    "abc",
		CreatedAt:     time.Now(),
	}

	require.NoError(t, store.InsertCommit(ctx, project, config))

	got, err := store.FindByDraftID(ctx, "drf_x")
	require.NoError(t, err)
	require.Equal(t, projectID, got.Project.ProjectID)
	require.Equal(t, projectID, got.Config.ProjectID)
}

func TestFakeStoreInsertTwiceIsAlreadyCommitted(t *testing.T) {
	store := NewFakeStore()
	ctx := context.Background()
	projectID, err := domain.NewProjectID()
	require.NoError(t, err)
	project := domain.Project{ProjectID: projectID, DraftID: domain.DraftID("drf_y"), Status: domain.ProjectStatusDraft}
	config := domain.ProjectConfig{ConfigID: domain.ConfigID("cfg_y")}

	require.NoError(t, store.InsertCommit(ctx, project, config))

	otherProjectID, err := domain.NewProjectID()
	require.NoError(t, err)
	err = store.InsertCommit(ctx, domain.Project{ProjectID: otherProjectID, DraftID: domain.DraftID("drf_y")}, config)
	require.ErrorIs(t, err, ErrAlreadyCommitted)
}

func TestFakeStoreFindMissingReturnsNotFound(t *testing.T) {
	store := NewFakeStore()
	_, err := store.FindByDraftID(context.Background(), "drf_missing")
	require.ErrorIs(t, err, ErrProjectNotFound)
}
