package commit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
	"github.com/siteforge/draftsvc/internal/sitebuilder/draftstore"
	"github.com/siteforge/draftsvc/internal/sitebuilder/repository"
	"github.com/siteforge/draftsvc/internal/sitebuilder/template"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *draftstore.RedisStore, *repository.FakeStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	drafts := draftstore.NewRedisStore(client)
	relations := repository.NewFakeStore()
	registry := template.NewRegistry()
	return NewCoordinator(drafts, relations, registry, client), drafts, relations, mr
}

func newCommitTestDraft(t *testing.T, ttlSeconds int) *domain.Draft {
	t.Helper()
	bp, err := domain.NewBrandProfile("Acme", domain.NewIndustryInfo("tech", ""), nil)
	require.NoError(t, err)
	d, err := domain.NewDraft(*bp, ttlSeconds, domain.GeneratorInfo{Engine: "builtin"}, domain.DraftMeta{}, time.Now())
	require.NoError(t, err)
	return d
}

func TestCommitHappyPathMigratesThenDeletesDraft(t *testing.T) {
	coord, drafts, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	d := newCommitTestDraft(t, 3600)
	require.NoError(t, drafts.Save(ctx, d))

	res, err := coord.Commit(ctx, Request{DraftID: d.DraftID, Owner: domain.Owner{UserID: "usr_A"}}, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusMigrated, res.Status)

	exists, err := drafts.Exists(ctx, d.DraftID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestCommitIsIdempotentAcrossThreeCalls(t *testing.T) {
	coord, drafts, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	d := newCommitTestDraft(t, 3600)
	require.NoError(t, drafts.Save(ctx, d))

	req := Request{DraftID: d.DraftID, Owner: domain.Owner{UserID: "usr_A"}}

	r1, err := coord.Commit(ctx, req, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusMigrated, r1.Status)

	r2, err := coord.Commit(ctx, req, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusAlreadyCommitted, r2.Status)
	require.Equal(t, r1.ProjectID, r2.ProjectID)
	require.Equal(t, r1.ConfigID, r2.ConfigID)

	r3, err := coord.Commit(ctx, req, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusAlreadyCommitted, r3.Status)
	require.Equal(t, r1.ProjectID, r3.ProjectID)
}

func TestCommitMissingDraftReturnsNotFound(t *testing.T) {
	coord, _, _, _ := newTestCoordinator(t)
	_, err := coord.Commit(context.Background(), Request{DraftID: "drf_missing", Owner: domain.Owner{UserID: "usr_A"}}, time.Now())
	require.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestCommitExpiredDraftReturnsNotFound(t *testing.T) {
	coord, drafts, _, mr := newTestCoordinator(t)
	ctx := context.Background()
	d := newCommitTestDraft(t, 2)
	require.NoError(t, drafts.Save(ctx, d))
	mr.FastForward(3 * time.Second)

	_, err := coord.Commit(ctx, Request{DraftID: d.DraftID, Owner: domain.Owner{UserID: "usr_A"}}, time.Now())
	require.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestCommitIdempotencyKeyShortCircuitsEvenAfterDraftDeleted(t *testing.T) {
	coord, drafts, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	d := newCommitTestDraft(t, 3600)
	require.NoError(t, drafts.Save(ctx, d))

	req := Request{DraftID: d.DraftID, Owner: domain.Owner{UserID: "usr_A"}, IdempotencyKey: "idem-key-1"}
	r1, err := coord.Commit(ctx, req, time.Now())
	require.NoError(t, err)
	require.Equal(t, StatusMigrated, r1.Status)

	r2, err := coord.Commit(ctx, req, time.Now())
	require.NoError(t, err)
	require.Equal(t, r1.ProjectID, r2.ProjectID)
	require.Equal(t, r1.ConfigID, r2.ConfigID)
}

// TestConcurrentCommitsYieldExactlyOneMigration exercises the lock +
// unique-constraint combination of spec §8 invariant 1 and scenario 4: of
// many concurrent commit attempts for the same draft, exactly one sees
// MIGRATED and every other sees either CommitInProgress or
// ALREADY_COMMITTED, and all successful responses carry the same project.
func TestConcurrentCommitsYieldExactlyOneMigration(t *testing.T) {
	coord, drafts, _, _ := newTestCoordinator(t)
	ctx := context.Background()
	d := newCommitTestDraft(t, 3600)
	require.NoError(t, drafts.Save(ctx, d))

	const attempts = 20
	var migrated atomic.Int64
	projectIDs := make(chan domain.ProjectID, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := coord.Commit(ctx, Request{DraftID: d.DraftID, Owner: domain.Owner{UserID: "usr_A"}}, time.Now())
			if err != nil {
				require.True(t, errors.Is(err, domain.ErrCommitInProgress))
				return
			}
			projectIDs <- res.ProjectID
			if res.Status == StatusMigrated {
				migrated.Add(1)
			}
		}()
	}
	wg.Wait()
	close(projectIDs)

	require.Equal(t, int64(1), migrated.Load())
	var first domain.ProjectID
	for id := range projectIDs {
		if first == "" {
			first = id
		}
		require.Equal(t, first, id)
	}
}
