package draftstore

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func newTestDraft(t *testing.T, ttlSeconds int) *domain.Draft {
	t.Helper()
	bp, err := domain.NewBrandProfile("Acme", domain.NewIndustryInfo("tech", ""), nil)
	require.NoError(t, err)
	d, err := domain.NewDraft(*bp, ttlSeconds, domain.GeneratorInfo{Engine: "builtin"}, domain.DraftMeta{}, time.Now())
	require.NoError(t, err)
	return d
}

func TestSaveThenFindByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 60)

	require.NoError(t, store.Save(ctx, d))

	got, err := store.FindByID(ctx, d.DraftID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, d.DraftID, got.DraftID)
	require.Equal(t, "Acme", got.BrandProfile.BrandName)
}

func TestSaveTwiceFailsWithAlreadyExists(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 60)

	require.NoError(t, store.Save(ctx, d))
	err := store.Save(ctx, d)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestFindByIDAbsentReturnsNilNil(t *testing.T) {
	store, _ := newTestStore(t)
	got, err := store.FindByID(context.Background(), domain.DraftID("drf_missing"), false)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUpdateOnAbsentFails(t *testing.T) {
	store, _ := newTestStore(t)
	d := newTestDraft(t, 60)
	err := store.Update(context.Background(), d)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetDoesNotSlideTTLButPreviewSlideDoes(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 100)
	require.NoError(t, store.Save(ctx, d))

	mr.FastForward(40 * time.Second)

	before, err := store.GetTTL(ctx, d.DraftID)
	require.NoError(t, err)
	require.NotNil(t, before)
	require.InDelta(t, 60, before.Seconds(), 2)

	_, err = store.FindByID(ctx, d.DraftID, false)
	require.NoError(t, err)

	afterPlainGet, err := store.GetTTL(ctx, d.DraftID)
	require.NoError(t, err)
	require.InDelta(t, before.Seconds(), afterPlainGet.Seconds(), 1)

	_, err = store.FindByID(ctx, d.DraftID, true)
	require.NoError(t, err)

	afterSlide, err := store.GetTTL(ctx, d.DraftID)
	require.NoError(t, err)
	require.InDelta(t, 100, afterSlide.Seconds(), 2)
}

func TestExpiredDraftIsIndistinguishableFromAbsent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 2)
	require.NoError(t, store.Save(ctx, d))

	mr.FastForward(3 * time.Second)

	got, err := store.FindByID(ctx, d.DraftID, false)
	require.NoError(t, err)
	require.Nil(t, got)

	exists, err := store.Exists(ctx, d.DraftID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Delete(ctx, domain.DraftID("drf_never_existed")))

	d := newTestDraft(t, 30)
	require.NoError(t, store.Save(ctx, d))
	require.NoError(t, store.Delete(ctx, d.DraftID))
	require.NoError(t, store.Delete(ctx, d.DraftID))
}

func TestUpdateWithLockAppliesTransform(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 60)
	require.NoError(t, store.Save(ctx, d))

	newBP, err := domain.NewBrandProfile("New Name", domain.NewIndustryInfo("finance", ""), nil)
	require.NoError(t, err)

	updated, err := store.UpdateWithLock(ctx, d.DraftID, func(cur *domain.Draft) (*domain.Draft, error) {
		return cur.WithBrandProfile(*newBP, time.Now()), nil
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.BrandProfile.BrandName)

	got, err := store.FindByID(ctx, d.DraftID, false)
	require.NoError(t, err)
	require.Equal(t, "New Name", got.BrandProfile.BrandName)
}

func TestUpdateWithLockNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.UpdateWithLock(context.Background(), domain.DraftID("drf_missing"), func(cur *domain.Draft) (*domain.Draft, error) {
		return cur, nil
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWithLockPropagatesFnError(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 60)
	require.NoError(t, store.Save(ctx, d))

	sentinel := errors.New("boom")
	_, err := store.UpdateWithLock(ctx, d.DraftID, func(cur *domain.Draft) (*domain.Draft, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
}

// TestUpdateWithLockSerializesConcurrentWriters exercises the CAS loop
// under real concurrency: many goroutines race to increment a counter
// stashed in Meta.Notes, and no increment may be lost.
func TestUpdateWithLockSerializesConcurrentWriters(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	d := newTestDraft(t, 120)
	require.NoError(t, store.Save(ctx, d))

	const writers = 8
	var succeeded atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for { // retry at this layer too: CAS is bounded at 3 attempts per call
				_, err := store.UpdateWithLock(ctx, d.DraftID, func(cur *domain.Draft) (*domain.Draft, error) {
					count := 0
					if cur.Meta.Notes != nil {
						n, err := strconv.Atoi(*cur.Meta.Notes)
						if err != nil {
							return nil, err
						}
						count = n
					}
					next := cur.Clone()
					notes := strconv.Itoa(count + 1)
					next.Meta.Notes = &notes
					next.Touch(time.Now())
					return next, nil
				})
				if err == nil {
					succeeded.Add(1)
					return
				}
				if errors.Is(err, ErrConflict) {
					continue
				}
				return
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, writers, succeeded.Load())

	got, err := store.FindByID(ctx, d.DraftID, false)
	require.NoError(t, err)
	require.NotNil(t, got.Meta.Notes)
	require.Equal(t, strconv.Itoa(writers), *got.Meta.Notes)
}
