package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/siteforge/draftsvc/internal/sitebuilder/canonicaljson"
	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

const draftKeyPrefix = "draft:"

func draftKey(id domain.DraftID) string {
	return draftKeyPrefix + id.String()
}

// RedisStore is the Store implementation backed by go-redis, generalizing
// the teacher's Pipeline-based repository (run_repo.go) to the
// set-if-absent / set-if-present / watch-CAS primitives spec §4.B demands.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already-configured redis client. Accepting
// redis.UniversalClient lets callers pass either a *redis.Client or a
// *redis.ClusterClient without this package caring which.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, draft *domain.Draft) error {
	data, err := serialize(draft)
	if err != nil {
		return err
	}
	ttl := ttlFor(draft, time.Now())
	if ttl <= 0 {
		return ErrAlreadyExists // nothing sane to store; treat like a race loss
	}
	ok, err := s.client.SetNX(ctx, draftKey(draft.DraftID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("draftstore: save: %w", err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, draft *domain.Draft) error {
	data, err := serialize(draft)
	if err != nil {
		return err
	}
	ttl := ttlFor(draft, time.Now())
	if ttl <= 0 {
		_ = s.client.Del(ctx, draftKey(draft.DraftID)).Err()
		return ErrNotFound
	}
	res := s.client.SetArgs(ctx, draftKey(draft.DraftID), data, redis.SetArgs{
		Mode: "XX",
		TTL:  ttl,
	})
	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("draftstore: update: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id domain.DraftID, slide bool) (*domain.Draft, error) {
	key := draftKey(id)

	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("draftstore: find: %w", err)
	}
	draft, perr := deserialize(raw)
	if perr != nil {
		_ = s.client.Del(ctx, key).Err()
		return nil, nil
	}
	if draft.IsExpired(time.Now()) {
		_ = s.client.Del(ctx, key).Err()
		return nil, nil
	}

	if !slide {
		return draft, nil
	}

	draft.Touch(time.Now())
	if err := s.Update(ctx, draft); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return draft, nil
}

func (s *RedisStore) Exists(ctx context.Context, id domain.DraftID) (bool, error) {
	n, err := s.client.Exists(ctx, draftKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("draftstore: exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, id domain.DraftID) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("draftstore: delete: %w", err)
	}
	return nil
}

func (s *RedisStore) GetTTL(ctx context.Context, id domain.DraftID) (*time.Duration, error) {
	ttl, err := s.client.TTL(ctx, draftKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("draftstore: ttl: %w", err)
	}
	if ttl < 0 {
		return nil, nil
	}
	return &ttl, nil
}

// UpdateWithLock implements the optimistic compare-and-set loop of spec
// §4.B using go-redis's WATCH/MULTI/EXEC wrapper (Watch). Each attempt
// reads the current value inside the watch, applies fn, and writes back
// inside a pipelined transaction; redis.TxFailedErr (another writer
// committed first) triggers a retry, up to maxCASAttempts.
func (s *RedisStore) UpdateWithLock(ctx context.Context, id domain.DraftID, fn UpdateFn) (*domain.Draft, error) {
	key := draftKey(id)
	var result *domain.Draft

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		txErr := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("draftstore: updateWithLock get: %w", err)
			}

			current, perr := deserialize(raw)
			if perr != nil {
				_, _ = tx.Pipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				return ErrNotFound
			}
			if current.IsExpired(time.Now()) {
				_, _ = tx.Pipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, key)
					return nil
				})
				return ErrNotFound
			}

			next, ferr := fn(current)
			if ferr != nil {
				return ferr
			}

			data, merr := serialize(next)
			if merr != nil {
				return merr
			}
			ttl := ttlFor(next, time.Now())
			if ttl <= 0 {
				return ErrNotFound
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, ttl)
				return nil
			})
			if err != nil {
				return err
			}
			result = next
			return nil
		}, key)

		if txErr == nil {
			return result, nil
		}
		if errors.Is(txErr, redis.TxFailedErr) {
			continue
		}
		return nil, txErr
	}

	return nil, ErrConflict
}

// serialize uses canonicaljson rather than plain encoding/json because
// spec §6.2 specifies the stored value as "canonical JSON of Draft" — the
// same sorted-key, HTML-unescaped form entity CanonicalJSON() and the
// generator's determinism hash use.
func serialize(d *domain.Draft) ([]byte, error) {
	b, err := canonicaljson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("draftstore: serialize: %w", err)
	}
	return b, nil
}

// deserialize returning a non-nil error means the stored blob is corrupt;
// callers must treat the key as if it never existed (spec §4.B "Failure
// semantics").
func deserialize(raw string) (*domain.Draft, error) {
	var d domain.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, err
	}
	return &d, nil
}
