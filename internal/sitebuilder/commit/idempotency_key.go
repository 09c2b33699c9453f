package commit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// idempotencyKeyTTL is how long a client-supplied Idempotency-Key header
// is remembered — long enough to cover retries from a flaky client well
// past the commit lock's 30s window.
const idempotencyKeyTTL = 24 * time.Hour

func idempotencyRecordKey(key string) string {
	return "idem:commit:" + key
}

// idempotencyRecord is what gets stored under idem:commit:{key}: enough to
// replay the exact response of the first call that used this key.
type idempotencyRecord struct {
	ProjectID domain.ProjectID `json:"projectId"`
	ConfigID  domain.ConfigID  `json:"configId"`
}

// idempotencyKeyStore layers the client-supplied Idempotency-Key header
// (spec §6.1 "Optional Idempotency-Key header") on top of draftId
// uniqueness: a second commit call carrying the same key short-circuits to
// the first call's result without re-running steps 3-6, even for the same
// caller retrying before the draft was deleted or after it was.
type idempotencyKeyStore struct {
	client redis.UniversalClient
}

func newIdempotencyKeyStore(client redis.UniversalClient) *idempotencyKeyStore {
	return &idempotencyKeyStore{client: client}
}

// find returns the remembered result for key, or (nil, nil) if key is
// empty or has never been seen.
func (s *idempotencyKeyStore) find(ctx context.Context, key string) (*idempotencyRecord, error) {
	if key == "" {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, idempotencyRecordKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("commit: idempotency lookup: %w", err)
	}
	var rec idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, nil // corrupt record: treat as unseen rather than fail the commit
	}
	return &rec, nil
}

// remember is best-effort: a failure to write the idempotency record must
// never fail an otherwise-successful commit.
func (s *idempotencyKeyStore) remember(ctx context.Context, key string, rec idempotencyRecord) {
	if key == "" {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, idempotencyRecordKey(key), data, idempotencyKeyTTL).Err()
}
