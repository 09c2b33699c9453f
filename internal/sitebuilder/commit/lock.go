package commit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a commit lock survives an abandoned attempt
// (spec §4.E step 1: "EX 30s").
const lockTTL = 30 * time.Second

func lockKey(draftID string) string {
	return "lock:commit:" + draftID
}

// Locker is the named distributed mutex of spec §4.E, GLOSSARY "Commit
// lock": a correctness *optimization*, not the correctness mechanism —
// the relational unique constraint is (spec §9 "Locks").
type Locker struct {
	client redis.UniversalClient
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client}
}

// Acquire attempts `SETNX lock:commit:{draftId} = 1 EX 30s`. ok is false
// when the lock is already held by another attempt.
func (l *Locker) Acquire(ctx context.Context, draftID string) (ok bool, err error) {
	ok, err = l.client.SetNX(ctx, lockKey(draftID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("commit: acquire lock: %w", err)
	}
	return ok, nil
}

// Release is best-effort: failures are logged and swallowed by the caller
// per spec §7's propagation policy, never surfaced as a commit failure.
func (l *Locker) Release(ctx context.Context, draftID string) error {
	if err := l.client.Del(ctx, lockKey(draftID)).Err(); err != nil {
		return fmt.Errorf("commit: release lock: %w", err)
	}
	return nil
}
