// Package draftstore implements the TTL-backed key-value persistence of
// spec §4.B: a sliding-TTL mapping draft:{id} -> canonical JSON, with the
// three atomic primitives the spec requires (set-if-absent-with-TTL,
// set-if-present-with-TTL, and a watch/compare-and-set transaction).
package draftstore

import (
	"context"
	"errors"
	"time"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

var (
	// ErrAlreadyExists is returned by Save when the draft's key is already
	// present.
	ErrAlreadyExists = errors.New("draftstore: draft already exists")
	// ErrNotFound is returned by Update and UpdateWithLock when the
	// draft's key is absent or has semantically expired.
	ErrNotFound = errors.New("draftstore: draft not found")
	// ErrConflict is returned by UpdateWithLock when all compare-and-set
	// attempts lost the race.
	ErrConflict = errors.New("draftstore: concurrent update conflict")
)

// UpdateFn transforms the current draft into its next state. It must not
// mutate its argument — Store implementations may retry it against a fresh
// read on CAS conflict.
type UpdateFn func(current *domain.Draft) (*domain.Draft, error)

// Store is the contract of spec §4.B.
type Store interface {
	// Save persists a brand-new draft with its initial TTL. Fails with
	// ErrAlreadyExists if the key is already present.
	Save(ctx context.Context, draft *domain.Draft) error

	// Update replaces a draft's stored value and refreshes its TTL. Fails
	// with ErrNotFound if the key is absent.
	Update(ctx context.Context, draft *domain.Draft) error

	// FindByID loads a draft. When slide is true and the draft is found,
	// its TTL is reset to ttlSeconds; a bare read (slide=false) never
	// mutates TTL. Returns (nil, nil) — not an error — when absent.
	FindByID(ctx context.Context, id domain.DraftID, slide bool) (*domain.Draft, error)

	// Exists reports whether id currently has a live record.
	Exists(ctx context.Context, id domain.DraftID) (bool, error)

	// Delete removes a draft. Idempotent: deleting an absent key is not an
	// error.
	Delete(ctx context.Context, id domain.DraftID) error

	// GetTTL returns the remaining TTL, or nil if the draft is absent.
	GetTTL(ctx context.Context, id domain.DraftID) (*time.Duration, error)

	// UpdateWithLock applies fn to the current draft atomically, making
	// at most 3 attempts in total when compare-and-set races are lost. Returns ErrNotFound if
	// the draft is absent, ErrConflict if every attempt lost the race, or
	// whatever error fn itself returned.
	UpdateWithLock(ctx context.Context, id domain.DraftID, fn UpdateFn) (*domain.Draft, error)
}

// maxCASAttempts bounds UpdateWithLock's retry loop (spec §4.B: "≤3
// attempts").
const maxCASAttempts = 3

// ttlFor derives the TTL to apply to a stored draft: the shorter of
// ttlSeconds and the time remaining until expiresAt, per spec §4.B
// ("Design": "The TTL is whatever is shorter of ttlSeconds or expiresAt -
// now"). A non-positive result means the draft is already semantically
// expired.
func ttlFor(d *domain.Draft, now time.Time) time.Duration {
	byTTLSeconds := time.Duration(d.TTLSeconds) * time.Second
	byExpiresAt := d.ExpiresAt.Sub(now)
	if byExpiresAt < byTTLSeconds {
		return byExpiresAt
	}
	return byTTLSeconds
}
