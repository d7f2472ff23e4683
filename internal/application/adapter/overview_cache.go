// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned by OverviewCache.Get when no entry exists for the owner.
var ErrCacheMiss = errors.New("overview cache miss")

// OverviewCache caches the serialized dashboard view model per owner.
// The derivation layer always recomputes from scratch; the cache only
// short-circuits repeated loads between mutations.
type OverviewCache interface {
	// Get returns the cached serialized overview for the owner, or ErrCacheMiss.
	Get(ctx context.Context, ownerID uuid.UUID) ([]byte, error)

	// Set stores the serialized overview for the owner.
	Set(ctx context.Context, ownerID uuid.UUID, payload []byte) error

	// Invalidate drops the cached overview for the owner.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
