// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the single typed session record threaded from the entrypoint
// into the store adapters. It is created when a token is verified at the
// boundary and never reconstructed from ambient state further in.
type Session struct {
	OwnerID   uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// SessionService defines the interface for issuing and verifying session tokens.
type SessionService interface {
	// Issue creates a signed session token for the given owner. Tokens are
	// normally issued by the identity provider; this is used by tooling
	// and the integration test suite.
	Issue(ctx context.Context, ownerID uuid.UUID, email string, ttl time.Duration) (string, error)

	// Verify validates a session token and returns the typed Session.
	Verify(ctx context.Context, token string) (*Session, error)
}
