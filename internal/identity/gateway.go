// Package identity resolves bearer credentials and display names through the
// external auth service.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Role of an authenticated caller.
type Role string

const (
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

// Identity is a verified caller identity.
type Identity struct {
	UserID      uuid.UUID
	Role        Role
	DisplayName string
	ExpiresIn   int64
}

// Gateway is the narrow contract the services depend on, so the core can be
// tested against a fake implementation.
type Gateway interface {
	// Verify resolves a bearer token to a caller identity. Any failure to
	// verify, including timeouts, denies the caller.
	Verify(ctx context.Context, token string) (Identity, error)
	// ResolveDisplayName looks up a third party's display name by id.
	ResolveDisplayName(ctx context.Context, userID uuid.UUID, token string) (string, error)
}
