// Package auth defines the session token contract used by the application
// layer. Tokens are opaque bearer strings: issued on login/registration,
// resolved on every authenticated request, and revoked on logout.
// The infrastructure layer implements the store (Redis with TTL).
package auth

import (
	"context"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// DefaultTokenTTL is how long a session token lives without being refreshed.
const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenStore issues and resolves opaque session tokens.
type TokenStore interface {
	// Issue creates a new token bound to the user with the given TTL.
	Issue(ctx context.Context, userID user.ID, ttl time.Duration) (string, error)

	// Resolve returns the user bound to the token, or
	// shared.ErrTokenNotFound when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (user.ID, error)

	// Refresh extends the token's TTL. Resolving a token on an authenticated
	// request should keep an active session alive.
	Refresh(ctx context.Context, token string, ttl time.Duration) error

	// Revoke deletes the token. Revoking an unknown token returns
	// shared.ErrTokenNotFound.
	Revoke(ctx context.Context, token string) error
}

// IDGenerator produces unique identifiers for new entities and tokens.
type IDGenerator interface {
	NewID() string
}
