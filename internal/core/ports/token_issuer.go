package ports

import (
	"context"
	"time"

	"github.com/vendora/catalog-api/internal/core/domain"
)

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	// Verify fails with domain.ErrUnauthorized for any malformed, expired,
	// forged or revoked token.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenIssuer mints, verifies and revokes session tokens.
type TokenIssuer interface {
	TokenVerifier
	// Attempt checks the credentials and returns a signed token on match.
	Attempt(ctx context.Context, email, password string) (string, error)
	// Invalidate revokes the token before its expiry.
	Invalidate(ctx context.Context, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// RevocationList remembers revoked token IDs until they would have expired anyway.
type RevocationList interface {
	// Revoke reports false when the token ID was already revoked.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
