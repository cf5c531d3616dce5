package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vendora/catalog-api/internal/core/domain"
	"github.com/vendora/catalog-api/internal/core/ports"
)

// JWTIssuer signs HS256 bearer tokens for users and checks them against a
// revocation list.
type JWTIssuer struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	revoked ports.RevocationList
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type Option func(*JWTIssuer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) { i.now = now }
}

func NewJWTIssuer(users ports.UserRepository, hasher ports.PasswordHasher, revoked ports.RevocationList, secret string, ttl time.Duration, opts ...Option) *JWTIssuer {
	i := &JWTIssuer{
		users:   users,
		hasher:  hasher,
		revoked: revoked,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Attempt returns a token for the user when password matches. Unknown email
// and wrong password are indistinguishable to the caller.
func (i *JWTIssuer) Attempt(ctx context.Context, email, password string) (string, error) {
	user, err := i.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: find user: %w", domain.ErrInternal, err)
	}
	if !i.hasher.Compare(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return i.Issue(user.ID)
}

// Issue signs a fresh token for userID.
func (i *JWTIssuer) Issue(userID string) (string, error) {
	if len(i.secret) == 0 || userID == "" {
		return "", domain.ErrTokenCreation
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenCreation, err)
	}
	return signed, nil
}

// Verify resolves token into an identity. Any defect in the token itself is
// reported as domain.ErrUnauthorized; a failing revocation store is internal.
func (i *JWTIssuer) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := i.parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := i.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: check revocation: %w", domain.ErrInternal, err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Identity{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Invalidate revokes token for the rest of its lifetime.
func (i *JWTIssuer) Invalidate(ctx context.Context, token string) error {
	claims, err := i.parse(token)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}

	ttl := claims.ExpiresAt.Time.Sub(i.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	fresh, err := i.revoked.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return fmt.Errorf("%w: revoke token: %w", domain.ErrInternal, err)
	}
	if !fresh {
		return fmt.Errorf("%w: already revoked", domain.ErrTokenInvalid)
	}
	return nil
}

func (i *JWTIssuer) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("incomplete claims")
	}
	return claims, nil
}
