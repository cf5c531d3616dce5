package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/core/domain"
	"github.com/vendora/catalog-api/internal/core/ports"
	"github.com/vendora/catalog-api/internal/core/validation"
)

const logoutTokenMessage = "Invalid token or missing token"

// AccountService implements registration, login, logout and identity lookup.
type AccountService struct {
	users     ports.UserRepository
	tokens    ports.TokenIssuer
	hasher    ports.PasswordHasher
	validator *validation.Validator
	log       zerolog.Logger
}

func NewAccountService(users ports.UserRepository, tokens ports.TokenIssuer, hasher ports.PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		validator: validation.New(),
		log:       log,
	}
}

// Register validates the form, hashes the password and stores a new user.
// Duplicate emails are reported as a field violation, never as a created record.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	ve, err := s.collect(in)
	if err != nil {
		return nil, err
	}

	if _, badEmail := ve.Fields["email"]; !badEmail {
		exists, err := s.users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, internal("check email", err)
		}
		if exists {
			ve.Add("email", "email has already been taken")
		}
	}
	if !ve.Empty() {
		return nil, ve
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A duplicate key here means another registration won the race after
		// the uniqueness check above.
		s.log.Error().Err(err).Str("email", in.Email).Msg("failed to create user")
		return nil, internal("create user", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Authenticate exchanges valid credentials for a signed bearer token.
func (s *AccountService) Authenticate(ctx context.Context, in ports.LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)

	ve, err := s.collect(in)
	if err != nil {
		return "", err
	}
	if !ve.Empty() {
		return "", ve
	}

	token, err := s.tokens.Attempt(ctx, in.Email, in.Password)
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		s.log.Debug().Str("email", in.Email).Msg("login rejected")
		return "", domain.ErrInvalidCredentials
	case errors.Is(err, domain.ErrTokenCreation), errors.Is(err, domain.ErrInternal):
		s.log.Error().Err(err).Msg("login failed")
		return "", err
	default:
		s.log.Error().Err(err).Msg("login failed")
		return "", internal("attempt login", err)
	}
}

// Logout revokes token so later verification fails even before expiry.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &domain.ValidationError{Message: logoutTokenMessage}
	}

	if err := s.tokens.Invalidate(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate token")
		return internal("invalidate token", err)
	}
	return nil
}

// CurrentUser loads the user behind an already verified identity.
func (s *AccountService) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if identity == nil || identity.UserID == "" {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, internal("find user", err)
	}
	return user, nil
}

// collect runs struct validation and always hands back a ValidationError to
// append to, so callers can add checks that need the store.
func (s *AccountService) collect(in any) (*domain.ValidationError, error) {
	err := s.validator.Struct(in)
	if err == nil {
		return domain.NewValidationError(), nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve, nil
	}
	return nil, internal("validate", err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrInternal, op, err)
}
