package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendora/catalog-api/internal/core/domain"
	"github.com/vendora/catalog-api/internal/core/ports"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
	seq       int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = "user-" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type bcryptStub struct{}

func (bcryptStub) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(b), err
}

func (bcryptStub) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// stubIssuer hands out "tok-<user id>" tokens and remembers revocations.
type stubIssuer struct {
	users     *stubUserRepo
	revoked   map[string]bool
	attemptFn func() error
}

func newStubIssuer(users *stubUserRepo) *stubIssuer {
	return &stubIssuer{users: users, revoked: make(map[string]bool)}
}

func (s *stubIssuer) Attempt(ctx context.Context, email, password string) (string, error) {
	if s.attemptFn != nil {
		if err := s.attemptFn(); err != nil {
			return "", err
		}
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil || !(bcryptStub{}).Compare(u.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return "tok-" + u.ID, nil
}

func (s *stubIssuer) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if s.revoked[token] || !strings.HasPrefix(token, "tok-") {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{UserID: strings.TrimPrefix(token, "tok-"), TokenID: token}, nil
}

func (s *stubIssuer) Invalidate(_ context.Context, token string) error {
	if s.revoked[token] || !strings.HasPrefix(token, "tok-") {
		return domain.ErrTokenInvalid
	}
	s.revoked[token] = true
	return nil
}

func newAccountFixture() (*AccountService, *stubUserRepo, *stubIssuer) {
	repo := newStubUserRepo()
	issuer := newStubIssuer(repo)
	return NewAccountService(repo, issuer, bcryptStub{}, zerolog.Nop()), repo, issuer
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return ve.Fields
}

func TestAccountService_Register_Success(t *testing.T) {
	svc, _, _ := newAccountFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: " Alice@Example.com ", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("unexpected timestamps: %v %v", user.CreatedAt, user.UpdatedAt)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc, repo, _ := newAccountFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "not-an-email", Password: "123"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	fields := fieldErrors(t, err)
	for _, f := range []string{"name", "email", "password"} {
		if len(fields[f]) == 0 {
			t.Fatalf("expected violation for %s, got %v", f, fields)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no user stored")
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newAccountFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{Name: "Bob 2", Email: "BOB@example.com", Password: "pass456"})
	fields := fieldErrors(t, err)
	if got := fields["email"]; len(got) != 1 || got[0] != "email has already been taken" {
		t.Fatalf("unexpected email violations: %v", got)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestAccountService_Register_StoreFailure(t *testing.T) {
	svc, repo, _ := newAccountFixture()
	repo.createErr = errors.New("connection reset")

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "pass123"})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	svc, _, _ := newAccountFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Authenticate(ctx, ports.LoginInput{Email: "Carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "tok-"+user.ID {
		t.Fatalf("unexpected token: %q", token)
	}

	if _, err := svc.Authenticate(ctx, ports.LoginInput{Email: "carol@example.com", Password: "wrong1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, ports.LoginInput{Email: "nobody@example.com", Password: "s3cret"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAccountService_Authenticate_Validation(t *testing.T) {
	svc, _, _ := newAccountFixture()

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Email: "bad"})
	fields := fieldErrors(t, err)
	if len(fields["email"]) == 0 || len(fields["password"]) == 0 {
		t.Fatalf("expected email and password violations, got %v", fields)
	}
}

func TestAccountService_Authenticate_TokenFailure(t *testing.T) {
	svc, _, issuer := newAccountFixture()
	issuer.attemptFn = func() error { return domain.ErrTokenCreation }

	_, err := svc.Authenticate(context.Background(), ports.LoginInput{Email: "dan@example.com", Password: "pass123"})
	if !errors.Is(err, domain.ErrTokenCreation) {
		t.Fatalf("expected ErrTokenCreation, got %v", err)
	}
}

func TestAccountService_Logout(t *testing.T) {
	svc, _, issuer := newAccountFixture()
	ctx := context.Background()

	if err := svc.Logout(ctx, "tok-user-1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := issuer.Verify(ctx, "tok-user-1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to fail verification, got %v", err)
	}

	if err := svc.Logout(ctx, "tok-user-1"); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal on second logout, got %v", err)
	}
}

func TestAccountService_Logout_MissingToken(t *testing.T) {
	svc, _, _ := newAccountFixture()

	err := svc.Logout(context.Background(), "  ")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Message != "Invalid token or missing token" {
		t.Fatalf("unexpected message: %q", ve.Message)
	}
}

func TestAccountService_CurrentUser(t *testing.T) {
	svc, _, _ := newAccountFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{Name: "Frank", Email: "frank@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.CurrentUser(ctx, &domain.Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if got.ID != user.ID || got.Email != "frank@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.CurrentUser(ctx, &domain.Identity{UserID: "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.CurrentUser(ctx, nil); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for nil identity, got %v", err)
	}
}
