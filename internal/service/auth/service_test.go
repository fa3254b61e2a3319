package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/repository"
	"github.com/paulita842/uptaskgraphql/pkg/config"
	"github.com/paulita842/uptaskgraphql/pkg/crypto"
	jwtpkg "github.com/paulita842/uptaskgraphql/pkg/jwt"
)

type userRepoMock struct {
	createFunc     func(ctx context.Context, user *domain.User) error
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
}

func (m userRepoMock) CreateUser(ctx context.Context, user *domain.User) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, user)
}

func (m userRepoMock) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByEmailFunc(ctx, email)
}

func (m userRepoMock) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFunc == nil {
		return nil, repository.ErrNotFound
	}
	return m.getByIDFunc(ctx, id)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.APIConfig {
	return config.APIConfig{JWTSecret: "secreta", TokenTTL: 8 * time.Hour}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	var stored *domain.User
	repo := userRepoMock{
		createFunc: func(_ context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	msg, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if msg != RegisterMessage {
		t.Fatalf("unexpected message: %q", msg)
	}
	if stored == nil {
		t.Fatal("expected user to be persisted")
	}
	if stored.ID == "" {
		t.Fatal("expected generated id")
	}
	if string(stored.PasswordHash) == "pw1" {
		t.Fatal("plaintext password was stored")
	}
	if err := crypto.ComparePassword(stored.PasswordHash, "pw1"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw1"}); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestRegisterPropagatesRepositoryFailure(t *testing.T) {
	boom := errors.New("insert failed")
	repo := userRepoMock{
		createFunc: func(_ context.Context, _ *domain.User) error { return boom },
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "pw1"}); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	hash, err := crypto.HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	creds, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := jwtpkg.Parse(creds.Token, "secreta")
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())
	if _, err := svc.Login(context.Background(), "nadie@x.com", "pw1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := crypto.HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := New(repo, newLogger(), testConfig())

	if _, err := svc.Login(context.Background(), "a@x.com", "pw2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIdentifyResolvesValidToken(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())
	token, err := jwtpkg.GenerateToken("user-1", "a@x.com", "secreta", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	identity := svc.Identify("Bearer " + token)
	if identity == nil {
		t.Fatal("expected identity")
	}
	if identity.ID != "user-1" || identity.Email != "a@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestIdentifyIsTotal(t *testing.T) {
	svc := New(userRepoMock{}, newLogger(), testConfig())
	badToken, err := jwtpkg.GenerateToken("user-1", "a@x.com", "otra-secreta", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := map[string]string{
		"empty header":    "",
		"blank header":    "   ",
		"missing scheme":  "solo-un-token",
		"wrong scheme":    "Basic abc123",
		"invalid token":   "Bearer no-es-un-jwt",
		"wrong signature": "Bearer " + badToken,
		"too many fields": "Bearer a b",
	}
	for name, header := range cases {
		if identity := svc.Identify(header); identity != nil {
			t.Fatalf("%s: expected anonymous, got %+v", name, identity)
		}
	}
}
