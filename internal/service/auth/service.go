package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/paulita842/uptaskgraphql/internal/domain"
	"github.com/paulita842/uptaskgraphql/internal/repository"
	"github.com/paulita842/uptaskgraphql/pkg/config"
	"github.com/paulita842/uptaskgraphql/pkg/crypto"
	jwtpkg "github.com/paulita842/uptaskgraphql/pkg/jwt"
)

// RegisterMessage is the fixed signal returned on successful registration.
const RegisterMessage = "Usuario Creado Correctamente"

// Service handles account registration, login and per-request identity
// resolution.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// RegisterInput carries signup attributes.
type RegisterInput struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the login result handed back to the client.
type Credentials struct {
	Token string `json:"token"`
}

// Register creates a new account. The email must not already exist; the
// stored password is a bcrypt hash, never the plaintext.
func (s Service) Register(ctx context.Context, input RegisterInput) (string, error) {
	_, err := s.users.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return "", domain.ErrDuplicateAccount
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return RegisterMessage, nil
}

// Login authenticates an account and issues a signed token with the
// configured TTL.
func (s Service) Login(ctx context.Context, email, password string) (Credentials, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Credentials{}, domain.ErrAccountNotFound
		}
		return Credentials{}, err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return Credentials{}, domain.ErrInvalidCredentials
	}
	token, err := jwtpkg.GenerateToken(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return Credentials{}, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return Credentials{Token: token}, nil
}

// Identify resolves the raw authorization header into an identity. It is
// total: a missing header, a malformed value or a failed verification all
// yield an anonymous (nil) identity rather than an error. Whether
// anonymous is acceptable is decided by each service operation.
func (s Service) Identify(header string) *domain.Identity {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return nil
	}
	parts := strings.Fields(trimmed)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		s.logger.Warn("malformed authorization header")
		return nil
	}
	claims, err := jwtpkg.Parse(parts[1], s.cfg.JWTSecret)
	if err != nil {
		s.logger.Warn("token verification failed", "error", err)
		return nil
	}
	return &domain.Identity{ID: claims.UserID, Email: claims.Email}
}
