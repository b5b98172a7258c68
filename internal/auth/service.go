package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/apperror"
)

// User-facing auth messages.
const (
	MsgNotAllowListed     = "This email is not authorized as an admin"
	MsgAccountExists      = "An admin account already exists for this email"
	MsgInvalidCredentials = "Invalid email or password"
	MsgSessionExpired     = "Session expired, please login again"
	MsgSignupSucceeded    = "Admin account created successfully! Please login."
	MsgLoginSucceeded     = "Login successful!"
	MsgLogoutSucceeded    = "Logged out"
	invalidTokenMessage   = "invalid or expired token"
	sessionBackendFailure = "failed to verify session"
)

// AccountStore is the admin allow-list and credential store.
type AccountStore interface {
	AllowedName(ctx context.Context, email string) (string, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminAccount, error)
	Create(ctx context.Context, email, passwordHash string) (*models.AdminAccount, error)
}

// Sessions stores server-side admin sessions keyed by token ID.
type Sessions interface {
	Create(ctx context.Context, jti string, sess Session, ttl time.Duration) error
	Get(ctx context.Context, jti string) (*Session, error)
	Delete(ctx context.Context, jti string) error
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Admin     models.AdminPublic `json:"admin"`
}

// Service implements admin signup, login, logout and request authentication.
type Service struct {
	accounts AccountStore
	sessions Sessions
	jwt      *JWTService
	hasher   Hasher
	logger   *zap.Logger
}

// NewService creates an auth service.
func NewService(accounts AccountStore, sessions Sessions, jwt *JWTService, hasher Hasher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounts: accounts, sessions: sessions, jwt: jwt, hasher: hasher, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an admin account for an allow-listed email.
func (s *Service) Signup(ctx context.Context, form *validation.AdminSignupForm) (*models.AdminPublic, error) {
	if err := validation.Struct(form).Err(); err != nil {
		return nil, err
	}
	email := normalizeEmail(form.Email)

	name, ok, err := s.accounts.AllowedName(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("admin signup for unlisted email", zap.String("email", email))
		return nil, apperror.Forbidden(MsgNotAllowListed)
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.CodeAlreadyExists, MsgAccountExists, nil)
	} else if !apperror.Is(err, apperror.CodeNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}
	acct, err := s.accounts.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}
	if acct.Name == "" {
		acct.Name = name
	}
	s.logger.Info("admin account created", zap.String("email", email))
	pub := acct.ToPublic()
	return &pub, nil
}

// Login checks credentials, issues a token and opens a session for it.
func (s *Service) Login(ctx context.Context, form *validation.AdminLoginForm) (*LoginResult, error) {
	if err := validation.Struct(form).Err(); err != nil {
		return nil, err
	}
	email := normalizeEmail(form.Email)

	acct, err := s.accounts.GetByEmail(ctx, email)
	if apperror.Is(err, apperror.CodeNotFound) {
		return nil, apperror.Unauthorized(MsgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Check(form.Password, acct.PasswordHash) {
		s.logger.Warn("admin login failed", zap.String("email", email))
		return nil, apperror.Unauthorized(MsgInvalidCredentials)
	}

	token, claims, err := s.jwt.Generate(acct.ID, acct.Email)
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}
	sess := Session{
		AdminID:   acct.ID,
		Email:     acct.Email,
		CreatedAt: claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.sessions.Create(ctx, claims.ID, sess, s.jwt.TTL()); err != nil {
		return nil, apperror.Internal("failed to start session", err)
	}
	s.logger.Info("admin logged in", zap.String("email", acct.Email))
	return &LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, Admin: acct.ToPublic()}, nil
}

// Authenticate accepts a bearer token only when it is valid and its session still exists.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, apperror.Unauthorized(invalidTokenMessage)
	}
	sess, err := s.sessions.Get(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperror.Unauthorized(MsgSessionExpired)
	}
	if err != nil {
		s.logger.Error("session lookup failed", zap.Error(err))
		return nil, apperror.Internal(sessionBackendFailure, err)
	}
	if sess.AdminID != claims.AdminID {
		return nil, apperror.Unauthorized(invalidTokenMessage)
	}
	return claims, nil
}

// Logout ends the session of a token ID.
func (s *Service) Logout(ctx context.Context, jti string) error {
	if err := s.sessions.Delete(ctx, jti); err != nil {
		return apperror.Internal("failed to end session", err)
	}
	return nil
}
