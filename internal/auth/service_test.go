package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/internal/validation"
	"github.com/tournamentpro/backend/pkg/apperror"
)

type memAccounts struct {
	mu       sync.Mutex
	allowed  map[string]string
	accounts map[string]*models.AdminAccount
}

func newMemAccounts(allowed map[string]string) *memAccounts {
	return &memAccounts{allowed: allowed, accounts: map[string]*models.AdminAccount{}}
}

func (m *memAccounts) AllowedName(_ context.Context, email string) (string, bool, error) {
	name, ok := m.allowed[strings.ToLower(email)]
	return name, ok, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*models.AdminAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return nil, apperror.NotFound("admin account not found")
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) Create(_ context.Context, email, hash string) (*models.AdminAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.allowed[email]
	if !ok {
		return nil, apperror.Forbidden(MsgNotAllowListed)
	}
	if _, exists := m.accounts[email]; exists {
		return nil, apperror.New(apperror.CodeAlreadyExists, MsgAccountExists, nil)
	}
	now := time.Now()
	a := &models.AdminAccount{ID: uuid.New(), Email: email, PasswordHash: hash, Name: name, CreatedAt: now, UpdatedAt: now}
	m.accounts[email] = a
	cp := *a
	return &cp, nil
}

type memSessions struct {
	mu   sync.Mutex
	data map[string]Session
}

func (m *memSessions) Create(_ context.Context, jti string, sess Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[jti] = sess
	return nil
}

func (m *memSessions) Get(_ context.Context, jti string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[jti]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, jti)
	return nil
}

func newTestService() (*Service, *memSessions) {
	accounts := newMemAccounts(map[string]string{"organiser@example.com": "Organiser"})
	sessions := &memSessions{data: map[string]Session{}}
	return NewService(accounts, sessions, NewJWTService("test-secret", 1), NewHasher(bcrypt.MinCost), nil), sessions
}

func signup(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Signup(context.Background(), &validation.AdminSignupForm{
		Email: "Organiser@Example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})
	require.NoError(t, err)
}

func TestSignupAllowListed(t *testing.T) {
	svc, _ := newTestService()
	admin, err := svc.Signup(context.Background(), &validation.AdminSignupForm{
		Email: " Organiser@Example.com ", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "organiser@example.com", admin.Email)
	assert.Equal(t, "Organiser", admin.Name)
}

func TestSignupRejectsUnlistedEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Signup(context.Background(), &validation.AdminSignupForm{
		Email: "someone@example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))
}

func TestSignupTwice(t *testing.T) {
	svc, _ := newTestService()
	signup(t, svc)
	_, err := svc.Signup(context.Background(), &validation.AdminSignupForm{
		Email: "organiser@example.com", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})
	assert.True(t, apperror.Is(err, apperror.CodeAlreadyExists))
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Signup(context.Background(), &validation.AdminSignupForm{
		Email: "organiser@example.com", Password: "s3cretpass", ConfirmPassword: "different1",
	})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, sessions := newTestService()
	ctx := context.Background()
	signup(t, svc)

	res, err := svc.Login(ctx, &validation.AdminLoginForm{Email: "organiser@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Organiser", res.Admin.Name)
	assert.Len(t, sessions.data, 1)

	claims, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Admin.ID, claims.AdminID)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	_, err = svc.Authenticate(ctx, res.Token)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
	assert.Contains(t, err.Error(), MsgSessionExpired)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, sessions := newTestService()
	signup(t, svc)

	_, err := svc.Login(context.Background(), &validation.AdminLoginForm{Email: "organiser@example.com", Password: "wrongpass"})
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
	assert.Empty(t, sessions.data)
}

func TestLoginUnknownAccount(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Login(context.Background(), &validation.AdminLoginForm{Email: "organiser@example.com", Password: "s3cretpass"})
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
}

func TestAuthenticateRejectsForeignSession(t *testing.T) {
	svc, sessions := newTestService()
	ctx := context.Background()
	signup(t, svc)
	res, err := svc.Login(ctx, &validation.AdminLoginForm{Email: "organiser@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	for jti, s := range sessions.data {
		s.AdminID = uuid.New()
		sessions.data[jti] = s
	}
	_, err = svc.Authenticate(ctx, res.Token)
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
}
