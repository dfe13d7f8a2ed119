package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/users"
	pkgauth "github.com/mvillegas/cabstock-backend/pkg/auth"
	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/db/models"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/pagination"
	"github.com/mvillegas/cabstock-backend/pkg/security"
)

type stubUsers struct {
	user *models.User
	err  error
}

func (s stubUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return s.user, s.err
}
func (s stubUsers) Get(context.Context, uint) (*models.User, error) { return s.user, s.err }
func (s stubUsers) List(context.Context, pagination.Params) (*users.UserPage, error) {
	return nil, nil
}
func (s stubUsers) Create(context.Context, users.CreateUserInput) (*models.User, error) {
	return nil, nil
}
func (s stubUsers) Update(context.Context, uint, users.UpdateUserInput) (*models.User, error) {
	return nil, nil
}
func (s stubUsers) Delete(context.Context, uint) error { return nil }

type stubSessions struct {
	opened  []string
	revoked []string
	err     error
}

func (s *stubSessions) Open(_ context.Context, accessID string) error {
	if s.err != nil {
		return s.err
	}
	s.opened = append(s.opened, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	if s.err != nil {
		return s.err
	}
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubAudit struct {
	entries []activitylog.RecordInput
}

func (s *stubAudit) Record(_ context.Context, input activitylog.RecordInput) error {
	s.entries = append(s.entries, input)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "0123456789abcdef0123456789abcdef",
		Issuer:            "cabstock-test",
		ExpirationMinutes: 30,
		SessionTTLMinutes: 60,
	}
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	require.NoError(t, err)
	return &models.User{
		ID: 7, FullName: "Admin One", Email: "admin@example.com",
		PasswordHash: hash, Role: enums.UserRoleAdmin, IsActive: true,
	}
}

func newAuthService(t *testing.T, u *models.User, userErr error, sessions *stubSessions, audit *stubAudit) Service {
	t.Helper()
	svc, err := NewService(Deps{
		Users:    stubUsers{user: u, err: userErr},
		Sessions: sessions,
		Audit:    audit,
		JWT:      testJWTConfig(),
		Logger:   logger.New(logger.Options{Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesTokenAndOpensSession(t *testing.T) {
	sessions := &stubSessions{}
	audit := &stubAudit{}
	svc := newAuthService(t, testUser(t, "super-secret"), nil, sessions, audit)

	result, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "super-secret"})
	require.NoError(t, err)

	assert.Equal(t, uint(7), result.UserID)
	assert.Equal(t, "admin", result.Role)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	require.Len(t, sessions.opened, 1)
	assert.Equal(t, claims.ID, sessions.opened[0], "session keyed by the token jti")

	require.NotEmpty(t, audit.entries)
	assert.Equal(t, enums.ActivityActionLogin, audit.entries[0].ActionType)
	assert.Equal(t, enums.ActivityStatusSuccessful, audit.entries[0].Status)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	sessions := &stubSessions{}
	audit := &stubAudit{}
	svc := newAuthService(t, testUser(t, "super-secret"), nil, sessions, audit)

	_, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "wrong"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	assert.Empty(t, sessions.opened)

	require.NotEmpty(t, audit.entries)
	assert.Equal(t, enums.ActivityStatusFailed, audit.entries[0].Status)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc := newAuthService(t, nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"), &stubSessions{}, &stubAudit{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code(), "unknown email and wrong password are indistinguishable")
}

func TestLoginInactiveUserIsUnauthorized(t *testing.T) {
	user := testUser(t, "super-secret")
	user.IsActive = false
	svc := newAuthService(t, user, nil, &stubSessions{}, &stubAudit{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "super-secret"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	audit := &stubAudit{}
	svc := newAuthService(t, testUser(t, "super-secret"), nil, sessions, audit)

	actor := activitylog.Actor{ID: 7, FullName: "Admin One", Role: "admin"}
	require.NoError(t, svc.Logout(context.Background(), actor, "some-jti"))

	require.Len(t, sessions.revoked, 1)
	assert.Equal(t, "some-jti", sessions.revoked[0])
	require.NotEmpty(t, audit.entries)
	assert.Equal(t, enums.ActivityActionLogout, audit.entries[0].ActionType)
}
