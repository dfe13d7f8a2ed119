package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/mvillegas/cabstock-backend/internal/activitylog"
	"github.com/mvillegas/cabstock-backend/internal/users"
	pkgauth "github.com/mvillegas/cabstock-backend/pkg/auth"
	"github.com/mvillegas/cabstock-backend/pkg/auth/session"
	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/enums"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	"github.com/mvillegas/cabstock-backend/pkg/security"
)

// LoginInput carries dashboard sign-in credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the issued token plus the signed-in identity.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      uint      `json:"userId"`
	FullName    string    `json:"fullName"`
	Role        string    `json:"role"`
}

type sessionManager interface {
	Open(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type lastLoginToucher interface {
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type auditor interface {
	Record(ctx context.Context, input activitylog.RecordInput) error
}

// Service exposes login and logout.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, actor activitylog.Actor, accessID string) error
}

type service struct {
	users     users.Service
	sessions  sessionManager
	lastLogin lastLoginToucher
	audit     auditor
	jwtCfg    config.JWTConfig
	logg      *logger.Logger
	now       func() time.Time
}

// Deps bundles the auth service collaborators.
type Deps struct {
	Users     users.Service
	Sessions  sessionManager
	LastLogin lastLoginToucher
	Audit     auditor
	JWT       config.JWTConfig
	Logger    *logger.Logger
}

// NewService builds the auth service.
func NewService(deps Deps) (Service, error) {
	switch {
	case deps.Users == nil:
		return nil, fmt.Errorf("users service required")
	case deps.Sessions == nil:
		return nil, fmt.Errorf("session manager required")
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:     deps.Users,
		sessions:  deps.Sessions,
		lastLogin: deps.LastLogin,
		audit:     deps.Audit,
		jwtCfg:    deps.JWT,
		logg:      deps.Logger,
		now:       time.Now,
	}, nil
}

// Login verifies credentials, opens a session and mints an access token.
// Bad email and bad password answer identically.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	unauthorized := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, unauthorized
	}
	if !user.IsActive {
		return nil, unauthorized
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		s.auditAuth(ctx, activitylog.Actor{ID: user.ID, FullName: user.FullName, Role: user.Role.String()},
			enums.ActivityActionLogin, enums.ActivityStatusFailed, "failed login attempt")
		return nil, unauthorized
	}

	now := s.now().UTC()
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		FullName: user.FullName,
		Role:     user.Role,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Open(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening session")
	}

	if s.lastLogin != nil {
		if err := s.lastLogin.TouchLastLogin(ctx, user.ID, now); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, fmt.Sprint(user.ID)), "last login stamp failed")
		}
	}

	actor := activitylog.Actor{ID: user.ID, FullName: user.FullName, Role: user.Role.String()}
	s.auditAuth(ctx, actor, enums.ActivityActionLogin, enums.ActivityStatusSuccessful, "signed in")

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		UserID:      user.ID,
		FullName:    user.FullName,
		Role:        user.Role.String(),
	}, nil
}

// Logout revokes the session behind the presented token.
func (s *service) Logout(ctx context.Context, actor activitylog.Actor, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	s.auditAuth(ctx, actor, enums.ActivityActionLogout, enums.ActivityStatusSuccessful, "signed out")
	return nil
}

func (s *service) auditAuth(ctx context.Context, actor activitylog.Actor, action enums.ActivityAction, status enums.ActivityStatus, details string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, activitylog.RecordInput{
		Actor:      actor,
		ActionType: action,
		Details:    details,
		Status:     status,
	}); err != nil {
		s.logg.Warn(ctx, "audit entry for auth event could not be written")
	}
}
