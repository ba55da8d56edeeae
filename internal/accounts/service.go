// Package accounts exposes registration, login, and session business rules.
package accounts

import (
	"context"
	"time"

	"github.com/adaezeumeh/thriftline-backend/internal/storage"
	"github.com/adaezeumeh/thriftline-backend/pkg/auth"
	"github.com/adaezeumeh/thriftline-backend/pkg/auth/session"
	"github.com/adaezeumeh/thriftline-backend/pkg/config"
	"github.com/adaezeumeh/thriftline-backend/pkg/db/models"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
	"github.com/adaezeumeh/thriftline-backend/pkg/security"
)

// SessionRecorder is the session-liveness surface the service depends on.
type SessionRecorder interface {
	Create(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams groups dependencies for the accounts service.
type ServiceParams struct {
	Store    storage.Store
	Sessions SessionRecorder
	JWT      config.JWTConfig
	Password config.PasswordConfig
}

// Service exposes business rules for account lifecycle and authentication.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (SessionDTO, error)
	Login(ctx context.Context, username, password string) (SessionDTO, error)
	Logout(ctx context.Context, accessID string) error
	CurrentUser(ctx context.Context, userID int64) (UserDTO, error)
}

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Location *string
	Phone    *string
}

type service struct {
	store    storage.Store
	sessions SessionRecorder
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

// NewService builds an accounts service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session recorder is required")
	}
	return &service{
		store:    params.Store,
		sessions: params.Sessions,
		jwtCfg:   params.JWT,
		pwCfg:    params.Password,
		now:      time.Now,
	}, nil
}

// Register creates the account and signs the new user straight in.
func (s *service) Register(ctx context.Context, input RegisterInput) (SessionDTO, error) {
	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.store.CreateUser(ctx, storage.NewUser{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Location:     input.Location,
		Phone:        input.Phone,
	})
	if err != nil {
		return SessionDTO{}, err
	}

	return s.openSession(ctx, *user)
}

// Login verifies credentials and mints a fresh token plus session record.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, username, password string) (SessionDTO, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return SessionDTO{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.openSession(ctx, *user)
}

// Logout revokes the session record; outstanding tokens bearing the access id
// stop passing the liveness check immediately.
func (s *service) Logout(ctx context.Context, accessID string) error {
	return s.sessions.Revoke(ctx, accessID)
}

// CurrentUser returns the account behind an authenticated request.
func (s *service) CurrentUser(ctx context.Context, userID int64) (UserDTO, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(*user), nil
}

func (s *service) openSession(ctx context.Context, user models.User) (SessionDTO, error) {
	accessID := session.NewAccessID()
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Create(ctx, accessID); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording session")
	}
	return SessionDTO{User: ToUserDTO(user), Token: token}, nil
}
