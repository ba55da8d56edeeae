package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaezeumeh/thriftline-backend/internal/storage/memory"
	"github.com/adaezeumeh/thriftline-backend/pkg/auth"
	"github.com/adaezeumeh/thriftline-backend/pkg/config"
	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

type recordingSessions struct {
	created []string
	revoked []string
}

func (r *recordingSessions) Create(_ context.Context, accessID string) error {
	r.created = append(r.created, accessID)
	return nil
}

func (r *recordingSessions) Revoke(_ context.Context, accessID string) error {
	r.revoked = append(r.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "thriftline",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}
}

func newTestService(t *testing.T) (Service, *recordingSessions) {
	t.Helper()
	sessions := &recordingSessions{}
	svc, err := NewService(ServiceParams{
		Store:    memory.New(),
		Sessions: sessions,
		JWT:      testJWTConfig(),
		Password: config.PasswordConfig{},
	})
	require.NoError(t, err)
	return svc, sessions
}

func register(t *testing.T, svc Service, username string) SessionDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery staple",
		FullName: "Test Shopper",
	})
	require.NoError(t, err)
	return dto
}

func TestRegisterSignsUserIn(t *testing.T) {
	svc, sessions := newTestService(t)

	dto := register(t, svc, "adaeze")
	assert.NotZero(t, dto.User.ID)
	assert.Equal(t, "user", dto.User.Role)
	assert.NotEmpty(t, dto.Token)
	require.Len(t, sessions.created, 1)

	claims, err := auth.ParseAccessToken(testJWTConfig(), dto.Token)
	require.NoError(t, err)
	assert.Equal(t, dto.User.ID, claims.UserID)
	assert.Equal(t, sessions.created[0], claims.ID, "the session record must track the token's jti")
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "adaeze")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "Adaeze",
		Email:    "fresh@example.com",
		Password: "hunter2hunter2",
		FullName: "Dup",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestLoginVerifiesCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "chidi")

	dto, err := svc.Login(context.Background(), "chidi", "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, "chidi", dto.User.Username)
	assert.NotEmpty(t, dto.Token)

	_, err = svc.Login(context.Background(), "chidi", "wrong password")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	// Unknown usernames read identically to bad passwords.
	_, err = svc.Login(context.Background(), "nobody", "whatever")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := newTestService(t)
	dto := register(t, svc, "adaeze")

	claims, err := auth.ParseAccessToken(testJWTConfig(), dto.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.ID))
	assert.Equal(t, []string{claims.ID}, sessions.revoked)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	dto := register(t, svc, "adaeze")

	user, err := svc.CurrentUser(context.Background(), dto.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "adaeze", user.Username)

	_, err = svc.CurrentUser(context.Background(), dto.User.ID+100)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
