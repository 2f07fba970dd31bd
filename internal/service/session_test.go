package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	return NewSessionService(newTestStore(t), "test-secret", time.Hour)
}

func TestSessionService_Login_FirstRunDefaults(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, svc.IsAuthenticated(ctx, token))
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, svc.IsAuthenticated(ctx, ""))
}

func TestSessionService_Login_UnknownUser(t *testing.T) {
	svc := newSessionService(t)
	_, err := svc.Login(context.Background(), "root", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionService_Logout_RevokesToken(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, svc.IsAuthenticated(ctx, token))

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated(ctx, token))
}

func TestSessionService_IsAuthenticated_GarbageToken(t *testing.T) {
	svc := newSessionService(t)
	assert.False(t, svc.IsAuthenticated(context.Background(), "not-a-jwt"))
}

func TestSessionService_ReloginReplacesSession(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.False(t, svc.IsAuthenticated(ctx, first))
	assert.True(t, svc.IsAuthenticated(ctx, second))
}

func TestSessionService_ChangePassword(t *testing.T) {
	svc := newSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, "admin123", "hunter2hunter2"))

	_, err := svc.Login(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(ctx, "admin", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestSessionService_ChangePassword_WrongCurrent(t *testing.T) {
	svc := newSessionService(t)
	err := svc.ChangePassword(context.Background(), "nope", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
