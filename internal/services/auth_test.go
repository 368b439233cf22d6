package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(store.New(), []byte("test-secret"), time.Hour)
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), "alice@example.com", "password1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, user.Status)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "password1", "Alice")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice@example.com", "password2", "Alice Again")
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginLifecycle(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password1", "Alice")
	require.NoError(t, err)

	// Pending accounts cannot log in even with valid credentials.
	_, _, err = svc.Login(ctx, "alice@example.com", "password1")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Approve(ctx, user.ID)
	require.NoError(t, err)

	token, logged, err := svc.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, models.StatusActive, logged.Status)

	identity, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password1", "Alice")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, user.ID)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password1")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)

	other := NewAuthService(store.New(), []byte("other-secret"), time.Hour)
	user, err := other.Register(ctx, "eve@example.com", "password1", "Eve")
	require.NoError(t, err)
	_, err = other.Approve(ctx, user.ID)
	require.NoError(t, err)
	token, _, err := other.Login(ctx, "eve@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestApproveUnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Approve(context.Background(), "no-such-user")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBootstrapAdminIdempotent(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.BootstrapAdmin("admin@torochat.local", "admin123"))
	require.NoError(t, svc.BootstrapAdmin("admin@torochat.local", "admin123"))

	token, admin, err := svc.Login(ctx, "admin@torochat.local", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	identity, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
}

func TestListPendingAndActiveUsers(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice@example.com", "password1", "Alice")
	require.NoError(t, err)
	bob, err := svc.Register(ctx, "bob@example.com", "password1", "Bob")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	_, err = svc.Approve(ctx, alice.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, bob.ID)
	require.NoError(t, err)

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	visible, err := svc.ListActiveUsers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, bob.ID, visible[0].ID)
	assert.Equal(t, "bob@example.com", visible[0].Email)
	assert.Equal(t, models.StatusActive, visible[0].Status)
}
