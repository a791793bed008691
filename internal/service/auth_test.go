package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	user, profile, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsSuperuser)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "alice", profile.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	_, _, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, _, err = auth.Register(context.Background(), "Other", "alice@example.com", "other", "password123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	_, _, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, _, err = auth.Register(context.Background(), "Other", "other@example.com", "alice", "password123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	registered, _, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	user, profile, err := auth.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", profile.Username)

	_, _, err = auth.Login(context.Background(), "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	user, profile, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	token, err := auth.GenerateToken(user, profile)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsSuperuser)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := setupServiceDB(t)
	auth := NewAuthService(db, "test-secret", nil)
	other := NewAuthService(db, "other-secret", nil)

	user, profile, err := auth.Register(context.Background(), "Alice", "alice@example.com", "alice", "password123")
	require.NoError(t, err)

	token, err := auth.GenerateToken(user, profile)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
