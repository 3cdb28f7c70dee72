package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leftovercook/backend/internal/models"
)

const testJWTSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	token, err := svc.Register(ctx, "chef_maria", "maria@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "chef_maria", claims.Username)
	assert.NotEqual(t, uuid.Nil, claims.UserID)

	// Registration creates the profile alongside the user.
	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", claims.UserID).First(&profile).Error)
	assert.Equal(t, "chef_maria", profile.Username)
	assert.Equal(t, 0, profile.TotalPoints)
	assert.Equal(t, 1, profile.Level)

	loginToken, err := svc.Login(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	_, err := svc.Register(ctx, "chef_maria", "maria@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other_name", "maria@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, "chef_maria", "other@example.com", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	_, err := svc.Register(ctx, "chef_maria", "maria@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "maria@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testJWTSecret)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret fails verification.
	otherSvc := NewAuthService(newTestDB(t), "other-secret")
	token, err := otherSvc.issueToken(uuid.New(), "someone")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateUsername(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, testJWTSecret)
	profiles := NewProfileService(db)
	ctx := context.Background()

	token, err := auth.Register(ctx, "chef_maria", "maria@example.com", "password123")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	updated, err := profiles.UpdateUsername(ctx, claims.UserID, "maria_cooks")
	require.NoError(t, err)
	assert.Equal(t, "maria_cooks", updated.Username)

	// Renaming to your own current name is allowed.
	_, err = profiles.UpdateUsername(ctx, claims.UserID, "maria_cooks")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "leftover_larry", "larry@example.com", "password123")
	require.NoError(t, err)

	_, err = profiles.UpdateUsername(ctx, claims.UserID, "leftover_larry")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetProfileNotFound(t *testing.T) {
	profiles := NewProfileService(newTestDB(t))

	_, err := profiles.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
