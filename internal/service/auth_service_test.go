package service

import (
	"context"
	"errors"
	"testing"

	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *AuthService {
	db := testutil.NewTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: " Ana@Example.com ", Password: "bridge2024"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "bridge2024", user.Password)

	_, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "another123"})
	assertAppError(t, err, models.CodeConflict)

	_, err = svc.Register(ctx, RegisterInput{Email: "ANA@example.com", Password: "another123"})
	assertAppError(t, err, models.CodeConflict)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "bridge2024"})
	assertValidationError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "luis@example.com", Password: "short"})
	assertValidationError(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ana", Email: "ana@example.com", Password: "bridge2024"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "ANA@example.com", "bridge2024")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	_, err = svc.Authenticate(ctx, "ana@example.com", "wrong-password1")
	assertAppError(t, err, models.CodeUnauthorized)
	assert.True(t, errors.Is(err, ErrIncorrectPassword))

	_, err = svc.Authenticate(ctx, "ghost@example.com", "bridge2024")
	assertAppError(t, err, models.CodeUnauthorized)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
