package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"procurement-system/internal/dto"
	"procurement-system/internal/entities"
	"procurement-system/internal/services"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/service"
	"procurement-system/pkg/utils"
)

func newAuthFixture(t *testing.T) (services.AuthServiceInterface, *fakeUserRepo) {
	t.Helper()

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)

	repo := &fakeUserRepo{
		users: map[uint64]*entities.User{
			7: {ID: 7, Login: "reviewer", Fio: "Request Reviewer", PasswordHash: hash},
		},
		statuses: map[uint64][]string{7: {"in_review"}},
	}
	logger := zap.NewNop()
	jwtService := service.NewJWTService("test-secret", time.Minute, time.Hour, logger)
	return services.NewAuthService(repo, jwtService, logger), repo
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthFixture(t)

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		tokens, err := svc.Login(context.Background(), dto.LoginDTO{Login: "reviewer", Password: "secret"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "reviewer", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown login maps to the same error as a bad password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Login: "ghost", Password: "secret"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthFixture(t)

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Login: "reviewer", Password: "secret"})
	require.NoError(t, err)

	t.Run("refresh token mints a new pair", func(t *testing.T) {
		refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
	})

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), tokens.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
	})
}

func TestAuthService_Profile(t *testing.T) {
	svc, _ := newAuthFixture(t)

	profile, err := svc.Profile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "reviewer", profile.Login)
	assert.Equal(t, []string{"in_review"}, profile.AllowedStatuses)
	assert.False(t, profile.IsPrimaryAdmin)

	_, err = svc.Profile(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
