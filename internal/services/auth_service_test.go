package services

import (
	"context"
	"testing"
	"time"

	"github.com/nichenav/nichenav-api/internal/config"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleted         []string
	created         []*models.RefreshToken
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	m.created = append(m.created, rt)
	return nil
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)

	userRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:                1,
				Email:             email,
				EncryptedPassword: hashed,
				Status:            models.StatusActive,
			}, nil
		},
	}
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(userRepo, rtRepo, testConfig())

	result, err := service.Login(context.Background(), "user@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "user@example.com", result.User.Email)
	require.Len(t, rtRepo.created, 1)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hashed, _ := HashPassword("correct horse")
	userRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, EncryptedPassword: hashed, Status: models.StatusActive}, nil
		},
	}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testConfig())

	result, err := service.Login(context.Background(), "user@example.com", "wrong")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{Email: email, Status: models.StatusSuspended}, nil
		},
	}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testConfig())

	result, err := service.Login(context.Background(), "inactive@example.com", "password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "account is inactive or suspended", err.Error())
}

func TestAuthService_RefreshToken_ExpiredToken(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	rtRepo := &mockRefreshTokenRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expired}, nil
		},
	}
	service := NewAuthService(&mockUserRepo{}, rtRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "stale")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
	assert.Contains(t, rtRepo.deleted, "stale")
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	expires := time.Now().Add(time.Hour)
	rtRepo := &mockRefreshTokenRepo{
		mockFindByToken: func(ctx context.Context, token string) (*models.RefreshToken, error) {
			return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expires}, nil
		},
	}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Status: models.StatusActive}, nil
		},
	}
	service := NewAuthService(userRepo, rtRepo, testConfig())

	result, err := service.RefreshToken(context.Background(), "old-token")
	require.NoError(t, err)
	assert.NotEqual(t, "old-token", result.RefreshToken)
	assert.Contains(t, rtRepo.deleted, "old-token")
	require.Len(t, rtRepo.created, 1)
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret-pass", hashed))
	assert.False(t, VerifyPassword("other", hashed))
}
