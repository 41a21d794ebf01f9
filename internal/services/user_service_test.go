package services

import (
	"context"
	"testing"
	"time"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoveryUser(code string, sentAt time.Time) *models.User {
	return &models.User{
		ID:                 1,
		Email:              "user@example.com",
		RecoveryCode:       &code,
		RecoveryCodeSentAt: &sentAt,
	}
}

func TestVerifyRecoveryCode_Valid(t *testing.T) {
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now().Add(-5*time.Minute)), nil
		},
	}
	svc := NewUserService(repo, nil, nil, nil)

	valid, err := svc.VerifyRecoveryCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyRecoveryCode_Expired(t *testing.T) {
	logger.Setup("test")
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now().Add(-16*time.Minute)), nil
		},
	}
	svc := NewUserService(repo, nil, nil, nil)

	valid, err := svc.VerifyRecoveryCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyRecoveryCode_Mismatch(t *testing.T) {
	logger.Setup("test")
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now()), nil
		},
	}
	svc := NewUserService(repo, nil, nil, nil)

	valid, err := svc.VerifyRecoveryCode(context.Background(), "user@example.com", "654321")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestUpdatePasswordWithCode_Success(t *testing.T) {
	var updated *models.User
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now()), nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			updated = user
			return nil
		},
	}
	svc := NewUserService(repo, nil, nil, nil)

	err := svc.UpdatePasswordWithCode(context.Background(), "user@example.com", "123456", "new-password-1")
	require.NoError(t, err)

	require.NotNil(t, updated)
	assert.True(t, VerifyPassword("new-password-1", updated.EncryptedPassword))
	assert.Nil(t, updated.RecoveryCode, "code must be cleared after use")
	assert.Nil(t, updated.RecoveryCodeSentAt)
}

func TestUpdatePasswordWithCode_InvalidCode(t *testing.T) {
	logger.Setup("test")
	repo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return recoveryUser("123456", time.Now()), nil
		},
	}
	svc := NewUserService(repo, nil, nil, nil)

	err := svc.UpdatePasswordWithCode(context.Background(), "user@example.com", "000000", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidRecoveryCode)
}

func TestGenerateRecoveryCode_SixDigits(t *testing.T) {
	code, err := GenerateRecoveryCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
