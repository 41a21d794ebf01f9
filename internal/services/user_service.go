package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/nichenav/nichenav-api/internal/jobs"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/pkg/logger"
)

// UserService handles user-related business logic
type UserService struct {
	repo            repository.UserRepository
	worker          *jobs.Worker
	emailService    *EmailService
	notificationSvc *NotificationService
}

func NewUserService(repo repository.UserRepository, worker *jobs.Worker, emailService *EmailService, notificationSvc *NotificationService) *UserService {
	return &UserService{
		repo:            repo,
		worker:          worker,
		emailService:    emailService,
		notificationSvc: notificationSvc,
	}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Register creates a new free-plan account and sends the welcome email
func (s *UserService) Register(ctx context.Context, user *models.User, password string) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	registered := *user
	s.worker.Enqueue(func(ctx context.Context) error {
		return s.emailService.SendWelcome(ctx, &registered)
	})

	s.notificationSvc.Notify(ctx, user.ID, models.NotificationTypeNewUser,
		"Welcome to NicheNav",
		"Your account is ready. Analyze your first topic to discover micro-niches.")

	return nil
}

// UpdateProfile updates the mutable profile fields of a user
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, displayName string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	user.DisplayName = strings.TrimSpace(displayName)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword updates the password after validating the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if !VerifyPassword(currentPassword, user.EncryptedPassword) {
		return ErrInvalidPassword
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.EncryptedPassword = hashedPassword
	return s.repo.Update(ctx, user)
}

// GenerateRecoveryCode generates a 6-digit random code
func GenerateRecoveryCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}

// SendRecoveryCode generates and sends a recovery code to the user's email
func (s *UserService) SendRecoveryCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Don't reveal whether email exists or not
		return nil
	}

	code, err := GenerateRecoveryCode()
	if err != nil {
		return fmt.Errorf("failed to generate recovery code: %w", err)
	}

	now := time.Now()
	if err := s.repo.SetRecoveryCode(ctx, user.ID, code, now); err != nil {
		return fmt.Errorf("failed to save recovery code: %w", err)
	}
	logger.Info("[Recovery] Code saved for user", "user_id", user.ID)

	recipient := *user
	s.worker.Enqueue(func(ctx context.Context) error {
		return s.emailService.SendRecoveryCode(ctx, &recipient, code)
	})

	return nil
}

// VerifyRecoveryCode checks if the recovery code is valid
func (s *UserService) VerifyRecoveryCode(ctx context.Context, email, code string) (bool, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, nil // Don't reveal user existence
	}

	if user.RecoveryCode == nil || user.RecoveryCodeSentAt == nil {
		return false, nil
	}

	if *user.RecoveryCode != code {
		logger.Info("[Recovery] Verify failed: code mismatch", "user_id", user.ID)
		return false, nil
	}

	// Codes expire after 15 minutes
	if time.Since(*user.RecoveryCodeSentAt) > 15*time.Minute {
		logger.Info("[Recovery] Verify failed: code expired", "user_id", user.ID)
		return false, nil
	}

	return true, nil
}

// UpdatePasswordWithCode updates password using a verified recovery code
func (s *UserService) UpdatePasswordWithCode(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	valid, err := s.VerifyRecoveryCode(ctx, email, code)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidRecoveryCode
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.EncryptedPassword = hashedPassword
	user.RecoveryCode = nil
	user.RecoveryCodeSentAt = nil

	return s.repo.Update(ctx, user)
}
