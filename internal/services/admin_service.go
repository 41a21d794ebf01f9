package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/internal/statemachine"
	"github.com/nichenav/nichenav-api/pkg/logger"
)

// AdminService handles administrative operations: user management,
// subscription changes, platform stats and AI settings.
type AdminService struct {
	userRepo        repository.UserRepository
	reportRepo      repository.ReportRepository
	settingRepo     repository.SettingRepository
	notificationSvc *NotificationService
}

func NewAdminService(userRepo repository.UserRepository, reportRepo repository.ReportRepository, settingRepo repository.SettingRepository, notificationSvc *NotificationService) *AdminService {
	return &AdminService{
		userRepo:        userRepo,
		reportRepo:      reportRepo,
		settingRepo:     settingRepo,
		notificationSvc: notificationSvc,
	}
}

// ListUsers returns a paginated, filterable user listing
func (s *AdminService) ListUsers(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, query)
}

// GetUser returns a single user by id
func (s *AdminService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateUserStatus toggles a user between active and suspended
func (s *AdminService) UpdateUserStatus(ctx context.Context, id uint, status string) (*models.User, error) {
	if status != models.StatusActive && status != models.StatusInactive && status != models.StatusSuspended {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSubscription changes a user's plan and subscription status. Plan
// changes reset the report quota; status transitions go through the
// subscription state machine so invalid moves are rejected.
func (s *AdminService) UpdateSubscription(ctx context.Context, userID uint, plan, status string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if plan != "" && plan != user.SubscriptionType {
		if plan != models.PlanFree && plan != models.PlanPremium {
			return nil, fmt.Errorf("invalid plan: %s", plan)
		}
		now := time.Now()
		user.SubscriptionType = plan
		user.SubscriptionStartDate = &now
		user.SubscriptionEndDate = nil
		user.ReportsUsed = 0
		if plan == models.PlanPremium {
			user.ReportsLimit = models.PremiumReportsLimit
			end := now.AddDate(0, 1, 0)
			user.SubscriptionEndDate = &end
		} else {
			user.ReportsLimit = models.FreeReportsLimit
		}
	}

	if status != "" && status != user.SubscriptionStatus {
		fsm := statemachine.NewSubscriptionFSM(user)
		var transitionErr error
		switch status {
		case models.SubscriptionCancelled:
			transitionErr = fsm.Cancel(ctx)
		case models.SubscriptionExpired:
			transitionErr = fsm.Expire(ctx)
		case models.SubscriptionActive:
			transitionErr = fsm.Reactivate(ctx)
		default:
			return nil, fmt.Errorf("invalid subscription status: %s", status)
		}
		if transitionErr != nil {
			return nil, fmt.Errorf("invalid subscription transition: %w", transitionErr)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.notificationSvc.Notify(ctx, user.ID, models.NotificationTypeSubscriptionUpdated,
		"Subscription updated",
		fmt.Sprintf("Your subscription is now %s (%s).", user.SubscriptionType, user.SubscriptionStatus))

	logger.Info("Subscription updated", "user_id", user.ID, "plan", user.SubscriptionType, "status", user.SubscriptionStatus)
	return user, nil
}

// Stats aggregates platform-wide counters for the admin dashboard
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	freeUsers, err := s.userRepo.CountByPlan(ctx, models.PlanFree)
	if err != nil {
		return nil, err
	}
	premiumUsers, err := s.userRepo.CountByPlan(ctx, models.PlanPremium)
	if err != nil {
		return nil, err
	}
	totalReports, err := s.reportRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminStats{
		TotalUsers:   totalUsers,
		FreeUsers:    freeUsers,
		PremiumUsers: premiumUsers,
		TotalReports: totalReports,
	}, nil
}

// GetAISettings returns the current generation settings, falling back to
// defaults when none are stored
func (s *AdminService) GetAISettings(ctx context.Context) (*models.AISetting, error) {
	return s.settingRepo.Get(ctx)
}

// UpdateAISettings persists new generation settings. Zero-valued tuning
// fields are replaced with defaults so a partial update cannot disable
// generation.
func (s *AdminService) UpdateAISettings(ctx context.Context, setting *models.AISetting) (*models.AISetting, error) {
	defaults := models.DefaultAISetting()
	if setting.ModelName == "" {
		setting.ModelName = defaults.ModelName
	}
	if setting.Temperature <= 0 {
		setting.Temperature = defaults.Temperature
	}
	if setting.TopP <= 0 {
		setting.TopP = defaults.TopP
	}
	if setting.TopK <= 0 {
		setting.TopK = defaults.TopK
	}
	if setting.MaxOutputTokens <= 0 {
		setting.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if setting.SystemInstruction == "" {
		setting.SystemInstruction = defaults.SystemInstruction
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}

	logger.Info("AI settings updated", "model", setting.ModelName)
	return setting, nil
}

// ExpireLapsedSubscriptions moves premium users past their end date to
// expired and restores the free quota. Intended to run on a schedule.
func (s *AdminService) ExpireLapsedSubscriptions(ctx context.Context) error {
	users, err := s.userRepo.FindExpiredPremium(ctx, time.Now())
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		fsm := statemachine.NewSubscriptionFSM(user)
		if err := fsm.Expire(ctx); err != nil {
			logger.Warn("Skipping subscription expiry", "user_id", user.ID, "error", err)
			continue
		}
		user.SubscriptionType = models.PlanFree
		user.ReportsUsed = 0
		user.ReportsLimit = models.FreeReportsLimit
		if err := s.userRepo.Update(ctx, user); err != nil {
			logger.Error("Failed to expire subscription", "user_id", user.ID, "error", err)
			continue
		}
		s.notificationSvc.Notify(ctx, user.ID, models.NotificationTypeSubscriptionUpdated,
			"Subscription expired",
			"Your premium subscription has expired. You are back on the free plan.")
	}

	if len(users) > 0 {
		logger.Info("Expired lapsed subscriptions", "count", len(users))
	}
	return nil
}

// ResetFreeQuotas resets monthly report usage for free-plan users
func (s *AdminService) ResetFreeQuotas(ctx context.Context) error {
	affected, err := s.userRepo.ResetReportsUsed(ctx, models.PlanFree)
	if err != nil {
		return err
	}
	if affected > 0 {
		logger.Info("Reset free plan report quotas", "users", affected)
	}
	return nil
}
