package services

import (
	"context"
	"testing"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return 10, nil
}

func (m *mockUserRepo) CountByPlan(ctx context.Context, plan string) (int64, error) {
	if plan == models.PlanPremium {
		return 3, nil
	}
	return 7, nil
}

func (m *mockReportRepo) Count(ctx context.Context) (int64, error) {
	return 42, nil
}

func newTestAdminService(userRepo *mockUserRepo, reportRepo *mockReportRepo) *AdminService {
	return NewAdminService(userRepo, reportRepo, &mockSettingRepo{}, nil)
}

func TestAdminUpdateSubscription_UpgradeToPremium(t *testing.T) {
	stored := &models.User{
		ID:                 1,
		SubscriptionType:   models.PlanFree,
		SubscriptionStatus: models.SubscriptionActive,
		ReportsUsed:        2,
		ReportsLimit:       models.FreeReportsLimit,
	}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
	}
	svc := newTestAdminService(userRepo, &mockReportRepo{})

	user, err := svc.UpdateSubscription(context.Background(), 1, models.PlanPremium, "")
	require.NoError(t, err)

	assert.Equal(t, models.PlanPremium, user.SubscriptionType)
	assert.Equal(t, models.PremiumReportsLimit, user.ReportsLimit)
	assert.Equal(t, 0, user.ReportsUsed, "plan change resets used quota")
	require.NotNil(t, user.SubscriptionStartDate)
	require.NotNil(t, user.SubscriptionEndDate)
	assert.True(t, user.SubscriptionEndDate.After(*user.SubscriptionStartDate))
}

func TestAdminUpdateSubscription_DowngradeToFree(t *testing.T) {
	stored := &models.User{
		ID:                 1,
		SubscriptionType:   models.PlanPremium,
		SubscriptionStatus: models.SubscriptionActive,
		ReportsUsed:        120,
		ReportsLimit:       models.PremiumReportsLimit,
	}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
	}
	svc := newTestAdminService(userRepo, &mockReportRepo{})

	user, err := svc.UpdateSubscription(context.Background(), 1, models.PlanFree, "")
	require.NoError(t, err)

	assert.Equal(t, models.PlanFree, user.SubscriptionType)
	assert.Equal(t, models.FreeReportsLimit, user.ReportsLimit)
	assert.Equal(t, 0, user.ReportsUsed)
	assert.Nil(t, user.SubscriptionEndDate)
}

func TestAdminUpdateSubscription_InvalidTransition(t *testing.T) {
	stored := &models.User{
		ID:                 1,
		SubscriptionType:   models.PlanPremium,
		SubscriptionStatus: models.SubscriptionExpired,
	}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
	}
	svc := newTestAdminService(userRepo, &mockReportRepo{})

	// expired → cancelled is not a legal move
	_, err := svc.UpdateSubscription(context.Background(), 1, "", models.SubscriptionCancelled)
	assert.Error(t, err)
	assert.Equal(t, models.SubscriptionExpired, stored.SubscriptionStatus)
}

func TestAdminUpdateSubscription_Reactivate(t *testing.T) {
	stored := &models.User{
		ID:                 1,
		SubscriptionType:   models.PlanPremium,
		SubscriptionStatus: models.SubscriptionCancelled,
	}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
	}
	svc := newTestAdminService(userRepo, &mockReportRepo{})

	user, err := svc.UpdateSubscription(context.Background(), 1, "", models.SubscriptionActive)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, user.SubscriptionStatus)
}

func TestAdminUpdateSubscription_InvalidPlan(t *testing.T) {
	stored := &models.User{ID: 1, SubscriptionType: models.PlanFree, SubscriptionStatus: models.SubscriptionActive}
	userRepo := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) { return stored, nil },
	}
	svc := newTestAdminService(userRepo, &mockReportRepo{})

	_, err := svc.UpdateSubscription(context.Background(), 1, "enterprise", "")
	assert.Error(t, err)
}

func TestAdminStats(t *testing.T) {
	svc := newTestAdminService(&mockUserRepo{}, &mockReportRepo{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(7), stats.FreeUsers)
	assert.Equal(t, int64(3), stats.PremiumUsers)
	assert.Equal(t, int64(42), stats.TotalReports)
}

func TestAdminUpdateAISettings_FillsDefaults(t *testing.T) {
	logger.Setup("test")
	saved := false
	settingRepo := &mockSettingRepo{}
	settingRepo.mockSave = func(ctx context.Context, setting *models.AISetting) error {
		saved = true
		return nil
	}
	svc := NewAdminService(&mockUserRepo{}, &mockReportRepo{}, settingRepo, nil)

	updated, err := svc.UpdateAISettings(context.Background(), &models.AISetting{ModelName: "gemini-2.5-pro"})
	require.NoError(t, err)
	assert.True(t, saved)

	assert.Equal(t, "gemini-2.5-pro", updated.ModelName)
	defaults := models.DefaultAISetting()
	assert.Equal(t, defaults.Temperature, updated.Temperature)
	assert.Equal(t, defaults.TopK, updated.TopK)
	assert.Equal(t, defaults.MaxOutputTokens, updated.MaxOutputTokens)
	assert.NotEmpty(t, updated.SystemInstruction)
}
