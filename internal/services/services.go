package services

import (
	"github.com/nichenav/nichenav-api/internal/ai"
	"github.com/nichenav/nichenav-api/internal/config"
	"github.com/nichenav/nichenav-api/internal/jobs"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/internal/storage"
	"github.com/nichenav/nichenav-api/internal/trends"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Niche        *NicheService
	Report       *ReportService
	Admin        *AdminService
	Notification *NotificationService
	Email        *EmailService
	Export       *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config, generator ai.Generator, trendGen *trends.Generator) *Services {
	notificationSvc := NewNotificationService(repos.Notification)
	emailSvc := NewEmailService(cfg)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, worker, emailSvc, notificationSvc),
		Niche:        NewNicheService(repos.Niche, repos.Setting, generator, trendGen, notificationSvc),
		Report:       NewReportService(repos.Report, repos.Niche, repos.User, repos.Setting, generator, emailSvc, notificationSvc, worker),
		Admin:        NewAdminService(repos.User, repos.Report, repos.Setting, notificationSvc),
		Notification: notificationSvc,
		Email:        emailSvc,
		Export:       NewExportService(store),
	}
}
