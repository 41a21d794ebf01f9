package handlers

import (
	"github.com/nichenav/nichenav-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Niche        *NicheHandler
	Report       *ReportHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Niche:        NewNicheHandler(svcs.Niche, svcs.Export),
		Report:       NewReportHandler(svcs.Report, svcs.Export),
		Notification: NewNotificationHandler(svcs.Notification),
		Admin:        NewAdminHandler(svcs.Admin, svcs.Export),
	}
}
