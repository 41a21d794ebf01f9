package services

import (
	"context"
	"testing"

	"github.com/nichenav/nichenav-api/internal/config"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailService_RenderTemplates(t *testing.T) {
	logger.Setup("test")
	service := NewEmailService(&config.Config{AppURL: "https://app.example.com"})

	body, err := service.renderTemplate("reset_code.html", struct {
		Name    string
		Code    string
		Minutes int
		AppURL  string
	}{Name: "Alice", Code: "987654", Minutes: 15, AppURL: "https://app.example.com"})
	require.NoError(t, err)
	assert.Contains(t, body, "987654")
	assert.Contains(t, body, "Alice")

	body, err = service.renderTemplate("welcome.html", struct {
		Name   string
		AppURL string
	}{Name: "Bob", AppURL: "https://app.example.com"})
	require.NoError(t, err)
	assert.Contains(t, body, "Bob")
}

func TestEmailService_SkipsSendWithoutAPIKey(t *testing.T) {
	logger.Setup("test")
	service := NewEmailService(&config.Config{})
	user := &models.User{Email: "user@example.com", DisplayName: "Test User"}

	// No API key configured: sends are skipped, not errors
	err := service.SendWelcome(context.Background(), user)
	assert.NoError(t, err)

	err = service.SendRecoveryCode(context.Background(), user, "123456")
	assert.NoError(t, err)
}
