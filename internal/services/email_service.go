package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/nichenav/nichenav-api/internal/config"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendRecoveryCode(ctx context.Context, user *models.User, code string) error {
	data := struct {
		Name    string
		Code    string
		Minutes int
		AppURL  string
	}{
		Name:    user.DisplayName,
		Code:    code,
		Minutes: 15,
		AppURL:  s.config.AppURL,
	}

	body, err := s.renderTemplate("reset_code.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Your password reset code", body)
}

func (s *EmailService) SendWelcome(ctx context.Context, user *models.User) error {
	data := struct {
		Name   string
		AppURL string
	}{
		Name:   user.DisplayName,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("welcome.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Welcome to NicheNav", body)
}

func (s *EmailService) SendReportReady(ctx context.Context, user *models.User, report *models.ValidationReport) error {
	data := struct {
		Name       string
		NicheName  string
		ReportID   string
		ReportsURL string
	}{
		Name:       user.DisplayName,
		NicheName:  report.MicroNicheName,
		ReportID:   report.ShortID(),
		ReportsURL: s.config.AppURL + "/reports/" + report.ID,
	}

	body, err := s.renderTemplate("report_ready.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Your validation report is ready", body)
}

func (s *EmailService) send(to, subject, html string) error {
	if s.config.ResendAPIKey == "" {
		logger.Warn(fmt.Sprintf("Email disabled, skipping send to %s (%s)", to, subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("[Email Sent] To: %s | Subject: %s", to, subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email template %s: %w", name, err)
	}

	return buf.String(), nil
}
