package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nichenav/nichenav-api/internal/ai"
	"github.com/nichenav/nichenav-api/internal/jobs"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/pkg/logger"
)

// ReportService generates validation reports for micro-niches. The nicheId
// on a report is a weak back-reference for display; it is never used to
// enforce relational integrity.
type ReportService struct {
	reportRepo      repository.ReportRepository
	nicheRepo       repository.NicheRepository
	userRepo        repository.UserRepository
	settingRepo     repository.SettingRepository
	generator       ai.Generator
	emailSvc        *EmailService
	notificationSvc *NotificationService
	worker          *jobs.Worker
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	nicheRepo repository.NicheRepository,
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
	generator ai.Generator,
	emailSvc *EmailService,
	notificationSvc *NotificationService,
	worker *jobs.Worker,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		nicheRepo:       nicheRepo,
		userRepo:        userRepo,
		settingRepo:     settingRepo,
		generator:       generator,
		emailSvc:        emailSvc,
		notificationSvc: notificationSvc,
		worker:          worker,
	}
}

// Generate runs the validation-report pipeline for one micro-niche of a
// previously saved analysis. The free plan enforces a report quota;
// premium accounts are effectively unlimited. Failures surface as the
// generic ErrReportFailed with diagnostics logged, and nothing is
// persisted on failure.
func (s *ReportService) Generate(ctx context.Context, nicheID, microNicheName string, userID uint) (*models.ValidationReport, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !user.CanGenerateReport() {
		if s.notificationSvc != nil {
			s.notificationSvc.Notify(ctx, userID, models.NotificationTypeReportLimitReached,
				"Report limit reached",
				fmt.Sprintf("You have used %d of %d reports on the %s plan", user.ReportsUsed, user.ReportsLimit, user.SubscriptionType))
		}
		return nil, ErrReportLimitReached
	}

	analysis, err := s.nicheRepo.FindByID(ctx, nicheID)
	if err != nil {
		return nil, ErrNotFound
	}
	if analysis.UserID != userID {
		return nil, ErrUnauthorized
	}

	niche := analysis.FindMicroNiche(microNicheName)
	if niche == nil {
		return nil, ErrNotFound
	}

	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		logger.Error(fmt.Sprintf("[ReportService] Failed to load AI settings: %v", err))
		setting = models.DefaultAISetting()
	}

	prompt := ai.BuildValidationReportPrompt(analysis.Topic, niche)

	text, err := s.generator.GenerateText(ctx, setting, prompt)
	if err != nil {
		logger.Error(fmt.Sprintf("[ReportService] AI call failed for niche %q: %v", niche.Name, err))
		return nil, ErrReportFailed
	}

	raw, err := ai.ExtractJSONObject(text)
	if err != nil {
		logger.Error(fmt.Sprintf("[ReportService] %v (niche %q)", err, niche.Name))
		return nil, ErrReportFailed
	}

	payload, err := ai.ParseValidationReport(raw)
	if err != nil {
		if errors.Is(err, ai.ErrMalformedJSON) {
			logger.Error(fmt.Sprintf("[ReportService] Malformed JSON for niche %q, attempted to parse: %s", niche.Name, raw))
		} else {
			logger.Error(fmt.Sprintf("[ReportService] %v (niche %q)", err, niche.Name))
		}
		return nil, ErrReportFailed
	}

	report := &models.ValidationReport{
		NicheID:                nicheID,
		MicroNicheName:         niche.Name,
		UserID:                 userID,
		ProfitabilityScore:     payload.ProfitabilityScore,
		AudienceSize:           payload.AudienceSize,
		Competitors:            payload.Competitors,
		ContentGaps:            payload.ContentGaps,
		MonetizationStrategies: payload.MonetizationStrategies,
		RiskFactors:            payload.RiskFactors,
		TimeToMarket:           payload.TimeToMarket,
		Roadmap:                payload.Roadmap,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		logger.Error(fmt.Sprintf("[ReportService] Failed to save report for niche %q: %v", niche.Name, err))
		return nil, ErrReportFailed
	}

	if err := s.userRepo.IncrementReportsUsed(ctx, userID); err != nil {
		logger.Error(fmt.Sprintf("[ReportService] Failed to increment report usage for user %d: %v", userID, err))
	}

	if s.notificationSvc != nil {
		s.notificationSvc.Notify(ctx, userID, models.NotificationTypeReportReady,
			"Validation report ready",
			fmt.Sprintf("Report #%s for %q has been generated", report.ShortID(), niche.Name))
	}

	if s.worker != nil && s.emailSvc != nil {
		reportCopy := *report
		userCopy := *user
		s.worker.Enqueue(func(jobCtx context.Context) error {
			return s.emailSvc.SendReportReady(jobCtx, &userCopy, &reportCopy)
		})
	}

	return report, nil
}

// ListByUser returns a user's reports, newest first
func (s *ReportService) ListByUser(ctx context.Context, userID uint) ([]models.ValidationReport, error) {
	return s.reportRepo.ListByUser(ctx, userID)
}

// Get returns one report; only the owner or an admin may read it
func (s *ReportService) Get(ctx context.Context, id string, userID uint, isAdmin bool) (*models.ValidationReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if report.UserID != userID && !isAdmin {
		return nil, ErrUnauthorized
	}
	return report, nil
}
