package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nichenav/nichenav-api/internal/ai"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/repository"
	"github.com/nichenav/nichenav-api/internal/trends"
	"github.com/nichenav/nichenav-api/pkg/logger"
)

// NicheService runs the topic analysis pipeline: prompt → model call →
// sanitize → validate/coerce → synthetic trends → persist. One pipeline run
// per request, awaited sequentially; no retry, no deduplication.
type NicheService struct {
	nicheRepo       repository.NicheRepository
	settingRepo     repository.SettingRepository
	generator       ai.Generator
	trendGen        *trends.Generator
	notificationSvc *NotificationService
}

// NewNicheService creates a new niche service
func NewNicheService(
	nicheRepo repository.NicheRepository,
	settingRepo repository.SettingRepository,
	generator ai.Generator,
	trendGen *trends.Generator,
	notificationSvc *NotificationService,
) *NicheService {
	return &NicheService{
		nicheRepo:       nicheRepo,
		settingRepo:     settingRepo,
		generator:       generator,
		trendGen:        trendGen,
		notificationSvc: notificationSvc,
	}
}

// AnalyzeTopic generates micro-niches for a topic and persists the result.
// Every failure kind (no JSON, malformed JSON, incomplete response,
// upstream error) is logged with diagnostics and surfaced as the single
// generic ErrAnalysisFailed; the user resubmits manually. Nothing is
// persisted on failure.
func (s *NicheService) AnalyzeTopic(ctx context.Context, topic string, userID uint) (*models.NicheAnalysis, error) {
	setting, err := s.settingRepo.Get(ctx)
	if err != nil {
		logger.Error(fmt.Sprintf("[NicheService] Failed to load AI settings: %v", err))
		setting = models.DefaultAISetting()
	}

	prompt := ai.BuildNicheAnalysisPrompt(topic)

	text, err := s.generator.GenerateText(ctx, setting, prompt)
	if err != nil {
		logger.Error(fmt.Sprintf("[NicheService] AI call failed for topic %q: %v", topic, err))
		return nil, ErrAnalysisFailed
	}

	raw, err := ai.ExtractJSONObject(text)
	if err != nil {
		logger.Error(fmt.Sprintf("[NicheService] %v (topic %q)", err, topic))
		return nil, ErrAnalysisFailed
	}

	payload, err := ai.ParseNicheAnalysis(raw)
	if err != nil {
		if errors.Is(err, ai.ErrMalformedJSON) {
			// Raw text is kept out of the user-facing error; operators read it here
			logger.Error(fmt.Sprintf("[NicheService] Malformed JSON for topic %q, attempted to parse: %s", topic, raw))
		} else {
			logger.Error(fmt.Sprintf("[NicheService] %v (topic %q)", err, topic))
		}
		return nil, ErrAnalysisFailed
	}

	// No real historical data exists; attach synthetic trend series
	for i := range payload.MicroNiches {
		payload.MicroNiches[i].Trends = s.trendGen.Generate(payload.MicroNiches[i].SearchVolume)
	}

	analysis := &models.NicheAnalysis{
		Topic:                 topic,
		UserID:                userID,
		SearchVolume:          payload.OverallSearchVolume,
		Competition:           payload.OverallCompetition,
		MonetizationPotential: payload.MonetizationPotential,
		MicroNiches:           payload.MicroNiches,
	}

	if err := s.nicheRepo.Create(ctx, analysis); err != nil {
		logger.Error(fmt.Sprintf("[NicheService] Failed to save analysis for topic %q: %v", topic, err))
		return nil, ErrAnalysisFailed
	}

	if s.notificationSvc != nil {
		s.notificationSvc.Notify(ctx, userID, models.NotificationTypeAnalysisReady,
			"Analysis complete",
			fmt.Sprintf("Found %d micro-niches for %q", len(analysis.MicroNiches), topic))
	}

	return analysis, nil
}

// ListByUser returns a user's analyses, newest first
func (s *NicheService) ListByUser(ctx context.Context, userID uint) ([]models.NicheAnalysis, error) {
	return s.nicheRepo.ListByUser(ctx, userID)
}

// Get returns one analysis; only the owner or an admin may read it
func (s *NicheService) Get(ctx context.Context, id string, userID uint, isAdmin bool) (*models.NicheAnalysis, error) {
	analysis, err := s.nicheRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if analysis.UserID != userID && !isAdmin {
		return nil, ErrUnauthorized
	}
	return analysis, nil
}
