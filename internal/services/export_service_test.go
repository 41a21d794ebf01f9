package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/storage"
)

func sampleReport() *models.ValidationReport {
	return &models.ValidationReport{
		ID:                 "4f9d2c81-6a0b-47e3-9c55-1b2a3c4d5e6f",
		MicroNicheName:     "Van Life Solar Setups",
		ProfitabilityScore: 82,
		AudienceSize:       45000,
		TimeToMarket:       "3-6 months",
		Competitors: models.CompetitorList{
			{Name: "SolarVanPro", Followers: 120000, Engagement: 4.2, Strengths: []string{"strong video content"}, Weaknesses: []string{"no beginner guides"}},
		},
		ContentGaps:            models.StringList{"budget installs under $500"},
		MonetizationStrategies: models.StringList{"affiliate panels", "install course"},
		RiskFactors:            models.StringList{"seasonal demand"},
		Roadmap: &models.Roadmap{
			Phase1: &models.RoadmapPhase{Timeline: "Month 1-2", Budget: "$500", Objectives: []string{"publish 10 guides"}, KeyActions: []string{"keyword research"}},
		},
		GeneratedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestExportService_ReportPDF(t *testing.T) {
	svc := NewExportService(nil)

	data, filename, err := svc.ReportPDF(context.Background(), sampleReport())
	require.NoError(t, err)

	assert.Equal(t, "NicheNav-Report-4d5e6f.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
}

func TestExportService_ReportPDF_ArchivesCopy(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	svc := NewExportService(store)
	_, _, err = svc.ReportPDF(context.Background(), sampleReport())
	require.NoError(t, err)

	archiveDir := filepath.Join(dir, "reports", time.Now().Format("2006/01"))
	entries, err := os.ReadDir(archiveDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".pdf", filepath.Ext(entries[0].Name()))
}

func TestExportService_StatsCSV(t *testing.T) {
	svc := NewExportService(nil)
	stats := &models.AdminStats{TotalUsers: 10, FreeUsers: 7, PremiumUsers: 3, TotalReports: 42}

	data, filename, err := svc.StatsCSV(context.Background(), stats)
	require.NoError(t, err)

	assert.Contains(t, filename, ".csv")
	content := string(data)
	assert.Contains(t, content, "Total Users,10")
	assert.Contains(t, content, "Premium Users,3")
	assert.Contains(t, content, "Total Reports,42")
}

func TestExportService_StatsXLSX(t *testing.T) {
	svc := NewExportService(nil)
	stats := &models.AdminStats{TotalUsers: 10, FreeUsers: 7, PremiumUsers: 3, TotalReports: 42}

	data, filename, err := svc.StatsXLSX(context.Background(), stats)
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Stats", "A1")
	require.NoError(t, err)
	assert.Equal(t, "NicheNav Platform Stats", title)

	total, err := f.GetCellValue("Stats", "B4")
	require.NoError(t, err)
	assert.Equal(t, "10", total)
}
