package services

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/storage"
	"github.com/nichenav/nichenav-api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

//go:embed templates/reports/*.html
var reportTemplates embed.FS

// ExportService renders persisted records into downloadable artifacts.
// These are presentation documents only; nothing is re-imported from them.
type ExportService struct {
	storage *storage.LocalStorage
}

// NewExportService creates a new export service
func NewExportService(storage *storage.LocalStorage) *ExportService {
	return &ExportService{storage: storage}
}

// archive keeps a copy of a generated document on disk so admins can
// retrieve past exports. Failures are logged and not surfaced to the
// caller, the download still succeeds.
func (s *ExportService) archive(data []byte, filename, subDir string) {
	if s.storage == nil {
		return
	}
	if _, err := s.storage.SaveBytes(data, filename, subDir); err != nil {
		logger.Warn("Failed to archive export", "filename", filename, "error", err)
	}
}

// ReportPDF renders a validation report as a paginated PDF: title, id and
// date, key metrics, numbered competitor/content-gap/strategy/risk lists
// and the optional 3-phase roadmap, with a running "Page N of M" footer.
func (s *ExportService) ReportPDF(ctx context.Context, report *models.ValidationReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated by NicheNav - Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "NicheNav Validation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Report ID and date
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Report ID: #%s", report.ShortID()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Key metrics
	s.sectionTitle(pdf, "Key Metrics")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Micro-Niche: %s", report.MicroNicheName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Profitability Score: %d%%", report.ProfitabilityScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Audience Size: %d", report.AudienceSize), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Time to Market: %s", report.TimeToMarket), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Competitor analysis
	s.sectionTitle(pdf, "Competitor Analysis")
	for i, competitor := range report.Competitors {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, competitor.Name), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetX(15)
		pdf.MultiCell(0, 6, fmt.Sprintf("Followers: %d | Engagement: %.1f%%", competitor.Followers, competitor.Engagement), "", "L", false)
		s.bulletList(pdf, "Strengths:", competitor.Strengths)
		s.bulletList(pdf, "Weaknesses:", competitor.Weaknesses)
		pdf.Ln(3)
	}

	s.numberedSection(pdf, "Content Gaps", report.ContentGaps)
	s.numberedSection(pdf, "Monetization Strategies", report.MonetizationStrategies)
	s.numberedSection(pdf, "Risk Factors", report.RiskFactors)

	// Success roadmap
	if !report.Roadmap.IsEmpty() {
		s.sectionTitle(pdf, "Success Roadmap")
		for _, entry := range report.Roadmap.Phases() {
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 8, entry.Label, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.SetX(15)
			pdf.MultiCell(0, 6, fmt.Sprintf("Timeline: %s", entry.Phase.Timeline), "", "L", false)
			pdf.SetX(15)
			pdf.MultiCell(0, 6, fmt.Sprintf("Budget: %s", entry.Phase.Budget), "", "L", false)
			s.bulletList(pdf, "Objectives:", entry.Phase.Objectives)
			s.bulletList(pdf, "Key Actions:", entry.Phase.KeyActions)
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render report PDF: %w", err)
	}

	filename := fmt.Sprintf("NicheNav-Report-%s.pdf", report.ShortID())
	s.archive(buf.Bytes(), filename, "reports")
	return buf.Bytes(), filename, nil
}

func (s *ExportService) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (s *ExportService) bulletList(pdf *gofpdf.Fpdf, label string, items []string) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(15)
	pdf.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
	for _, item := range items {
		pdf.SetX(20)
		pdf.MultiCell(0, 6, "- "+item, "", "L", false)
	}
}

func (s *ExportService) numberedSection(pdf *gofpdf.Fpdf, title string, items []string) {
	pdf.Ln(3)
	s.sectionTitle(pdf, title)
	pdf.SetFont("Helvetica", "", 12)
	for i, item := range items {
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, item), "", "L", false)
	}
}

// AnalysisSummaryPDF renders a niche analysis overview from an HTML
// template through wkhtmltopdf
func (s *ExportService) AnalysisSummaryPDF(ctx context.Context, analysis *models.NicheAnalysis) ([]byte, string, error) {
	tmpl, err := template.ParseFS(reportTemplates, "templates/reports/analysis_summary.html")
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse summary template: %w", err)
	}

	data := struct {
		Analysis  *models.NicheAnalysis
		Generated string
	}{
		Analysis:  analysis,
		Generated: time.Now().Format("January 2, 2006"),
	}

	var htmlBuf bytes.Buffer
	if err := tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, "", fmt.Errorf("failed to execute summary template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, "", fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlBuf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, "", fmt.Errorf("failed to create pdf: %w", err)
	}

	filename := fmt.Sprintf("NicheNav-Analysis-%s.pdf", analysis.ID[:8])
	s.archive(pdfg.Buffer().Bytes(), filename, "analyses")
	return pdfg.Buffer().Bytes(), filename, nil
}

// StatsCSV renders admin platform stats as CSV
func (s *ExportService) StatsCSV(ctx context.Context, stats *models.AdminStats) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"NicheNav Platform Stats", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Total Users", fmt.Sprintf("%d", stats.TotalUsers)})
	_ = writer.Write([]string{"Free Users", fmt.Sprintf("%d", stats.FreeUsers)})
	_ = writer.Write([]string{"Premium Users", fmt.Sprintf("%d", stats.PremiumUsers)})
	_ = writer.Write([]string{"Total Reports", fmt.Sprintf("%d", stats.TotalReports)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("nichenav_stats_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// StatsXLSX renders admin platform stats as a spreadsheet
func (s *ExportService) StatsXLSX(ctx context.Context, stats *models.AdminStats) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Stats"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "NicheNav Platform Stats")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Metric")
	_ = f.SetCellValue(sheet, "B3", "Value")

	_ = f.SetCellValue(sheet, "A4", "Total Users")
	_ = f.SetCellValue(sheet, "B4", stats.TotalUsers)
	_ = f.SetCellValue(sheet, "A5", "Free Users")
	_ = f.SetCellValue(sheet, "B5", stats.FreeUsers)
	_ = f.SetCellValue(sheet, "A6", "Premium Users")
	_ = f.SetCellValue(sheet, "B6", stats.PremiumUsers)
	_ = f.SetCellValue(sheet, "A7", "Total Reports")
	_ = f.SetCellValue(sheet, "B7", stats.TotalReports)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("nichenav_stats_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
