package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nichenav/nichenav-api/internal/middleware"
	"github.com/nichenav/nichenav-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

type CreateReportRequest struct {
	MicroNicheName string `json:"micro_niche_name" binding:"required"`
}

// @Summary Generate Validation Report
// @Description Generates a validation report for one micro-niche of an analysis
// @Tags Reports
// @Accept json
// @Produce json
// @Param niche_id path string true "Analysis ID"
// @Param request body CreateReportRequest true "Micro-niche to validate"
// @Success 201 {object} models.ValidationReport
// @Failure 402 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /niches/{niche_id}/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Micro-niche name is required"})
		return
	}

	name := strings.TrimSpace(req.MicroNicheName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Micro-niche name is required"})
		return
	}

	report, err := h.reportService.Generate(c.Request.Context(), c.Param("niche_id"), name, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportLimitReached):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// @Summary List Reports
// @Description Lists the authenticated user's validation reports, newest first
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Index(c *gin.Context) {
	reports, err := h.reportService.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// @Summary Get Report
// @Description Returns a single validation report
// @Tags Reports
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} models.ValidationReport
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/{report_id} [get]
func (h *ReportHandler) Show(c *gin.Context) {
	report, err := h.reportService.Get(c.Request.Context(), c.Param("report_id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// @Summary Download Report PDF
// @Description Downloads a validation report as a PDF document
// @Tags Reports
// @Produce application/pdf
// @Param report_id path string true "Report ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/{report_id}/pdf [get]
func (h *ReportHandler) PDF(c *gin.Context) {
	report, err := h.reportService.Get(c.Request.Context(), c.Param("report_id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	data, filename, err := h.exportService.ReportPDF(c.Request.Context(), report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ReportHandler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this report"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
