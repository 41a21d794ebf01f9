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

type NicheHandler struct {
	nicheService  *services.NicheService
	exportService *services.ExportService
}

func NewNicheHandler(nicheService *services.NicheService, exportService *services.ExportService) *NicheHandler {
	return &NicheHandler{
		nicheService:  nicheService,
		exportService: exportService,
	}
}

type AnalyzeRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// @Summary Analyze Topic
// @Description Generates micro-niche analysis for a topic
// @Tags Niches
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Topic to analyze"
// @Success 201 {object} models.NicheAnalysis
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /niches/analyze [post]
func (h *NicheHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
		return
	}

	analysis, err := h.nicheService.AnalyzeTopic(c.Request.Context(), topic, middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"analysis": analysis})
}

// @Summary List Analyses
// @Description Lists the authenticated user's niche analyses, newest first
// @Tags Niches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /niches [get]
func (h *NicheHandler) Index(c *gin.Context) {
	analyses, err := h.nicheService.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

// @Summary Get Analysis
// @Description Returns a single niche analysis
// @Tags Niches
// @Produce json
// @Param niche_id path string true "Analysis ID"
// @Success 200 {object} models.NicheAnalysis
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /niches/{niche_id} [get]
func (h *NicheHandler) Show(c *gin.Context) {
	analysis, err := h.nicheService.Get(c.Request.Context(), c.Param("niche_id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// @Summary Download Analysis Summary PDF
// @Description Downloads the analysis overview as a PDF document
// @Tags Niches
// @Produce application/pdf
// @Param niche_id path string true "Analysis ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /niches/{niche_id}/summary_pdf [get]
func (h *NicheHandler) SummaryPDF(c *gin.Context) {
	analysis, err := h.nicheService.Get(c.Request.Context(), c.Param("niche_id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	data, filename, err := h.exportService.AnalysisSummaryPDF(c.Request.Context(), analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *NicheHandler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this analysis"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
