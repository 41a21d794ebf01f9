package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/nichenav/nichenav-api/internal/services"
)

type AdminHandler struct {
	adminService  *services.AdminService
	exportService *services.ExportService
}

func NewAdminHandler(adminService *services.AdminService, exportService *services.ExportService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		exportService: exportService,
	}
}

// @Summary List Users
// @Description Get a paginated list of users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name or email"
// @Param subscription_type query string false "Filter by plan"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := parseListQuery(c)
	query.Filters["subscription_type"] = c.Query("subscription_type")
	query.Filters["status"] = c.Query("status")

	users, total, err := h.adminService.ListUsers(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      responses,
		"pagination": paginationResponse(query, total),
	})
}

// @Summary Get User
// @Description Get a user by ID
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{user_id} [get]
func (h *AdminHandler) ShowUser(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)
	user, err := h.adminService.GetUser(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update User Status
// @Description Activates, deactivates or suspends a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} models.UserResponse
// @Security BearerAuth
// @Router /admin/users/{user_id}/status [put]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)
	user, err := h.adminService.UpdateUserStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

type UpdateSubscriptionRequest struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

// @Summary Update Subscription
// @Description Changes a user's plan or subscription status
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param request body UpdateSubscriptionRequest true "Plan and/or status"
// @Success 200 {object} models.UserResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{user_id}/subscription [put]
func (h *AdminHandler) UpdateSubscription(c *gin.Context) {
	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Plan == "" && req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan or status is required"})
		return
	}

	id, _ := strconv.ParseUint(c.Param("user_id"), 10, 32)
	user, err := h.adminService.UpdateSubscription(c.Request.Context(), uint(id), req.Plan, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

// @Summary Platform Stats
// @Description Returns aggregate platform counters
// @Tags Admin
// @Produce json
// @Success 200 {object} models.AdminStats
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// @Summary Export Stats
// @Description Downloads platform stats as CSV or XLSX
// @Tags Admin
// @Produce application/octet-stream
// @Param format query string false "Export format (csv|xlsx)" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /admin/stats/export [get]
func (h *AdminHandler) ExportStats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var data []byte
	var filename string
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		data, filename, err = h.exportService.StatsXLSX(c.Request.Context(), stats)
	default:
		data, filename, err = h.exportService.StatsCSV(c.Request.Context(), stats)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export stats"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// @Summary Get AI Settings
// @Description Returns the current generation settings
// @Tags Admin
// @Produce json
// @Success 200 {object} models.AISetting
// @Security BearerAuth
// @Router /admin/settings/ai [get]
func (h *AdminHandler) GetAISettings(c *gin.Context) {
	setting, err := h.adminService.GetAISettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": setting})
}

type UpdateAISettingsRequest struct {
	ModelName         string  `json:"model_name"`
	Temperature       float32 `json:"temperature"`
	TopP              float32 `json:"top_p"`
	TopK              int32   `json:"top_k"`
	MaxOutputTokens   int32   `json:"max_output_tokens"`
	SystemInstruction string  `json:"system_instruction"`
	APIKey            string  `json:"api_key"`
}

// @Summary Update AI Settings
// @Description Updates the generation settings used by the analysis pipeline
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body UpdateAISettingsRequest true "New settings"
// @Success 200 {object} models.AISetting
// @Security BearerAuth
// @Router /admin/settings/ai [put]
func (h *AdminHandler) UpdateAISettings(c *gin.Context) {
	var req UpdateAISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	setting := &models.AISetting{
		ModelName:         req.ModelName,
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		TopK:              req.TopK,
		MaxOutputTokens:   req.MaxOutputTokens,
		SystemInstruction: req.SystemInstruction,
		APIKey:            req.APIKey,
	}

	updated, err := h.adminService.UpdateAISettings(c.Request.Context(), setting)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": updated})
}
