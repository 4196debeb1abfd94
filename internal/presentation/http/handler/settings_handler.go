package handler

import (
	"strconv"
	"time"

	"github.com/assistec/assistec-api/internal/application/service"
	"github.com/assistec/assistec-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetRateTable returns the full fee configuration
func (h *SettingsHandler) GetRateTable(c *gin.Context) {
	table, err := h.settingsService.GetRateTable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rate table retrieved successfully", table)
}

type replaceCardChannelsRequest struct {
	Channels []service.CardChannelInput `json:"channels"`
}

// ReplaceCardChannels swaps the card machine configuration
func (h *SettingsHandler) ReplaceCardChannels(c *gin.Context) {
	var req replaceCardChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.ReplaceCardChannels(c.Request.Context(), req.Channels); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Card channels updated successfully", nil)
}

type replacePixChannelsRequest struct {
	Channels []service.PixChannelInput `json:"channels"`
}

// ReplacePixChannels swaps the Pix route configuration
func (h *SettingsHandler) ReplacePixChannels(c *gin.Context) {
	var req replacePixChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.ReplacePixChannels(c.Request.Context(), req.Channels); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pix channels updated successfully", nil)
}

// GetCompany returns the company profile
func (h *SettingsHandler) GetCompany(c *gin.Context) {
	profile, err := h.settingsService.GetCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company profile retrieved successfully", profile)
}

// UpdateCompany creates or replaces the company profile
func (h *SettingsHandler) UpdateCompany(c *gin.Context) {
	var input service.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.settingsService.UpdateCompany(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company profile updated successfully", profile)
}

// GetGoal returns the revenue goal for a month (defaults to the current one)
func (h *SettingsHandler) GetGoal(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	goal, err := h.settingsService.GetGoal(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue goal retrieved successfully", goal)
}

// SetGoal creates or updates a monthly revenue goal
func (h *SettingsHandler) SetGoal(c *gin.Context) {
	var input service.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	goal, err := h.settingsService.SetGoal(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue goal saved successfully", goal)
}
