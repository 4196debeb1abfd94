package handler

import (
	"time"

	"github.com/assistec/assistec-api/internal/application/service"
	"github.com/assistec/assistec-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles financial report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func reportPeriod(c *gin.Context) (*time.Time, *time.Time) {
	var start, end *time.Time

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			start = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			e := endDate.AddDate(0, 0, 1)
			end = &e
		}
	}
	return start, end
}

// Summary returns entry/exit totals and balance for a period
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end := reportPeriod(c)

	summary, err := h.reportService.Summary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// ByCategory returns the ledger broken down per category
func (h *ReportHandler) ByCategory(c *gin.Context) {
	start, end := reportPeriod(c)

	breakdown, err := h.reportService.RevenueByCategory(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category breakdown retrieved successfully", breakdown)
}

// Dashboard returns the operational overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
