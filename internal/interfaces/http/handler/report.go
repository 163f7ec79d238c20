package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/report"
	"github.com/acaipos/backend/internal/domain/shared/calendar"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// ReportHandler serves the admin's profit reports, dashboard and closings
// audit. All routes are admin-only.
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
	adminOnly     gin.HandlerFunc
	logger        *zap.Logger
}

// NewReportHandler creates a report handler
func NewReportHandler(reportService *report.ReportService, adminOnly gin.HandlerFunc, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, adminOnly: adminOnly, logger: logger}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports", h.adminOnly)
	{
		reports.GET("/profit", h.ProfitReport)
		reports.GET("/weekly", h.WeeklyReport)
		reports.GET("/monthly", h.MonthlyReport)
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/closings", h.ClosingsAudit)
	}
}

// queryDay reads a day query param, defaulting to today when absent
func (h *ReportHandler) queryDay(c *gin.Context, name string) (calendar.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		return calendar.Today(), true
	}
	day, err := dto.ParseDay(raw)
	if err != nil {
		h.HandleError(c, err)
		return calendar.Day{}, false
	}
	return day, true
}

// parsePeriod reads the start and end query params. End is exclusive.
func (h *ReportHandler) parsePeriod(c *gin.Context) (calendar.Day, calendar.Day, bool) {
	startRaw, endRaw := c.Query("start"), c.Query("end")
	if startRaw == "" || endRaw == "" {
		h.BadRequest(c, "Query params start and end are required")
		return calendar.Day{}, calendar.Day{}, false
	}
	start, err := dto.ParseDay(startRaw)
	if err != nil {
		h.HandleError(c, err)
		return calendar.Day{}, calendar.Day{}, false
	}
	end, err := dto.ParseDay(endRaw)
	if err != nil {
		h.HandleError(c, err)
		return calendar.Day{}, calendar.Day{}, false
	}
	return start, end, true
}

// ProfitReport returns the day-by-day profit for an arbitrary period
func (h *ReportHandler) ProfitReport(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.reportService.ProfitReport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// WeeklyReport returns the profit report for the week containing a day
func (h *ReportHandler) WeeklyReport(c *gin.Context) {
	day, ok := h.queryDay(c, "date")
	if !ok {
		return
	}

	result, err := h.reportService.WeeklyReport(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// MonthlyReport returns the profit report for the month containing a day
func (h *ReportHandler) MonthlyReport(c *gin.Context) {
	day, ok := h.queryDay(c, "date")
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyReport(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Dashboard returns a single day's figures plus the outstanding fiado debt
func (h *ReportHandler) Dashboard(c *gin.Context) {
	day, ok := h.queryDay(c, "date")
	if !ok {
		return
	}

	result, err := h.reportService.DailyDashboard(c.Request.Context(), day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ClosingsAudit lists the closings written in a period, attendant names
// resolved
func (h *ReportHandler) ClosingsAudit(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.reportService.ClosingsAudit(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
