package handlers

import (
	"strings"

	"hrm-location/internal/adapters/http/middleware"
	"hrm-location/internal/core/services"
	"hrm-location/internal/pkg/pagination"
	"hrm-location/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles admin attendance reporting
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ListAttendance lists attendance across employees, or exports it as CSV
// @Summary List attendance (admin)
// @Tags Admin
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param employee query string false "User ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param department query string false "Department"
// @Param export query string false "csv to download every matching row"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/attendance [get]
func (h *DashboardHandler) ListAttendance(c *fiber.Ctx) error {
	params := pagination.GetParams(c, services.AdminAttendanceDefaultLimit)
	query := &services.AdminAttendanceQuery{
		Page:       params.Page,
		Limit:      params.Limit,
		Employee:   c.Query("employee"),
		Date:       c.Query("date"),
		Department: c.Query("department"),
	}

	if strings.EqualFold(c.Query("export"), "csv") {
		filename, data, err := h.dashboardService.ExportAttendanceCSV(c.Context(), query)
		if err != nil {
			return handleError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Attachment(filename)
		return c.Send(data)
	}

	page, err := h.dashboardService.ListAttendance(c.Context(), query)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "", page)
}

// Summary returns present/absent/late counts for a day
// @Summary Daily summary (admin)
// @Description Present, absent and late counts over the employees the calling admin created
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), default today"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.DailySummary(c.Context(), middleware.CurrentUserID(c), c.Query("date"))
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "", summary)
}
