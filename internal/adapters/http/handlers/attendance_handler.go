package handlers

import (
	"hrm-location/internal/adapters/http/middleware"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/core/services"
	"hrm-location/internal/pkg/pagination"
	"hrm-location/internal/pkg/response"
	"hrm-location/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles check-in, check-out and own history
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CoordinateRequest represents a check-in/check-out body
type CoordinateRequest struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

func (r *CoordinateRequest) coordinate() domain.Coordinate {
	return domain.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

// parseCoordinate returns the body or a client error message
func parseCoordinate(c *fiber.Ctx) (*CoordinateRequest, string) {
	var req CoordinateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, "lat and lng must be numbers"
	}
	if err := validate.Struct(&req); err != nil {
		return nil, err.Error()
	}
	return &req, ""
}

// CheckIn handles check-in
// @Summary Check in
// @Description Record today's check-in. Outside-radius check-ins succeed and are flagged.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CoordinateRequest true "Current position"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	req, msg := parseCoordinate(c)
	if req == nil {
		return response.BadRequest(c, msg)
	}

	result, err := h.attendanceService.CheckIn(c.Context(), middleware.CurrentUserID(c), req.coordinate())
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Checked in", result)
}

// CheckOut handles check-out
// @Summary Check out
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CoordinateRequest true "Current position"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	req, msg := parseCoordinate(c)
	if req == nil {
		return response.BadRequest(c, msg)
	}

	result, err := h.attendanceService.CheckOut(c.Context(), middleware.CurrentUserID(c), req.coordinate())
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Checked out", result)
}

// History lists the caller's own records
// @Summary My attendance history
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /attendance/me [get]
func (h *AttendanceHandler) History(c *fiber.Ctx) error {
	params := pagination.GetParams(c, pagination.DefaultLimit)

	page, err := h.attendanceService.History(c.Context(), middleware.CurrentUserID(c), &services.HistoryQuery{
		Page:  params.Page,
		Limit: params.Limit,
		From:  c.Query("from"),
		To:    c.Query("to"),
	})
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "", page)
}
