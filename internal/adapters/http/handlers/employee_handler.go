package handlers

import (
	"errors"

	"hrm-location/internal/adapters/http/middleware"
	"hrm-location/internal/core/domain"
	"hrm-location/internal/core/services"
	"hrm-location/internal/pkg/pagination"
	"hrm-location/internal/pkg/response"
	"hrm-location/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee management and the office location
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	officeService   *services.OfficeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService, officeService *services.OfficeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		officeService:   officeService,
	}
}

// CreateEmployeeRequest represents create employee request body
type CreateEmployeeRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Phone         string `json:"phone" validate:"max=30"`
	Designation   string `json:"designation" validate:"max=100"`
	Department    string `json:"department" validate:"max=100"`
	DateOfJoining string `json:"dateOfJoining"`
}

// UpdateEmployeeRequest represents update employee request body.
// Any other key in the body (password, role, ...) is ignored.
type UpdateEmployeeRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=30"`
	Designation   *string `json:"designation" validate:"omitempty,max=100"`
	Department    *string `json:"department" validate:"omitempty,max=100"`
	DateOfJoining *string `json:"dateOfJoining"`
}

// Me returns the caller's own profile
// @Summary Get my profile
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /employees/me [get]
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	user, err := h.employeeService.Get(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "", user)
}

// GetOffice returns the office location, data null when unset
// @Summary Get office location
// @Tags Office
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /employees/office [get]
func (h *EmployeeHandler) GetOffice(c *fiber.Ctx) error {
	loc, err := h.officeService.Get(c.Context())
	if errors.Is(err, domain.ErrOfficeLocationNotSet) {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Office location not set",
			"data":    nil,
		})
	}
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "", loc)
}

// SetOffice replaces the office location
// @Summary Set office location
// @Tags Office
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SetOfficeLocationInput true "Office location"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees/office [post]
func (h *EmployeeHandler) SetOffice(c *fiber.Ctx) error {
	var req services.SetOfficeLocationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "latitude, longitude and radius must be numbers")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	loc, err := h.officeService.Set(c.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Office location saved", loc)
}

// Create creates an employee
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.CreateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Designation: req.Designation,
		Department:  req.Department,
	}
	if req.DateOfJoining != "" {
		doj, err := parseDate(req.DateOfJoining)
		if err != nil {
			return handleError(c, err)
		}
		input.DateOfJoining = doj
	}

	user, err := h.employeeService.Create(c.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Employee created", user)
}

// List lists employees
// @Summary List employees
// @Description Employees created by the calling admin
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param q query string false "Search name, email or phone"
// @Param department query string false "Department"
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c, pagination.DefaultLimit)

	page, err := h.employeeService.List(c.Context(), &services.ListEmployeesInput{
		Page:       params.Page,
		Limit:      params.Limit,
		Query:      c.Query("q"),
		Department: c.Query("department"),
		CreatedBy:  middleware.CurrentUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "", page)
}

// Get gets an employee by ID
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	user, err := h.employeeService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "", user)
}

// Update updates an employee's profile fields
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.UpdateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
		Department:  req.Department,
	}
	if req.DateOfJoining != nil && *req.DateOfJoining != "" {
		doj, err := parseDate(*req.DateOfJoining)
		if err != nil {
			return handleError(c, err)
		}
		input.DateOfJoining = doj
	}

	user, err := h.employeeService.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Employee updated", user)
}

// Delete deletes an employee
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.employeeService.Delete(c.Context(), c.Params("id"), middleware.CurrentUserID(c)); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Employee deleted", nil)
}
