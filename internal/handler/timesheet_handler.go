package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// SubmitTimesheetRequest represents the request for submitting a timesheet
type SubmitTimesheetRequest struct {
	EmployeeID    uint            `json:"employee_id" binding:"required"`
	AssignmentID  *uint           `json:"assignment_id,omitempty"`
	Date          string          `json:"date" binding:"required"` // YYYY-MM-DD
	HoursWorked   decimal.Decimal `json:"hours_worked" binding:"required"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// ReviewTimesheetRequest represents the request for reviewing a timesheet
type ReviewTimesheetRequest struct {
	ReviewerID uint `json:"reviewer_id" binding:"required"`
	Approve    bool `json:"approve"`
}

// TimesheetHandler handles timesheet and work schedule HTTP requests
type TimesheetHandler struct {
	timesheetService service.TimesheetService
	logger           *logger.Logger
}

// NewTimesheetHandler creates a new TimesheetHandler instance
func NewTimesheetHandler(timesheetService service.TimesheetService, logger *logger.Logger) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetService: timesheetService,
		logger:           logger,
	}
}

// SubmitTimesheet records a pending timesheet
// @Summary Submit timesheet
// @Tags timesheets
// @Accept json
// @Produce json
// @Param request body SubmitTimesheetRequest true "Timesheet"
// @Success 201 {object} utils.APIResponse{data=models.Timesheet} "Timesheet submitted"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/timesheets [post]
func (h *TimesheetHandler) SubmitTimesheet(c *gin.Context) {
	var req SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.BadRequestResponse(c, "Date must be in YYYY-MM-DD format", err)
		return
	}

	timesheet, err := h.timesheetService.SubmitTimesheet(req.EmployeeID, req.AssignmentID, date, req.HoursWorked, req.OvertimeHours)
	if err != nil {
		if errors.Is(err, service.ErrNegativeHours) {
			utils.BadRequestResponse(c, "Hours must not be negative", err)
			return
		}
		h.logger.WithError(err).Error("Failed to submit timesheet")
		utils.BadRequestResponse(c, "Failed to submit timesheet", err)
		return
	}

	utils.CreatedResponse(c, "Timesheet submitted successfully", timesheet)
}

// ReviewTimesheet approves or rejects a pending timesheet
// @Summary Review timesheet
// @Tags timesheets
// @Accept json
// @Produce json
// @Param id path int true "Timesheet ID"
// @Param request body ReviewTimesheetRequest true "Review request"
// @Success 200 {object} utils.APIResponse{data=models.Timesheet} "Timesheet reviewed"
// @Failure 400 {object} utils.APIResponse "Timesheet is not pending"
// @Failure 404 {object} utils.APIResponse "Timesheet not found"
// @Router /api/v1/timesheets/{id}/review [post]
func (h *TimesheetHandler) ReviewTimesheet(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid timesheet ID", err)
		return
	}

	var req ReviewTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	timesheet, err := h.timesheetService.ReviewTimesheet(id, req.ReviewerID, req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.NotFoundResponse(c, "Timesheet not found")
		case errors.Is(err, service.ErrTimesheetNotPending):
			utils.BadRequestResponse(c, "Timesheet is not pending review", err)
		default:
			h.logger.WithError(err).Error("Failed to review timesheet")
			utils.InternalServerErrorResponse(c, "Failed to review timesheet", err)
		}
		return
	}

	utils.SuccessResponse(c, "Timesheet reviewed successfully", timesheet)
}

// ListTimesheets retrieves an employee's timesheets
// @Summary List timesheets
// @Tags timesheets
// @Produce json
// @Param employee_id query int true "Employee profile ID"
// @Param status query string false "Filter by status" Enums(PENDING,APPROVED,REJECTED)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Timesheet} "Timesheets retrieved"
// @Router /api/v1/timesheets [get]
func (h *TimesheetHandler) ListTimesheets(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "employee_id query parameter is required", err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	var status *models.TimesheetStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TimesheetStatus(raw)
		status = &s
	}

	timesheets, total, err := h.timesheetService.ListTimesheets(uint(employeeID), status, page, perPage)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list timesheets", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Timesheets retrieved successfully", timesheets, page, perPage, total)
}

// CreateWorkSchedule plans a work slot for an employee
// @Summary Create work schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body models.WorkSchedule true "Work schedule"
// @Success 201 {object} utils.APIResponse{data=models.WorkSchedule} "Schedule created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/schedules [post]
func (h *TimesheetHandler) CreateWorkSchedule(c *gin.Context) {
	var schedule models.WorkSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	created, err := h.timesheetService.CreateWorkSchedule(&schedule)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create work schedule")
		utils.BadRequestResponse(c, "Failed to create work schedule", err)
		return
	}

	utils.CreatedResponse(c, "Work schedule created successfully", created)
}

// ListWorkSchedules retrieves all schedules for an employee
// @Summary List work schedules
// @Tags schedules
// @Produce json
// @Param employee_id query int true "Employee profile ID"
// @Success 200 {object} utils.APIResponse{data=[]models.WorkSchedule} "Schedules retrieved"
// @Router /api/v1/schedules [get]
func (h *TimesheetHandler) ListWorkSchedules(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "employee_id query parameter is required", err)
		return
	}

	schedules, err := h.timesheetService.ListWorkSchedules(uint(employeeID))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list work schedules", err)
		return
	}

	utils.SuccessResponse(c, "Work schedules retrieved successfully", schedules)
}
