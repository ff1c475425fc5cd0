package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// GeneratePayslipRequest represents the request for generating a payslip
type GeneratePayslipRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end" binding:"required"`   // YYYY-MM-DD
}

// RunPayrollRequest represents the request for running EOR payroll
type RunPayrollRequest struct {
	EORClientID uint   `json:"eor_client_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end" binding:"required"`   // YYYY-MM-DD
}

// PayrollHandler handles payslip and payroll run HTTP requests
type PayrollHandler struct {
	payrollService service.PayrollService
	logger         *logger.Logger
}

// NewPayrollHandler creates a new PayrollHandler instance
func NewPayrollHandler(payrollService service.PayrollService, logger *logger.Logger) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		logger:         logger,
	}
}

// GeneratePayslip generates a payslip from approved timesheets
// @Summary Generate payslip
// @Description Build a payslip from the employee's approved timesheets in the period
// @Tags payslips
// @Accept json
// @Produce json
// @Param request body GeneratePayslipRequest true "Payslip request"
// @Success 200 {object} utils.APIResponse{data=models.Payslip} "Payslip generated, or no approved work"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Employee not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payslips/generate [post]
func (h *PayrollHandler) GeneratePayslip(c *gin.Context) {
	var req GeneratePayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	periodStart, periodEnd, ok := parsePeriod(c, req.PeriodStart, req.PeriodEnd)
	if !ok {
		return
	}

	payslip, err := h.payrollService.GeneratePayslip(req.EmployeeID, periodStart, periodEnd)
	if err != nil && !errors.Is(err, service.ErrDocumentRender) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Employee not found")
			return
		}
		h.logger.WithError(err).Error("Failed to generate payslip")
		utils.InternalServerErrorResponse(c, "Failed to generate payslip", err)
		return
	}

	if payslip == nil {
		utils.SuccessResponse(c, "No approved timesheets in the period; no payslip generated", nil)
		return
	}
	if err != nil {
		utils.SuccessResponse(c, "Payslip generated but document rendering failed", payslip)
		return
	}

	utils.SuccessResponse(c, "Payslip generated successfully", payslip)
}

// RunPayroll processes payroll for an EOR client
// @Summary Run payroll
// @Description Create a payroll run with one payslip per active placement and an XML bank export
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body RunPayrollRequest true "Payroll request"
// @Success 200 {object} utils.APIResponse{data=models.PayrollRun} "Payroll run processed, or no active placements"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "EOR client not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payroll/run [post]
func (h *PayrollHandler) RunPayroll(c *gin.Context) {
	var req RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	periodStart, periodEnd, ok := parsePeriod(c, req.PeriodStart, req.PeriodEnd)
	if !ok {
		return
	}

	run, err := h.payrollService.RunPayroll(req.EORClientID, periodStart, periodEnd)
	if err != nil && !errors.Is(err, service.ErrDocumentRender) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "EOR client not found")
			return
		}
		h.logger.WithError(err).Error("Failed to run payroll")
		utils.InternalServerErrorResponse(c, "Failed to run payroll", err)
		return
	}

	if run == nil {
		utils.SuccessResponse(c, "No active placements; no payroll run created", nil)
		return
	}
	if err != nil {
		utils.SuccessResponse(c, "Payroll run processed but XML export failed", run)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"payroll_run_id": run.ID,
		"eor_client_id":  req.EORClientID,
		"total_gross":    run.TotalGrossPayout.StringFixed(2),
	}).Info("Payroll run processed")

	utils.SuccessResponse(c, "Payroll run processed successfully", run)
}

// ListPayslips retrieves all payslips for an employee
// @Summary List payslips
// @Tags payslips
// @Produce json
// @Param employee_id query int true "Employee profile ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Payslip} "Payslips retrieved"
// @Router /api/v1/payslips [get]
func (h *PayrollHandler) ListPayslips(c *gin.Context) {
	employeeID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "employee_id query parameter is required", err)
		return
	}

	payslips, err := h.payrollService.ListPayslips(uint(employeeID))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list payslips", err)
		return
	}

	utils.SuccessResponse(c, "Payslips retrieved successfully", payslips)
}

// parsePeriod parses and validates a date pair, responding with 400 on error
func parsePeriod(c *gin.Context, startRaw, endRaw string) (time.Time, time.Time, bool) {
	periodStart, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		utils.BadRequestResponse(c, "period_start must be in YYYY-MM-DD format", err)
		return time.Time{}, time.Time{}, false
	}
	periodEnd, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		utils.BadRequestResponse(c, "period_end must be in YYYY-MM-DD format", err)
		return time.Time{}, time.Time{}, false
	}
	if periodEnd.Before(periodStart) {
		utils.BadRequestResponse(c, "period_end must not be before period_start", nil)
		return time.Time{}, time.Time{}, false
	}
	return periodStart, periodEnd, true
}
