package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// BillEmployerRequest represents the request for billing a single employer
type BillEmployerRequest struct {
	EmployerID  uint   `json:"employer_id" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end" binding:"required"`   // YYYY-MM-DD
}

// BillEORClientRequest represents the request for billing a single EOR client
type BillEORClientRequest struct {
	EORClientID uint `json:"eor_client_id" binding:"required"`
}

// MonthlyBillingRequest represents the request for a batch billing run
type MonthlyBillingRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2020,max=2100"`
}

// BillingHandler handles billing run HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// BillEmployer bills one employer for a period
// @Summary Bill employer
// @Description Create an invoice from the employer's approved, uninvoiced timesheets in the period
// @Tags billings
// @Accept json
// @Produce json
// @Param request body BillEmployerRequest true "Billing request"
// @Success 200 {object} utils.APIResponse{data=models.Invoice} "Invoice created, or no billable work"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Employer not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/employer [post]
func (h *BillingHandler) BillEmployer(c *gin.Context) {
	var req BillEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		utils.BadRequestResponse(c, "period_start must be in YYYY-MM-DD format", err)
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		utils.BadRequestResponse(c, "period_end must be in YYYY-MM-DD format", err)
		return
	}
	if periodEnd.Before(periodStart) {
		utils.BadRequestResponse(c, "period_end must not be before period_start", nil)
		return
	}

	invoice, err := h.billingService.BillEmployer(req.EmployerID, periodStart, periodEnd)
	if err != nil && !errors.Is(err, service.ErrDocumentRender) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Employer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to bill employer")
		utils.InternalServerErrorResponse(c, "Failed to bill employer", err)
		return
	}

	if invoice == nil {
		utils.SuccessResponse(c, "No billable work in the period; no invoice created", nil)
		return
	}
	if err != nil {
		utils.SuccessResponse(c, "Invoice created but document rendering failed; retry the document attachment", invoice)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"employer_id":    req.EmployerID,
		"invoice_number": invoice.InvoiceNumber,
	}).Info("Employer billed successfully")

	utils.SuccessResponse(c, "Employer billed successfully", invoice)
}

// BillEORClient bills one EOR client from its active placements
// @Summary Bill EOR client
// @Description Create an invoice with salary passthrough and service fee lines per active placement
// @Tags billings
// @Accept json
// @Produce json
// @Param request body BillEORClientRequest true "Billing request"
// @Success 200 {object} utils.APIResponse{data=models.Invoice} "Invoice created, or no active placements"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "EOR client not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/eor [post]
func (h *BillingHandler) BillEORClient(c *gin.Context) {
	var req BillEORClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	invoice, err := h.billingService.BillEORClient(req.EORClientID)
	if err != nil && !errors.Is(err, service.ErrDocumentRender) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "EOR client not found")
			return
		}
		h.logger.WithError(err).Error("Failed to bill EOR client")
		utils.InternalServerErrorResponse(c, "Failed to bill EOR client", err)
		return
	}

	if invoice == nil {
		utils.SuccessResponse(c, "No active placements; no invoice created", nil)
		return
	}
	if err != nil {
		utils.SuccessResponse(c, "Invoice created but document rendering failed; retry the document attachment", invoice)
		return
	}

	utils.SuccessResponse(c, "EOR client billed successfully", invoice)
}

// RunMonthlyBilling runs the billing drivers for all clients
// @Summary Run monthly billing
// @Description Bill every employer and EOR client for the given month. Per-client failures are collected.
// @Tags billings
// @Accept json
// @Produce json
// @Param request body MonthlyBillingRequest true "Billing month and year"
// @Success 200 {object} utils.APIResponse{data=service.BillingRunResponse} "Billing run summary"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/run-monthly [post]
func (h *BillingHandler) RunMonthlyBilling(c *gin.Context) {
	var req MonthlyBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	periodStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	response, err := h.billingService.RunMonthlyBilling(periodStart, periodEnd)
	if err != nil {
		h.logger.WithError(err).Error("Failed to run monthly billing")
		utils.InternalServerErrorResponse(c, "Failed to run monthly billing", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"employers_processed":   response.EmployersProcessed,
		"eor_clients_processed": response.EORClientsProcessed,
		"invoices_created":      response.InvoicesCreated,
		"skipped_no_work":       response.SkippedNoWork,
		"failed_count":          response.FailedCount,
	}).Info("Monthly billing run completed")

	utils.SuccessResponse(c, "Monthly billing run completed", response)
}
