package handler

import (
	"errors"
	"fmt"
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

// CreateInvoiceRequest represents the request for manual invoice creation
type CreateInvoiceRequest struct {
	ClientType models.ClientType       `json:"client_type" binding:"required,oneof=EMPLOYER EOR_CLIENT"`
	ClientID   uint                    `json:"client_id" binding:"required"`
	IssueDate  string                  `json:"issue_date" binding:"required"` // YYYY-MM-DD
	DueDate    string                  `json:"due_date" binding:"required"`   // YYYY-MM-DD
	LineItems  []service.LineItemInput `json:"line_items" binding:"required"`
}

// RecordPaymentRequest represents the request for recording a payment
type RecordPaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Method        models.PaymentMethod `json:"method" binding:"required,oneof=BANK_TRANSFER XML_INTEGRATION CREDIT_CARD"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	Status        models.PaymentStatus `json:"status" binding:"required,oneof=SUCCESS FAILED PENDING"`
}

// PaymentListResponse carries an invoice's payments and remaining balance
type PaymentListResponse struct {
	Payments         []*models.Payment `json:"payments"`
	RemainingBalance string            `json:"remaining_balance"`
}

// InvoiceHandler handles invoice and payment HTTP requests
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler instance
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateInvoice creates an invoice with line items
// @Summary Create invoice
// @Description Create an invoice atomically with its line items and render the PDF document
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice request"
// @Success 201 {object} utils.APIResponse{data=models.Invoice} "Invoice created"
// @Failure 400 {object} utils.APIResponse "Invalid request or empty line items"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		utils.BadRequestResponse(c, "issue_date must be in YYYY-MM-DD format", err)
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		utils.BadRequestResponse(c, "due_date must be in YYYY-MM-DD format", err)
		return
	}

	client := models.ClientRef{Type: req.ClientType, ID: req.ClientID}
	invoice, err := h.invoiceService.CreateInvoice(client, issueDate, dueDate, req.LineItems)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLineItems):
			utils.BadRequestResponse(c, "Invoice requires at least one line item", err)
		case errors.Is(err, service.ErrDocumentRender):
			// The invoice row is committed; only the PDF is missing.
			h.logger.WithError(err).Error("Invoice created but document rendering failed")
			utils.CreatedResponse(c, "Invoice created but document rendering failed; retry the document attachment", invoice)
		default:
			h.logger.WithError(err).Error("Failed to create invoice")
			utils.InternalServerErrorResponse(c, "Failed to create invoice", err)
		}
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"invoice_number": invoice.InvoiceNumber,
		"client":         client.String(),
	}).Info("Invoice created successfully")

	utils.CreatedResponse(c, "Invoice created successfully", invoice)
}

// GetInvoice retrieves an invoice with its line items
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=models.Invoice} "Invoice retrieved"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	invoice, err := h.invoiceService.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Invoice not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to get invoice", err)
		return
	}

	utils.SuccessResponse(c, "Invoice retrieved successfully", invoice)
}

// ListInvoices retrieves invoices with optional filters
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param client_type query string false "Filter by client type" Enums(EMPLOYER,EOR_CLIENT)
// @Param client_id query int false "Filter by client ID (requires client_type)"
// @Param status query string false "Filter by status" Enums(PENDING,PAID,OVERDUE,CANCELLED)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Invoice} "Invoices retrieved"
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	var client *models.ClientRef
	if rawType := c.Query("client_type"); rawType != "" {
		rawID, err := strconv.ParseUint(c.Query("client_id"), 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "client_id is required with client_type", err)
			return
		}
		ref := models.ClientRef{Type: models.ClientType(rawType), ID: uint(rawID)}
		if err := ref.Validate(); err != nil {
			utils.BadRequestResponse(c, "Invalid client filter", err)
			return
		}
		client = &ref
	}

	var status *models.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		s := models.InvoiceStatus(raw)
		status = &s
	}

	invoices, total, err := h.invoiceService.ListInvoices(client, status, page, perPage)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list invoices", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Invoices retrieved successfully", invoices, page, perPage, total)
}

// AttachDocument re-renders and stores the invoice PDF
// @Summary Attach invoice document
// @Description Render and store the PDF for an existing invoice. Safe to retry.
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=models.Invoice} "Document attached"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Failure 500 {object} utils.APIResponse "Rendering failed"
// @Router /api/v1/invoices/{id}/document [post]
func (h *InvoiceHandler) AttachDocument(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	invoice, err := h.invoiceService.AttachDocument(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Invoice not found")
			return
		}
		h.logger.WithError(err).Error("Failed to attach invoice document")
		utils.InternalServerErrorResponse(c, "Failed to attach invoice document", err)
		return
	}

	utils.SuccessResponse(c, "Invoice document attached successfully", invoice)
}

// RecordPayment records a payment against an invoice
// @Summary Record payment
// @Description Record a payment. A SUCCESS payment that clears the balance marks the invoice PAID.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body RecordPaymentRequest true "Payment request"
// @Success 201 {object} utils.APIResponse{data=models.Payment} "Payment recorded"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Router /api/v1/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}
	if !req.Amount.IsPositive() {
		utils.BadRequestResponse(c, "Payment amount must be positive", fmt.Errorf("amount %s", req.Amount))
		return
	}

	payment, err := h.invoiceService.RecordPayment(id, req.Amount, req.Method, req.TransactionID, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Invoice not found")
			return
		}
		h.logger.WithError(err).Error("Failed to record payment")
		utils.InternalServerErrorResponse(c, "Failed to record payment", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"invoice_id": id,
		"amount":     req.Amount.StringFixed(2),
		"status":     req.Status,
	}).Info("Payment recorded")

	utils.CreatedResponse(c, "Payment recorded successfully", payment)
}

// ListPayments retrieves an invoice's payments and remaining balance
// @Summary List payments for an invoice
// @Tags payments
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=PaymentListResponse} "Payments retrieved"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Router /api/v1/invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	payments, balance, err := h.invoiceService.ListPayments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Invoice not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to list payments", err)
		return
	}

	utils.SuccessResponse(c, "Payments retrieved successfully", PaymentListResponse{
		Payments:         payments,
		RemainingBalance: balance.StringFixed(2),
	})
}

// ExportInvoices downloads the invoice register as an Excel file
// @Summary Export invoices to Excel
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status" Enums(PENDING,PAID,OVERDUE,CANCELLED)
// @Success 200 {file} binary "Excel file"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/invoices/export [get]
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	var status *models.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		s := models.InvoiceStatus(raw)
		status = &s
	}

	content, filename, err := h.invoiceService.ExportInvoicesToExcel(status)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export invoices")
		utils.InternalServerErrorResponse(c, "Failed to export invoices", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
