package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/pdf"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/internal/storage"
	"hr-portal-svc/pkg/logger"
)

var (
	// ErrNoLineItems is returned when invoice creation is attempted with an
	// empty line item list. Nothing is persisted.
	ErrNoLineItems = errors.New("invoice requires at least one line item")

	// ErrDocumentRender is returned when the invoice row committed but the
	// PDF could not be rendered or stored. The invoice survives; retry with
	// AttachDocument.
	ErrDocumentRender = errors.New("invoice document rendering failed")
)

// LineItemInput describes one billable component of an invoice to create
type LineItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// InvoiceService defines the interface for invoice business operations
type InvoiceService interface {
	CreateInvoice(client models.ClientRef, issueDate, dueDate time.Time, items []LineItemInput) (*models.Invoice, error)
	AssembleInvoice(tx *gorm.DB, client models.ClientRef, issueDate, dueDate time.Time, items []LineItemInput) (*models.Invoice, error)
	AttachDocument(invoiceID uint) (*models.Invoice, error)
	GetInvoice(id uint) (*models.Invoice, error)
	ListInvoices(client *models.ClientRef, status *models.InvoiceStatus, page, limit int) ([]*models.Invoice, int64, error)
	RecordPayment(invoiceID uint, amount decimal.Decimal, method models.PaymentMethod, transactionID *string, status models.PaymentStatus) (*models.Payment, error)
	ListPayments(invoiceID uint) ([]*models.Payment, decimal.Decimal, error)
	MarkOverdueInvoices() (int64, error)
	ExportInvoicesToExcel(status *models.InvoiceStatus) ([]byte, string, error)
}

// invoiceService implements InvoiceService
type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	employerRepo repository.EmployerRepository
	eorRepo      repository.EORRepository
	renderer     pdf.Renderer
	files        storage.FileStore
	db           *gorm.DB
	logger       *logger.Logger
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	employerRepo repository.EmployerRepository,
	eorRepo repository.EORRepository,
	renderer pdf.Renderer,
	files storage.FileStore,
	db *gorm.DB,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		employerRepo: employerRepo,
		eorRepo:      eorRepo,
		renderer:     renderer,
		files:        files,
		db:           db,
		logger:       logger,
	}
}

// CreateInvoice atomically creates an invoice and its line items, then
// renders and attaches the PDF document. The header and line items commit
// together; a rendering failure after commit leaves the invoice in place
// and is reported as ErrDocumentRender.
func (s *invoiceService) CreateInvoice(client models.ClientRef, issueDate, dueDate time.Time, items []LineItemInput) (*models.Invoice, error) {
	var invoice *models.Invoice

	// The sequence row lock makes duplicate numbers impossible in a single
	// database, but the unique index is the backstop; retry once if another
	// writer got there through a different path.
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			invoice, txErr = s.AssembleInvoice(tx, client, issueDate, dueDate, items)
			return txErr
		})
		if err == nil || !isUniqueViolation(err) {
			break
		}
		s.logger.WithError(err).Warn("Invoice number collision, retrying with a fresh number")
	}
	if err != nil {
		return nil, err
	}

	if attachErr := s.attachDocument(invoice); attachErr != nil {
		s.logger.WithError(attachErr).
			WithField("invoice_number", invoice.InvoiceNumber).
			Error("Invoice committed but document rendering failed")
		return invoice, fmt.Errorf("%w: %v", ErrDocumentRender, attachErr)
	}

	return invoice, nil
}

// AssembleInvoice allocates an invoice number, persists the header with
// status PENDING and bulk-inserts the line items, all inside the caller's
// transaction. Callers that must couple other writes to invoice creation
// (e.g. marking timesheets invoiced) run them in the same transaction.
func (s *invoiceService) AssembleInvoice(tx *gorm.DB, client models.ClientRef, issueDate, dueDate time.Time, items []LineItemInput) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	if err := client.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client reference: %w", err)
	}
	if _, err := s.clientName(client); err != nil {
		return nil, fmt.Errorf("client %s not found: %w", client, err)
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(tx, issueDate.Year())
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		InvoiceNumber: number,
		ClientType:    client.Type,
		ClientID:      client.ID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        models.InvoicePending,
	}
	if err := s.invoiceRepo.CreateInvoice(tx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	lineItems := make([]*models.InvoiceLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &models.InvoiceLineItem{
			InvoiceID:   invoice.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	if err := s.invoiceRepo.CreateLineItems(tx, lineItems); err != nil {
		return nil, fmt.Errorf("failed to create invoice line items: %w", err)
	}

	for _, li := range lineItems {
		invoice.LineItems = append(invoice.LineItems, *li)
	}

	return invoice, nil
}

// AttachDocument renders and stores the PDF for an already committed
// invoice. Safe to call repeatedly; each call overwrites the stored file.
func (s *invoiceService) AttachDocument(invoiceID uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.attachDocument(invoice); err != nil {
		return invoice, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return invoice, nil
}

func (s *invoiceService) attachDocument(invoice *models.Invoice) error {
	clientName, err := s.clientName(invoice.Client())
	if err != nil {
		return err
	}

	content, err := s.renderer.RenderInvoice(invoice, clientName)
	if err != nil {
		return err
	}

	relPath := fmt.Sprintf("invoices/Invoice-%s.pdf", invoice.InvoiceNumber)
	path, err := s.files.Save(relPath, content)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.UpdatePDFPath(invoice.ID, path); err != nil {
		return err
	}
	invoice.PDFPath = &path

	return nil
}

// clientName resolves the display name behind a client reference
func (s *invoiceService) clientName(client models.ClientRef) (string, error) {
	switch client.Type {
	case models.ClientTypeEmployer:
		profile, err := s.employerRepo.GetEmployerByID(client.ID)
		if err != nil {
			return "", err
		}
		return profile.CompanyName, nil
	case models.ClientTypeEORClient:
		profile, err := s.eorRepo.GetEORClientByID(client.ID)
		if err != nil {
			return "", err
		}
		return profile.CompanyName, nil
	default:
		return "", fmt.Errorf("unknown client type %q", client.Type)
	}
}

// GetInvoice retrieves an invoice with its line items
func (s *invoiceService) GetInvoice(id uint) (*models.Invoice, error) {
	return s.invoiceRepo.GetInvoiceByID(id)
}

// ListInvoices retrieves invoices with optional filters
func (s *invoiceService) ListInvoices(client *models.ClientRef, status *models.InvoiceStatus, page, limit int) ([]*models.Invoice, int64, error) {
	return s.invoiceRepo.ListInvoices(client, status, page, limit)
}

// RecordPayment stores a payment against an invoice. When a SUCCESS payment
// clears the remaining balance the invoice flips to PAID in the same
// transaction.
func (s *invoiceService) RecordPayment(invoiceID uint, amount decimal.Decimal, method models.PaymentMethod, transactionID *string, status models.PaymentStatus) (*models.Payment, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		InvoiceID:     invoiceID,
		AmountPaid:    amount,
		PaymentDate:   time.Now(),
		Method:        method,
		TransactionID: transactionID,
		Status:        status,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.CreatePayment(tx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if status != models.PaymentSuccess {
			return nil
		}

		paid, err := s.paymentRepo.SumSuccessfulPayments(tx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}

		if paid.GreaterThanOrEqual(invoice.TotalAmount()) {
			if err := s.invoiceRepo.UpdateStatus(tx, invoiceID, models.InvoicePaid); err != nil {
				return fmt.Errorf("failed to mark invoice paid: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// ListPayments retrieves all payments for an invoice and the remaining
// balance (total minus successful payments)
func (s *invoiceService) ListPayments(invoiceID uint) ([]*models.Payment, decimal.Decimal, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	payments, err := s.paymentRepo.ListPaymentsByInvoice(invoiceID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentSuccess {
			paid = paid.Add(p.AmountPaid)
		}
	}

	return payments, invoice.TotalAmount().Sub(paid), nil
}

// MarkOverdueInvoices flips pending invoices past their due date to OVERDUE
func (s *invoiceService) MarkOverdueInvoices() (int64, error) {
	return s.invoiceRepo.MarkOverdue(time.Now())
}

// ExportInvoicesToExcel exports the invoice register to an Excel file
func (s *invoiceService) ExportInvoicesToExcel(status *models.InvoiceStatus) ([]byte, string, error) {
	invoices, _, err := s.invoiceRepo.ListInvoices(nil, status, 1, 10000)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get invoices: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Invoice Number", "Client Type", "Client ID", "Issue Date", "Due Date", "Status", "Total Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "H1", headerStyle)
	}

	for i, invoice := range invoices {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), invoice.InvoiceNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), string(invoice.ClientType))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), invoice.ClientID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), invoice.IssueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), invoice.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(invoice.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), invoice.TotalAmount().StringFixed(2))
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("invoice_export_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
