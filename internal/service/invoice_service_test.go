package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

func newTestInvoiceService() (*invoiceService, *mockInvoiceRepository, *mockEmployerRepository, *mockEORRepository, *mockRenderer, *mockFileStore) {
	invoiceRepo := newMockInvoiceRepository()
	paymentRepo := &mockPaymentRepository{}
	employerRepo := newMockEmployerRepository()
	eorRepo := newMockEORRepository()
	renderer := &mockRenderer{Content: []byte("%PDF-1.4")}
	files := newMockFileStore()

	svc := NewInvoiceService(invoiceRepo, paymentRepo, employerRepo, eorRepo, renderer, files, nil, testLogger()).(*invoiceService)
	return svc, invoiceRepo, employerRepo, eorRepo, renderer, files
}

func TestAssembleInvoiceNoLineItems(t *testing.T) {
	svc, invoiceRepo, _, _, _, _ := newTestInvoiceService()

	invoice, err := svc.AssembleInvoice(nil, models.EmployerRef(1), time.Now(), time.Now(), nil)

	assert.ErrorIs(t, err, ErrNoLineItems)
	assert.Nil(t, invoice)
	assert.Empty(t, invoiceRepo.Invoices)
	assert.Empty(t, invoiceRepo.CreatedItems)
}

func TestAssembleInvoiceInvalidClient(t *testing.T) {
	svc, invoiceRepo, _, _, _, _ := newTestInvoiceService()

	items := []LineItemInput{{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}}
	_, err := svc.AssembleInvoice(nil, models.ClientRef{Type: "VENDOR", ID: 1}, time.Now(), time.Now(), items)

	assert.Error(t, err)
	assert.Empty(t, invoiceRepo.Invoices)
}

func TestAssembleInvoiceUnknownClient(t *testing.T) {
	svc, invoiceRepo, _, _, _, _ := newTestInvoiceService()

	items := []LineItemInput{{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}}
	_, err := svc.AssembleInvoice(nil, models.EmployerRef(99), time.Now(), time.Now(), items)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, invoiceRepo.Invoices)
}

func TestAssembleInvoice(t *testing.T) {
	svc, invoiceRepo, employerRepo, _, _, _ := newTestInvoiceService()
	employerRepo.Employers[1] = &models.EmployerProfile{ID: 1, CompanyName: "Acme OÜ"}

	issueDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 30)
	items := []LineItemInput{{
		Description: "Work by Mari Tamm",
		Quantity:    decimal.RequireFromString("16"),
		UnitPrice:   decimal.RequireFromString("50.00"),
	}}

	invoice, err := svc.AssembleInvoice(nil, models.EmployerRef(1), issueDate, dueDate, items)

	assert.NoError(t, err)
	assert.Equal(t, "INV-2025-0001", invoice.InvoiceNumber)
	assert.Equal(t, models.InvoicePending, invoice.Status)
	assert.Equal(t, models.ClientTypeEmployer, invoice.ClientType)
	assert.Equal(t, uint(1), invoice.ClientID)
	assert.Len(t, invoice.LineItems, 1)
	assert.Equal(t, "800.00", invoice.TotalAmount().StringFixed(2))
	assert.Len(t, invoiceRepo.CreatedItems, 1)
	assert.Equal(t, invoice.ID, invoiceRepo.CreatedItems[0].InvoiceID)
}

func TestAssembleInvoiceNumbersAdvance(t *testing.T) {
	svc, _, employerRepo, _, _, _ := newTestInvoiceService()
	employerRepo.Employers[1] = &models.EmployerProfile{ID: 1, CompanyName: "Acme OÜ"}

	issueDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []LineItemInput{{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)}}

	first, err := svc.AssembleInvoice(nil, models.EmployerRef(1), issueDate, issueDate, items)
	assert.NoError(t, err)
	second, err := svc.AssembleInvoice(nil, models.EmployerRef(1), issueDate, issueDate, items)
	assert.NoError(t, err)

	assert.Equal(t, "INV-2025-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-2025-0002", second.InvoiceNumber)
}

func TestAttachDocument(t *testing.T) {
	svc, invoiceRepo, employerRepo, _, _, files := newTestInvoiceService()
	employerRepo.Employers[1] = &models.EmployerProfile{ID: 1, CompanyName: "Acme OÜ"}
	invoiceRepo.Invoices[5] = &models.Invoice{
		ID:            5,
		InvoiceNumber: "INV-2025-0007",
		ClientType:    models.ClientTypeEmployer,
		ClientID:      1,
	}
	invoiceRepo.NextID = 5

	invoice, err := svc.AttachDocument(5)

	assert.NoError(t, err)
	assert.NotNil(t, invoice.PDFPath)
	assert.Equal(t, "invoices/Invoice-INV-2025-0007.pdf", *invoice.PDFPath)
	assert.Equal(t, "invoices/Invoice-INV-2025-0007.pdf", invoiceRepo.PDFPaths[5])
	assert.Contains(t, files.Saved, "invoices/Invoice-INV-2025-0007.pdf")
}

func TestAttachDocumentRenderFailure(t *testing.T) {
	svc, invoiceRepo, employerRepo, _, renderer, _ := newTestInvoiceService()
	employerRepo.Employers[1] = &models.EmployerProfile{ID: 1, CompanyName: "Acme OÜ"}
	invoiceRepo.Invoices[5] = &models.Invoice{
		ID:            5,
		InvoiceNumber: "INV-2025-0007",
		ClientType:    models.ClientTypeEmployer,
		ClientID:      1,
	}
	renderer.Err = errors.New("font missing")

	invoice, err := svc.AttachDocument(5)

	assert.ErrorIs(t, err, ErrDocumentRender)
	// The invoice itself survives a rendering failure.
	assert.NotNil(t, invoice)
	assert.Nil(t, invoice.PDFPath)
}

func TestAttachDocumentInvoiceNotFound(t *testing.T) {
	svc, _, _, _, _, _ := newTestInvoiceService()

	invoice, err := svc.AttachDocument(404)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, invoice)
}

func TestListPaymentsRemainingBalance(t *testing.T) {
	svc, invoiceRepo, _, _, _, _ := newTestInvoiceService()
	invoiceRepo.Invoices[1] = &models.Invoice{
		ID: 1,
		LineItems: []models.InvoiceLineItem{
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("1000.00")},
		},
	}
	svc.paymentRepo.(*mockPaymentRepository).Payments = []*models.Payment{
		{InvoiceID: 1, AmountPaid: decimal.RequireFromString("400.00"), Status: models.PaymentSuccess},
		{InvoiceID: 1, AmountPaid: decimal.RequireFromString("999.00"), Status: models.PaymentFailed},
	}

	payments, balance, err := svc.ListPayments(1)

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	// Failed payments do not reduce the balance.
	assert.Equal(t, "600.00", balance.StringFixed(2))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestExportInvoicesToExcel(t *testing.T) {
	svc, invoiceRepo, _, _, _, _ := newTestInvoiceService()
	invoiceRepo.Invoices[1] = &models.Invoice{
		ID:            1,
		InvoiceNumber: "INV-2025-0001",
		ClientType:    models.ClientTypeEmployer,
		ClientID:      1,
		IssueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:        models.InvoicePending,
	}

	content, filename, err := svc.ExportInvoicesToExcel(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Regexp(t, `^invoice_export_\d{8}_\d{6}\.xlsx$`, filename)
}
