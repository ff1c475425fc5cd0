package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hr-portal-svc/internal/models"
)

// Renderer turns domain records into PDF byte streams.
type Renderer interface {
	RenderInvoice(invoice *models.Invoice, clientName string) ([]byte, error)
	RenderPayslip(payslip *models.Payslip, employeeName string) ([]byte, error)
}

// renderer implements Renderer using gofpdf
type renderer struct {
	companyName string
}

// NewRenderer creates a PDF renderer. companyName is printed as the issuer
// on every document.
func NewRenderer(companyName string) Renderer {
	return &renderer{
		companyName: companyName,
	}
}

// RenderInvoice renders an invoice with its line items and computed total
func (r *renderer) RenderInvoice(invoice *models.Invoice, clientName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(120, 10, r.companyName)
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(70, 10, "INVOICE", "", 1, "R", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(95, 6, fmt.Sprintf("Invoice number: %s", invoice.InvoiceNumber))
	doc.CellFormat(95, 6, fmt.Sprintf("Billed to: %s", clientName), "", 1, "R", false, 0, "")
	doc.Cell(95, 6, fmt.Sprintf("Issue date: %s", invoice.IssueDate.Format("2006-01-02")))
	doc.CellFormat(95, 6, fmt.Sprintf("Due date: %s", invoice.DueDate.Format("2006-01-02")), "", 1, "R", false, 0, "")
	doc.Ln(6)

	// Line item table
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Quantity", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 8, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, item := range invoice.LineItems {
		doc.CellFormat(100, 8, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, item.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 8, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, item.Total().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(155, 8, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, invoice.TotalAmount().StringFixed(2), "1", 1, "R", false, 0, "")

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(190, 6, fmt.Sprintf("Status: %s", invoice.Status))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderPayslip renders a payslip with gross, tax and net figures
func (r *renderer) RenderPayslip(payslip *models.Payslip, employeeName string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(120, 10, r.companyName)
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(70, 10, "PAYSLIP", "", 1, "R", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(190, 6, fmt.Sprintf("Employee: %s", employeeName))
	doc.Ln(6)
	doc.Cell(190, 6, fmt.Sprintf("Period: %s to %s",
		payslip.PeriodStartDate.Format("2006-01-02"),
		payslip.PeriodEndDate.Format("2006-01-02")))
	doc.Ln(6)
	doc.Cell(190, 6, fmt.Sprintf("Issue date: %s", payslip.IssueDate.Format("2006-01-02")))
	doc.Ln(10)

	rows := []struct {
		label string
		value string
	}{
		{"Gross salary", payslip.GrossSalary.StringFixed(2)},
		{"Tax", payslip.TaxAmount.StringFixed(2)},
		{"Net salary", payslip.NetSalary.StringFixed(2)},
	}

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.CellFormat(130, 8, row.label, "1", 0, "L", false, 0, "")
		doc.CellFormat(60, 8, row.value, "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}

	return buf.Bytes(), nil
}
