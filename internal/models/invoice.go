package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the settlement state of an invoice
type InvoiceStatus string

const (
	InvoicePending  InvoiceStatus = "PENDING"
	InvoicePaid     InvoiceStatus = "PAID"
	InvoiceOverdue  InvoiceStatus = "OVERDUE"
	InvoiceCanceled InvoiceStatus = "CANCELED"
)

// Invoice represents the invoices table. The invoice number is unique and
// immutable once assigned. The total amount is never stored; it is always
// the sum of the line items.
type Invoice struct {
	ID            uint              `json:"id" gorm:"primarykey"`
	InvoiceNumber string            `json:"invoice_number" gorm:"column:invoice_number;uniqueIndex"`
	ClientType    ClientType        `json:"client_type" gorm:"column:client_type;index:idx_invoice_client"`
	ClientID      uint              `json:"client_id" gorm:"column:client_id;index:idx_invoice_client"`
	IssueDate     time.Time         `json:"issue_date" gorm:"column:issue_date;type:date"`
	DueDate       time.Time         `json:"due_date" gorm:"column:due_date;type:date"`
	Status        InvoiceStatus     `json:"status" gorm:"column:status;default:PENDING"`
	PDFPath       *string           `json:"pdf_path" gorm:"column:pdf_path"`
	LineItems     []InvoiceLineItem `json:"line_items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName sets the insert table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// Client returns the typed client reference of the invoice
func (i *Invoice) Client() ClientRef {
	return ClientRef{Type: i.ClientType, ID: i.ClientID}
}

// TotalAmount sums quantity times unit price over all line items
func (i *Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.LineItems {
		total = total.Add(item.Total())
	}
	return total
}

// InvoiceLineItem represents the invoice_line_items table. Line items are
// owned by their invoice and immutable after creation.
type InvoiceLineItem struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	InvoiceID   uint            `json:"invoice_id" gorm:"column:invoice_id;index"`
	Description string          `json:"description" gorm:"column:description"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"column:quantity;type:decimal(10,2)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:decimal(10,2)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for InvoiceLineItem
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}

// Total returns quantity times unit price
func (li *InvoiceLineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// InvoiceSequence represents the invoice_sequences table, one counter row
// per calendar year. The row is incremented under a row-level lock so that
// concurrent invoice creation never hands out the same number twice.
type InvoiceSequence struct {
	Year      int       `json:"year" gorm:"column:year;primarykey;autoIncrement:false"`
	LastValue int64     `json:"last_value" gorm:"column:last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for InvoiceSequence
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
