package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-portal-svc/internal/models"
)

// InvoiceRepository defines the interface for invoice data operations.
// Methods taking a *gorm.DB run inside the caller's transaction.
type InvoiceRepository interface {
	NextInvoiceNumber(tx *gorm.DB, year int) (string, error)
	CreateInvoice(tx *gorm.DB, invoice *models.Invoice) error
	CreateLineItems(tx *gorm.DB, items []*models.InvoiceLineItem) error
	GetInvoiceByID(id uint) (*models.Invoice, error)
	GetInvoiceByNumber(number string) (*models.Invoice, error)
	ListInvoices(client *models.ClientRef, status *models.InvoiceStatus, page, limit int) ([]*models.Invoice, int64, error)
	UpdatePDFPath(id uint, path string) error
	UpdateStatus(tx *gorm.DB, id uint, status models.InvoiceStatus) error
	MarkOverdue(asOf time.Time) (int64, error)
}

// invoiceRepository implements InvoiceRepository
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// NextInvoiceNumber allocates the next number for the given year under a
// row-level lock on the per-year sequence row. Must run inside the same
// transaction that inserts the invoice, so an aborted insert does not burn
// a visible gap and concurrent allocations serialize on the lock.
func (r *invoiceRepository) NextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	var seq models.InvoiceSequence

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First invoice of the year. A concurrent transaction may win the
		// insert, so tolerate the conflict and re-read under lock.
		seq = models.InvoiceSequence{Year: year, LastValue: 0}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return "", fmt.Errorf("failed to create invoice sequence for %d: %w", year, err)
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("year = ?", year).
			First(&seq).Error; err != nil {
			return "", fmt.Errorf("failed to lock invoice sequence for %d: %w", year, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to lock invoice sequence for %d: %w", year, err)
	}

	seq.LastValue++
	if err := tx.Model(&models.InvoiceSequence{}).
		Where("year = ?", year).
		Update("last_value", seq.LastValue).Error; err != nil {
		return "", fmt.Errorf("failed to advance invoice sequence for %d: %w", year, err)
	}

	return FormatInvoiceNumber(year, seq.LastValue), nil
}

// FormatInvoiceNumber renders the persisted invoice number format,
// e.g. INV-2024-0001.
func FormatInvoiceNumber(year int, sequence int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}

// CreateInvoice inserts an invoice header
func (r *invoiceRepository) CreateInvoice(tx *gorm.DB, invoice *models.Invoice) error {
	return tx.Create(invoice).Error
}

// CreateLineItems inserts line items in bulk
func (r *invoiceRepository) CreateLineItems(tx *gorm.DB, items []*models.InvoiceLineItem) error {
	return tx.CreateInBatches(items, 100).Error
}

// GetInvoiceByID retrieves an invoice with its line items
func (r *invoiceRepository) GetInvoiceByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice

	err := r.db.Preload("LineItems").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// GetInvoiceByNumber retrieves an invoice by its invoice number
func (r *invoiceRepository) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice

	err := r.db.Preload("LineItems").Where("invoice_number = ?", number).First(&invoice).Error
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// ListInvoices retrieves invoices with optional client and status filters
func (r *invoiceRepository) ListInvoices(client *models.ClientRef, status *models.InvoiceStatus, page, limit int) ([]*models.Invoice, int64, error) {
	var invoices []*models.Invoice

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	query := r.db.Model(&models.Invoice{})
	if client != nil {
		query = query.Where("client_type = ? AND client_id = ?", client.Type, client.ID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("LineItems").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// UpdatePDFPath attaches a rendered document path to an invoice
func (r *invoiceRepository) UpdatePDFPath(id uint, path string) error {
	return r.db.Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}

// UpdateStatus changes the settlement status of an invoice
func (r *invoiceRepository) UpdateStatus(tx *gorm.DB, id uint, status models.InvoiceStatus) error {
	return tx.Model(&models.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// MarkOverdue flips all pending invoices past their due date to OVERDUE and
// returns how many rows changed
func (r *invoiceRepository) MarkOverdue(asOf time.Time) (int64, error) {
	result := r.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoicePending, asOf).
		Update("status", models.InvoiceOverdue)
	return result.RowsAffected, result.Error
}
