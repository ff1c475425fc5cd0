package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	CreatePayment(tx *gorm.DB, payment *models.Payment) error
	ListPaymentsByInvoice(invoiceID uint) ([]*models.Payment, error)
	SumSuccessfulPayments(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error)
}

// paymentRepository implements PaymentRepository
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// CreatePayment inserts a payment record
func (r *paymentRepository) CreatePayment(tx *gorm.DB, payment *models.Payment) error {
	return tx.Create(payment).Error
}

// ListPaymentsByInvoice retrieves all payments recorded against an invoice
func (r *paymentRepository) ListPaymentsByInvoice(invoiceID uint) ([]*models.Payment, error) {
	var payments []*models.Payment

	err := r.db.Where("invoice_id = ?", invoiceID).
		Order("payment_date").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// SumSuccessfulPayments totals the SUCCESS payments applied to an invoice
func (r *paymentRepository) SumSuccessfulPayments(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error) {
	var raw *string

	err := tx.Model(&models.Payment{}).
		Select("SUM(amount_paid)").
		Where("invoice_id = ? AND status = ?", invoiceID, models.PaymentSuccess).
		Row().Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(*raw)
}
