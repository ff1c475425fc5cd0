package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentXMLIntegration PaymentMethod = "XML_INTEGRATION"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
)

// PaymentStatus is the settlement state of a single payment
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentPending PaymentStatus = "PENDING"
)

// Payment represents the payments table. Many payments may apply to one
// invoice; only SUCCESS payments count toward the remaining balance.
type Payment struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	InvoiceID     uint            `json:"invoice_id" gorm:"column:invoice_id;index"`
	AmountPaid    decimal.Decimal `json:"amount_paid" gorm:"column:amount_paid;type:decimal(10,2)"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"column:payment_date"`
	Method        PaymentMethod   `json:"method" gorm:"column:method"`
	TransactionID *string         `json:"transaction_id" gorm:"column:transaction_id"`
	Status        PaymentStatus   `json:"status" gorm:"column:status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Payment
func (Payment) TableName() string {
	return "payments"
}
