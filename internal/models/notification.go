package models

import (
	"time"
)

// NotificationType classifies user notifications
type NotificationType string

const (
	NotificationInvoiceReminder   NotificationType = "INVOICE_REMINDER"
	NotificationStatusUpdate      NotificationType = "STATUS_UPDATE"
	NotificationApplicationUpdate NotificationType = "APPLICATION_UPDATE"
	NotificationPayslipReady      NotificationType = "PAYSLIP_READY"
)

// Notification represents the notifications table
type Notification struct {
	ID          uint             `json:"id" gorm:"primarykey"`
	RecipientID uint             `json:"recipient_id" gorm:"column:recipient_id;index"`
	Message     string           `json:"message" gorm:"column:message;type:text"`
	Type        NotificationType `json:"type" gorm:"column:type"`
	IsRead      bool             `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
