package service

import (
	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	ListNotifications(recipientID uint, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(id uint) error
}

// notificationService implements NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) ListNotifications(recipientID uint, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListNotificationsByRecipient(recipientID, unreadOnly)
}

func (s *notificationService) MarkRead(id uint) error {
	return s.notificationRepo.MarkRead(id)
}
