package services

import (
	"fmt"

	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/repository"
)

// NotificationService lists and acknowledges notifications. Creation and
// cascade removal happen inside the owning entity's transactions.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List returns a page of the user's notifications, newest first.
func (s *NotificationService) List(userID uint64, page, limit int) ([]models.Notification, int64, error) {
	notifications, total, err := s.notifRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead acknowledges one of the user's notifications.
func (s *NotificationService) MarkRead(id, userID uint64) error {
	if err := s.notifRepo.MarkRead(id, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
