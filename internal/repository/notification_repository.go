package repository

import (
	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/girmesh03/taskforce/internal/utils"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction session.
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: tx}
}

// Create creates a new notification.
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByUser lists a user's notifications, newest first.
func (r *GormNotificationRepository) ListByUser(userID uint64, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if err := query.Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead marks a user's notification as read.
func (r *GormNotificationRepository) MarkRead(id, userID uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// DeleteByUser removes every notification addressed to the user.
func (r *GormNotificationRepository) DeleteByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error
}

// DeleteByUsers removes every notification addressed to any of the users.
func (r *GormNotificationRepository) DeleteByUsers(userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.Where("user_id IN ?", userIDs).
		Delete(&models.Notification{}).Error
}

// DeleteByLinkedDocument removes notifications pointing at the document.
func (r *GormNotificationRepository) DeleteByLinkedDocument(id uint64, docType models.LinkedDocumentType) error {
	return r.db.Where("linked_document_id = ? AND linked_document_type = ?", id, docType).
		Delete(&models.Notification{}).Error
}

// DeleteByLinkedDocuments removes notifications pointing at any of the
// documents of one type.
func (r *GormNotificationRepository) DeleteByLinkedDocuments(ids []uint64, docType models.LinkedDocumentType) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("linked_document_id IN ? AND linked_document_type = ?", ids, docType).
		Delete(&models.Notification{}).Error
}
