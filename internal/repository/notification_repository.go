package repository

import (
	"parts_market/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateBatch(db *gorm.DB, notifications []models.Notification) error
	GetByRecipient(recipientID uint) ([]models.Notification, error)
	MarkRead(id, recipientID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateBatch inserts all records at once. The db argument may be an open
// transaction so the records land atomically with the triggering change.
func (r *notificationRepository) CreateBatch(db *gorm.DB, notifications []models.Notification) error {
	if db == nil {
		db = r.db
	}
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(&notifications).Error
}

func (r *notificationRepository) GetByRecipient(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(id, recipientID uint) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
