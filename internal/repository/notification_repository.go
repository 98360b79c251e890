package repository

import (
	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepository) ListByRecipient(recipientID uint, offset, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips the read flag for the given ids, but only for rows owned by
// the recipient. Ids belonging to other users simply do not match the filter.
func (r *NotificationRepository) MarkRead(recipientID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND id IN ?", recipientID, ids).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) MarkAllRead(recipientID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
