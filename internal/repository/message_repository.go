package repository

import (
	"time"

	"github.com/loftchat/loftchat-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends the message and advances the room's last-message pointer in
// the same transaction so "latest" lookups never observe a half-applied send.
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).Where("id = ?", message.RoomID).
			Update("last_message_id", message.ID).Error
	})
}

func (r *MessageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.Preload("Member").Preload("Member.User").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListBefore returns up to limit messages of the room, newest first. A non-nil
// cursor restricts results to messages strictly earlier in the (created_at, id)
// order, so pagination is restartable from any message.
func (r *MessageRepository) ListBefore(roomID uint, before *models.Message, limit int) ([]models.Message, error) {
	q := r.db.Preload("Member").Preload("Member.User").
		Where("room_id = ?", roomID)
	if before != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			before.CreatedAt, before.CreatedAt, before.ID)
	}

	var messages []models.Message
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) LatestInRoom(roomID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountAfter counts messages of the room strictly after the given message in
// the (created_at, id) order. A nil cursor counts every message.
func (r *MessageRepository) CountAfter(roomID uint, after *models.Message) (int64, error) {
	q := r.db.Model(&models.Message{}).Where("room_id = ?", roomID)
	if after != nil {
		q = q.Where("created_at > ? OR (created_at = ? AND id > ?)",
			after.CreatedAt, after.CreatedAt, after.ID)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *MessageRepository) UpdateContent(id uint, content string) error {
	now := time.Now()
	return r.db.Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":   content,
			"edited_at": &now,
		}).Error
}

// SoftDelete tombstones the message in place. The row keeps its id and
// ordering position so replies and read pointers stay valid.
func (r *MessageRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"content":     "",
			"attachments": nil,
		}).Error
}

// IsOwnedByUser resolves the message's sending member back to its user.
func (r *MessageRepository) IsOwnedByUser(messageID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Joins("JOIN members ON members.id = messages.member_id").
		Where("messages.id = ? AND members.user_id = ?", messageID, userID).
		Count(&count).Error
	return count > 0, err
}
