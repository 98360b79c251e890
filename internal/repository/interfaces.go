package repository

import (
	"github.com/loftchat/loftchat-backend/internal/models"
)

// RoomRepositoryInterface defines the contract for room repository operations
type RoomRepositoryInterface interface {
	Create(room *models.Room) error
	FindByID(id uint) (*models.Room, error)
	UpdateInfo(id uint, name, avatar string) error
}

// MemberRepositoryInterface defines the contract for member repository operations
type MemberRepositoryInterface interface {
	Create(member *models.Member) error
	FindByID(id uint) (*models.Member, error)
	FindByRoomAndUser(roomID, userID uint) (*models.Member, error)
	Delete(roomID, userID uint) error
	ListUserIDsByRoom(roomID uint) ([]uint, error)
	GetRole(roomID, userID uint) (models.MemberRole, error)
	SetCategory(memberID uint, categoryID *uint) error
	ClearCategory(categoryID uint) (int64, error)
	AdvanceReadPointer(roomID, userID, messageID uint) (bool, error)
}

// MessageRepositoryInterface defines the contract for message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	ListBefore(roomID uint, before *models.Message, limit int) ([]models.Message, error)
	LatestInRoom(roomID uint) (*models.Message, error)
	CountAfter(roomID uint, after *models.Message) (int64, error)
	UpdateContent(id uint, content string) error
	SoftDelete(id uint) error
	IsOwnedByUser(messageID, userID uint) (bool, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	FindByID(id uint) (*models.Category, error)
	ListByUser(userID uint) ([]models.Category, error)
	NextRank(userID uint) (int, error)
	UpdateTitle(id uint, title string) error
	UpdateRank(id uint, rank int) error
	Delete(id uint) error
}

// NotificationRepositoryInterface defines the contract for notification repository operations
type NotificationRepositoryInterface interface {
	Create(notification *models.Notification) error
	ListByRecipient(recipientID uint, offset, limit int) ([]models.Notification, error)
	MarkRead(recipientID uint, ids []uint) (int64, error)
	MarkAllRead(recipientID uint) (int64, error)
}
